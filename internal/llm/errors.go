package llm

import "errors"

var (
	// ErrAuthentication indicates the completion API rejected our
	// credentials. Kept distinct so operators can tell bad keys apart
	// from transient upstream failures.
	ErrAuthentication = errors.New("completion API authentication failed")

	// ErrEmptyCompletion indicates the API answered but returned no
	// usable content.
	ErrEmptyCompletion = errors.New("completion API returned empty content")

	// ErrUnavailable indicates the API could not be reached (network
	// failure or timeout).
	ErrUnavailable = errors.New("completion API unavailable")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")
)
