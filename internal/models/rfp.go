package models

import (
	"time"
)

// ConfidenceThreshold is the minimum confidence a field must reach before it
// is exposed to downstream consumers (frontend, document generation).
const ConfidenceThreshold = 0.6

// ExtractionField holds a single extracted value with its model-reported
// confidence. Value is deliberately loose: the model returns strings for most
// fields, arrays for the list-typed ones, row objects for programFlow, and a
// boolean for flexibleDates.
type ExtractionField struct {
	Value       interface{} `json:"value"`
	Confidence  float64     `json:"confidence"`
	ExtractedAt time.Time   `json:"extractedAt"`
}

// ExtractionResult is the accumulated per-conversation field store. Each
// extraction run overwrites the entry for every field the model returned,
// regardless of whether confidence rose or fell.
type ExtractionResult struct {
	ConversationID string                     `json:"conversationId"`
	LastUpdated    time.Time                  `json:"lastUpdated"`
	Fields         map[string]ExtractionField `json:"fields"`
}

// Clone returns a deep-enough copy for handing to concurrent readers. Field
// values are shared (they are treated as immutable once stored).
func (r *ExtractionResult) Clone() *ExtractionResult {
	if r == nil {
		return nil
	}
	fields := make(map[string]ExtractionField, len(r.Fields))
	for name, f := range r.Fields {
		fields[name] = f
	}
	return &ExtractionResult{
		ConversationID: r.ConversationID,
		LastUpdated:    r.LastUpdated,
		Fields:         fields,
	}
}

// ProgramFlowRow is one row of the event's program-of-events table.
type ProgramFlowRow struct {
	Time          string `json:"time"`
	Function      string `json:"function"`
	AttendanceSet string `json:"attendanceSet"`
}

// RFPFieldNames is the fixed extraction schema presented to the model. The
// field store itself is key-agnostic: a well-formed entry under an unlisted
// key is stored as-is rather than dropped.
var RFPFieldNames = []string{
	"eventName",
	"eventType",
	"hostOrganization",
	"organizerName",
	"contactEmail",
	"contactPhone",
	"preferredDate",
	"alternateDates",
	"startTime",
	"endTime",
	"attendeeCount",
	"roomsRequired",
	"seatingArrangement",
	"mealPeriods",
	"avNeeds",
	"budgetRange",
	"venueLocation",
	"accessibilityNeeds",
	"parkingNeeds",
	"decisionDate",
	"flexibleDates",
	"concessions",
	"foodAndBeverage",
	"guestRooms",
	"programFlow",
}

// listFields are the fields whose exposed value must always be an array.
var listFields = map[string]bool{
	"concessions":     true,
	"foodAndBeverage": true,
	"guestRooms":      true,
	"programFlow":     true,
}

// IsListField reports whether the named field is list-typed.
func IsListField(name string) bool {
	return listFields[name]
}

// ConfidentFields builds the externally visible data map from a field store:
// only entries at or above ConfidenceThreshold, with list-typed fields
// normalized to a stable array shape.
func ConfidentFields(fields map[string]ExtractionField) map[string]interface{} {
	data := make(map[string]interface{})
	for name, f := range fields {
		if f.Confidence < ConfidenceThreshold {
			continue
		}
		if IsListField(name) {
			data[name] = NormalizeListValue(f.Value)
		} else {
			data[name] = f.Value
		}
	}
	return data
}

// NormalizeListValue coerces a stored value for a list-typed field into a
// stable array shape: arrays pass through, a scalar string becomes a
// single-element array, anything else becomes an empty array.
func NormalizeListValue(v interface{}) []interface{} {
	switch val := v.(type) {
	case []interface{}:
		return val
	case string:
		return []interface{}{val}
	default:
		return []interface{}{}
	}
}
