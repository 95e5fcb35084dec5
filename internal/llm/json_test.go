package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestExtractObject_PlainJSON(t *testing.T) {
	got, err := ExtractObject[sample](`{"name":"gala","count":150}`)
	require.NoError(t, err)
	assert.Equal(t, sample{Name: "gala", Count: 150}, got)
}

func TestExtractObject_CodeFences(t *testing.T) {
	raw := "```json\n{\"name\":\"gala\",\"count\":150}\n```"
	got, err := ExtractObject[sample](raw)
	require.NoError(t, err)
	assert.Equal(t, "gala", got.Name)
}

func TestExtractObject_SurroundingProse(t *testing.T) {
	raw := `Here is the extraction you asked for: {"name":"gala","count":150} — let me know if anything is off.`
	got, err := ExtractObject[sample](raw)
	require.NoError(t, err)
	assert.Equal(t, 150, got.Count)
}

func TestExtractObject_NestedAndStrings(t *testing.T) {
	raw := `{"name":"a { tricky } \"name\"","count":2}`
	got, err := ExtractObject[sample](raw)
	require.NoError(t, err)
	assert.Equal(t, `a { tricky } "name"`, got.Name)
}

func TestExtractObject_NoObject(t *testing.T) {
	_, err := ExtractObject[sample]("sorry, I cannot help with that")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractObject_MalformedJSON(t *testing.T) {
	_, err := ExtractObject[sample](`{"name": "gala", "count": }`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
