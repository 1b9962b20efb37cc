package pb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageHelpers(t *testing.T) {
	msg, err := NewMessage(map[string]any{
		FieldPath: "households/h1",
		FieldData: map[string]any{"name": "Flat", "createdAt": int64(1700000000000)},
		FieldDocuments: []any{
			map[string]any{"id": "a"},
			"skipped",
			map[string]any{"id": "b"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "households/h1", String(msg, FieldPath))
	assert.Equal(t, "", String(msg, "missing"))

	data := Map(msg, FieldData)
	assert.Equal(t, "Flat", data["name"])
	assert.Equal(t, float64(1700000000000), data["createdAt"])
	assert.Nil(t, Map(msg, FieldPath))

	docs := Maps(msg, FieldDocuments)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[1]["id"])

	assert.Equal(t, "", String(nil, FieldPath))
}

func TestNewMessage_RejectsUnsupported(t *testing.T) {
	_, err := NewMessage(map[string]any{"bad": []string{"x"}})
	require.Error(t, err)
}
