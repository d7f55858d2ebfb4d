package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCorrectFlags(t *testing.T) {
	raw := json.RawMessage(`[
		{"label": "0", "text": "3"},
		{"label": "1", "text": "4", "is_correct": true},
		{"label": "2", "text": "5"}
	]`)

	stripped, err := stripCorrectFlags(raw)
	require.NoError(t, err)
	assert.NotContains(t, string(stripped), "is_correct")

	var options []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(stripped, &options))
	require.Len(t, options, 3)
	assert.Equal(t, "4", options[1].Text)
}

func TestStripCorrectFlagsInvalidJSON(t *testing.T) {
	_, err := stripCorrectFlags(json.RawMessage(`{"not": "an array"}`))
	assert.Error(t, err)
}
