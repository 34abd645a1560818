package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsiderationUnmarshalLegacyString(t *testing.T) {
	var c Consideration
	err := json.Unmarshal([]byte(`"rural clinics lose patient records"`), &c)
	require.NoError(t, err)

	require.True(t, c.Legacy)
	require.Equal(t, "rural clinics lose patient records", c.Content)
	require.Empty(t, c.PreviousValue)
}

func TestConsiderationUnmarshalStructured(t *testing.T) {
	doc := `{"content":"new text","previous_value":"old text","metadata":{},"is_complete":true}`

	var c Consideration
	err := json.Unmarshal([]byte(doc), &c)
	require.NoError(t, err)

	require.False(t, c.Legacy)
	require.Equal(t, "new text", c.Content)
	require.Equal(t, "old text", c.PreviousValue)
	require.True(t, c.IsComplete)
}

func TestConsiderationMarshalAlwaysStructured(t *testing.T) {
	var c Consideration
	require.NoError(t, json.Unmarshal([]byte(`"legacy text"`), &c))

	out, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "legacy text", decoded["content"])
	require.Equal(t, "", decoded["previous_value"])
	require.NotNil(t, decoded["metadata"])
	require.Contains(t, decoded, "is_complete")
}

func TestSessionRoundTripMixedRepresentations(t *testing.T) {
	doc := `{
		"session_id": "abc",
		"considerations": {
			"problem_definition": "legacy value",
			"target_market": {"content":"structured","previous_value":"","metadata":{},"is_complete":false}
		},
		"chat_history": []
	}`

	var sess Session
	require.NoError(t, json.Unmarshal([]byte(doc), &sess))
	require.True(t, sess.Considerations["problem_definition"].Legacy)
	require.False(t, sess.Considerations["target_market"].Legacy)
	require.Equal(t, "legacy value", sess.Considerations["problem_definition"].Content)
}
