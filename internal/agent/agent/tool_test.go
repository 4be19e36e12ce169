package agent_test

import (
	"testing"

	"agentsdk/internal/agent/agent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Text  string `json:"text" jsonschema:"description=Text to echo back"`
	Times int    `json:"times,omitempty" jsonschema:"description=Repeat count"`
}

func TestToolDefSchema(t *testing.T) {
	// given / when
	def, err := agent.NewToolDef("echo", "Echoes text back.", &echoArgs{})
	require.NoError(t, err)

	// then
	assert.Equal(t, "echo", def.Name())
	assert.Equal(t, "Echoes text back.", def.Description())

	schema := def.Schema()
	assert.Equal(t, "echo", schema.Name)
	assert.Equal(t, "Echoes text back.", schema.Description)
	assert.Equal(t, "object", schema.Parameters["type"])

	properties, ok := schema.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "text")
	assert.Contains(t, properties, "times")
}

func TestToolDefValidateArgs(t *testing.T) {
	def, err := agent.NewToolDef("echo", "Echoes text back.", &echoArgs{})
	require.NoError(t, err)

	t.Run("valid args pass", func(t *testing.T) {
		assert.NoError(t, def.ValidateArgs(map[string]any{"text": "hi", "times": 2}))
	})

	t.Run("optional field may be omitted", func(t *testing.T) {
		assert.NoError(t, def.ValidateArgs(map[string]any{"text": "hi"}))
	})

	t.Run("missing required field fails", func(t *testing.T) {
		err := def.ValidateArgs(map[string]any{"times": 2})
		require.Error(t, err)
		assert.ErrorIs(t, err, agent.ErrInvalidArguments)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		err := def.ValidateArgs(map[string]any{"text": "hi", "times": "three"})
		require.Error(t, err)
		assert.ErrorIs(t, err, agent.ErrInvalidArguments)
	})

	t.Run("validation is total over junk input", func(t *testing.T) {
		err := def.ValidateArgs(map[string]any{"text": map[string]any{"nested": true}})
		require.Error(t, err)
		assert.ErrorIs(t, err, agent.ErrInvalidArguments)
	})
}
