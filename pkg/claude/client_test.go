package claude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("test-key")

	assert.Equal(t, "claude-sonnet-4-5-20250929", c.model)
	assert.Equal(t, int64(2048), c.maxTokens)
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient("test-key",
		WithModel("claude-haiku-4-5"),
		WithMaxTokens(4096),
	)

	assert.Equal(t, "claude-haiku-4-5", c.model)
	assert.Equal(t, int64(4096), c.maxTokens)
}
