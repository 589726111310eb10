package clierr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorReport(t *testing.T) {
	err := New(CodeMissingCredential, "no API key configured", "set GEMINI_API_KEY", "pass --api-key")

	assert.Equal(t, "missing_credential: no API key configured", err.Error())
	assert.Equal(t, "Error: no API key configured\n  - set GEMINI_API_KEY\n  - pass --api-key\n", err.Report())
}

func TestAsUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("loading config: %w", New(CodeInvalidConfig, "bad backend"))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidConfig, e.Code)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
