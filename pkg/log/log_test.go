package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerbosity(t *testing.T) {
	quiet := New(false)
	assert.True(t, quiet.Enabled())
	assert.False(t, quiet.V(1).Enabled())

	verbose := New(true)
	assert.True(t, verbose.V(1).Enabled())
}
