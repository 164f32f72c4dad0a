package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	l := New(0)

	assert.NotNil(t, l)
	assert.NotNil(t, l.Logger)
}

func TestNew_DebugLevel(t *testing.T) {
	l := New(-4)

	assert.NotNil(t, l)
	assert.True(t, l.Enabled(nil, -4))
}
