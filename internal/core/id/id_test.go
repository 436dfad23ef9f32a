package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRun_IsV7(t *testing.T) {
	r := NewRun()
	assert.Equal(t, 7, int(r.Version()))
	assert.NotEqual(t, r, NewRun())
}

func TestKey_IsZero(t *testing.T) {
	assert.True(t, Key("").IsZero())
	assert.True(t, Key("  ").IsZero())
	assert.False(t, Key("P1").IsZero())
	assert.Equal(t, "P1", Key("P1").String())
}
