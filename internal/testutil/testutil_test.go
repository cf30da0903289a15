package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicClock(t *testing.T) {
	clock := NewDeterministicClock()

	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(2), clock.Current())

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestTokenSequence(t *testing.T) {
	gen := NewTokenSequence("advance")

	assert.Equal(t, "advance-0001", gen.Generate())
	assert.Equal(t, "advance-0002", gen.Generate())
	assert.Equal(t, 2, gen.Count())
}

func TestTokenSequence_DefaultPrefix(t *testing.T) {
	gen := NewTokenSequence("")
	assert.Equal(t, "advance-0001", gen.Generate())
}

func TestTokenSequence_CustomPrefix(t *testing.T) {
	gen := NewTokenSequence("festival")
	assert.Equal(t, "festival-0001", gen.Generate())
}
