package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCSV_Deterministic(t *testing.T) {
	a := NewRNG(99).GenerateCSV(50, 5)
	b := NewRNG(99).GenerateCSV(50, 5)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(99), NewRNG(99).Seed())
}

func TestGenerateCSV_Shape(t *testing.T) {
	data := NewRNG(1).GenerateCSV(10, 3)
	lines := bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n"))
	require.Len(t, lines, 10)
	for _, line := range lines {
		assert.NotEmpty(t, line)
	}
}
