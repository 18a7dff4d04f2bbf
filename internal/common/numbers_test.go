package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInRange(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"lower bound", 0, true},
		{"upper bound", 1, true},
		{"inside", 0.8, true},
		{"below", -0.1, false},
		{"above", 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInRange(0, tt.value, 1))
		})
	}

	assert.True(t, IsInRange(1, 64, 64))
	assert.False(t, IsInRange(1, 0, 64))
}
