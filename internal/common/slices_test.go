package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.True(t, IsEmpty([]int{}))
	assert.False(t, IsEmpty([]int{0}))
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = First([]string(nil))
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, Unique([]string{}))
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected []string
	}{
		{"keeps order of a", []string{"name", "id", "age"}, []string{"age", "id"}, []string{"id", "age"}},
		{"no overlap", []string{"x"}, []string{"y"}, nil},
		{"duplicates collapse", []string{"id", "id"}, []string{"id"}, []string{"id"}},
		{"empty b", []string{"id"}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Intersect(tt.a, tt.b))
		})
	}
}
