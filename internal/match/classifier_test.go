package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeArray(t *testing.T) {
	tests := []struct {
		source, target string
		expected       bool
	}{
		{"", "workExperience", true},
		{"", "address", false},
		{"", "status", false},
		{"", "itemsList", true},
		{"", "employees", true},
		{"", "Class", false},
		{"", "SUCCESS", false},
		{"", "glass", false},
		{"", "name", false},
		{"", "tagSet", true},
		{"", "attributeMap", true},
		{"", "orderHistory", true},
		{"skills", "", true},
		// target wins over source
		{"skills", "skill", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.source+"|"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksLikeArray(tt.source, tt.target))
		})
	}
}

func TestClassifier_Injected(t *testing.T) {
	c := Classifier{
		Keywords:           []string{"bag"},
		SingularExceptions: []string{"news"},
	}

	assert.True(t, c.LooksLikeArray("", "toolBag"))
	assert.False(t, c.LooksLikeArray("", "news"))
	assert.True(t, c.LooksLikeArray("", "employees"))
	assert.False(t, c.LooksLikeArray("", "itemsList"), "default keywords are not implied")
	assert.False(t, c.LooksLikeArray("", "workExperience"), "default nouns are not implied")
}

func TestDefaultClassifier_CopiesLists(t *testing.T) {
	c := DefaultClassifier()
	c.Keywords[0] = "changed"

	assert.Equal(t, "list", DefaultArrayKeywords[0])
}
