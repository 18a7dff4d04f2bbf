package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPropertyID(t *testing.T) {
	tests := []struct {
		source, target string
		expected       string
	}{
		{"a.b.c", "", "C"},
		{"", "userId", "USERID"},
		{"", "", "PROPERTY"},
		{"address.country", "emplocation", "COUNTRY"},
		{"name", "employeeName", "NAME"},
		{"", "address.city", "ADDRESS.CITY"},
		{"trailing.", "x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.source+"|"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.expected, PropertyID(tt.source, tt.target))
		})
	}
}

func TestFieldID(t *testing.T) {
	tests := []struct {
		prefix, name string
		expected     string
	}{
		{"", "employeeId", "EMPLOYEEID"},
		{"ROOTOBJECT", "name", "ROOTOBJECT_NAME"},
		{"WORKEXPERIENCE", "company-name", "WORKEXPERIENCE_COMPANY_NAME"},
		{"", "first name", "FIRST_NAME"},
		{"A", "x.y$z", "A_X_Y_Z"},
		{"", "año", "A_O"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FieldID(tt.prefix, tt.name))
		})
	}

	assert.Equal(t, "FOO_UNMAPPED", UnmappedID("", "foo"))
}

func TestFieldID_OnlyUpperAlnumAndUnderscore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.String().Draw(t, "prefix")
		name := rapid.String().Draw(t, "name")

		id := FieldID(prefix, name)
		for _, r := range id {
			if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '_' {
				t.Fatalf("FieldID(%q, %q) = %q contains %q", prefix, name, id, r)
			}
		}
	})
}

func TestPropertyID_LastSourceSegment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		source := rapid.StringMatching(`[a-z][a-zA-Z0-9]*(\.[a-zA-Z][a-zA-Z0-9]*){0,4}`).Draw(t, "source")
		target := rapid.StringMatching(`[a-zA-Z]*`).Draw(t, "target")

		segments := strings.Split(source, ".")
		want := strings.ToUpper(segments[len(segments)-1])

		if got := PropertyID(source, target); got != want {
			t.Fatalf("PropertyID(%q, %q) = %q, want %q", source, target, got, want)
		}
	})
}
