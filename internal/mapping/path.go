package mapping

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// FieldPath is a parsed dotted locator.
type FieldPath struct {
	Segments []PathSegment
}

// PathSegment is one dotted component.
type PathSegment struct {
	Name string
	// IsCollection is set by a trailing "[]".
	IsCollection bool
}

// String renders the path back in source form.
func (p FieldPath) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.Name
		if s.IsCollection {
			parts[i] += "[]"
		}
	}

	return strings.Join(parts, ".")
}

// Names returns segment names without collection markers.
func (p FieldPath) Names() []string {
	names := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		names[i] = s.Name
	}

	return names
}

// ParsePath parses "name", "address.country", or "workExperience[].company".
// Segment names may hold anything but whitespace, dots and brackets, since
// document keys are not restricted to identifiers.
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, errors.New("empty path")
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return FieldPath{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		name, isCollection := strings.CutSuffix(part, "[]")
		if name == "" {
			return FieldPath{}, fmt.Errorf("invalid path %q: collection marker without field name", path)
		}

		if strings.ContainsFunc(name, invalidNameRune) {
			return FieldPath{}, fmt.Errorf("invalid path %q: invalid segment %q", path, name)
		}

		segments = append(segments, PathSegment{Name: name, IsCollection: isCollection})
	}

	return FieldPath{Segments: segments}, nil
}

func invalidNameRune(r rune) bool {
	return unicode.IsSpace(r) || r == '[' || r == ']'
}
