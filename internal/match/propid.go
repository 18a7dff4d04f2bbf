package match

import (
	"strings"
)

const (
	// DefaultPropertyID is used when neither a source nor a target path is known.
	DefaultPropertyID = "PROPERTY"
	// UnmappedSuffix marks placeholder rules for target fields without a source.
	UnmappedSuffix = "_UNMAPPED"
)

// PropertyID derives a human-readable rule id.
// The last segment of a non-empty source path wins, then the whole target
// path, then DefaultPropertyID. The result is upper-cased.
//
//   - PropertyID("a.b.c", "") == "C"
//   - PropertyID("", "userId") == "USERID"
//   - PropertyID("", "") == "PROPERTY"
func PropertyID(sourcePath, targetPath string) string {
	if sourcePath != "" {
		segments := strings.Split(sourcePath, ".")
		return strings.ToUpper(segments[len(segments)-1])
	}

	if targetPath != "" {
		return strings.ToUpper(targetPath)
	}

	return DefaultPropertyID
}

// FieldID composes prefix and name as PREFIX_NAME, upper-cased, with every
// rune outside [A-Z0-9] replaced by '_'. An empty prefix yields just the
// sanitized name.
func FieldID(prefix, name string) string {
	raw := name
	if prefix != "" {
		raw = prefix + "_" + name
	}

	return sanitizeID(strings.ToUpper(raw))
}

// UnmappedID returns the placeholder id for a target field with no source.
func UnmappedID(prefix, name string) string {
	return FieldID(prefix, name) + UnmappedSuffix
}

func sanitizeID(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	return b.String()
}
