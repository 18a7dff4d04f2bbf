package common

// UnknownStr is the String() value for unrecognized enum values.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Unique returns the elements of s with duplicates removed, keeping the
// first occurrence of each.
func Unique[S ~[]E, E comparable](s S) S {
	if len(s) == 0 {
		return nil
	}

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// Intersect returns the elements of a that also appear in b, in a's order,
// without duplicates.
func Intersect[S ~[]E, E comparable](a, b S) S {
	in := make(map[E]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}

	var out S

	for _, v := range Unique(a) {
		if _, ok := in[v]; ok {
			out = append(out, v)
		}
	}

	return out
}
