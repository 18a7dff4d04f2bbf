package match

// Levenshtein computes the edit distance between two strings, byte-wise.
// Only two rows of the matrix are kept.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity scores two field names between 0 and 1 after normalization:
// 1 - distance/max(len). Two empty names are identical.
func Similarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)
	if len(na) == 0 && len(nb) == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(na, nb))/float64(max(len(na), len(nb)))
}
