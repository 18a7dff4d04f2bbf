package match

import (
	"strings"
)

// DefaultArrayKeywords are substrings that mark a path as a collection.
var DefaultArrayKeywords = []string{"list", "array", "collection", "items", "elements", "set", "map"}

// DefaultCollectionNouns are mass nouns that name a collection without a
// plural ending, matched case-insensitively as path suffixes
// ("workExperience", "orderHistory").
var DefaultCollectionNouns = []string{"experience", "history"}

// DefaultSingularExceptions are words ending in 's' that are not plurals.
var DefaultSingularExceptions = []string{"class", "status", "address", "process", "access", "success"}

// Classifier guesses whether a field path denotes a multi-valued relationship
// from its name alone. It is a naming-convention heuristic, not type
// inspection: false positives ("settings" contains "set") and false
// negatives ("people") are expected.
type Classifier struct {
	// Keywords are matched case-insensitively as substrings.
	Keywords []string
	// CollectionNouns are matched case-insensitively as suffixes.
	CollectionNouns []string
	// SingularExceptions are compared case-insensitively against the whole path.
	SingularExceptions []string
}

// DefaultClassifier returns a classifier with the built-in word lists.
func DefaultClassifier() Classifier {
	return Classifier{
		Keywords:           append([]string(nil), DefaultArrayKeywords...),
		CollectionNouns:    append([]string(nil), DefaultCollectionNouns...),
		SingularExceptions: append([]string(nil), DefaultSingularExceptions...),
	}
}

// LooksLikeArray reports whether the target path (or the source path when the
// target is empty) looks like a collection.
func (c Classifier) LooksLikeArray(sourcePath, targetPath string) bool {
	path := targetPath
	if path == "" {
		path = sourcePath
	}

	if path == "" {
		return false
	}

	lower := strings.ToLower(path)

	for _, kw := range c.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}

	for _, noun := range c.CollectionNouns {
		if noun != "" && strings.HasSuffix(lower, strings.ToLower(noun)) {
			return true
		}
	}

	if !strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "ss") {
		return false
	}

	for _, ex := range c.SingularExceptions {
		if strings.EqualFold(path, ex) {
			return false
		}
	}

	return true
}

var defaultClassifier = DefaultClassifier()

// LooksLikeArray applies the default classifier.
func LooksLikeArray(sourcePath, targetPath string) bool {
	return defaultClassifier.LooksLikeArray(sourcePath, targetPath)
}
