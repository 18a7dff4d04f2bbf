package extract

import (
	"fmt"

	"rulegen/internal/analyze"
	"rulegen/internal/log"
	"rulegen/internal/match"
)

// DefaultMaxDepth bounds nested expansion of a single source path.
const DefaultMaxDepth = 64

// TargetOnlyPolicy decides what happens to a directive that has a target but
// neither a source nor an expression.
type TargetOnlyPolicy int

const (
	// TargetOnlyFallback uses the target as the source locator and records a
	// warning.
	TargetOnlyFallback TargetOnlyPolicy = iota
	// TargetOnlyReject drops the directive with an error and fails the
	// operation.
	TargetOnlyReject
)

// String returns the policy name used in configuration.
func (p TargetOnlyPolicy) String() string {
	switch p {
	case TargetOnlyFallback:
		return "fallback"
	case TargetOnlyReject:
		return "reject"
	default:
		return fmt.Sprintf("TargetOnlyPolicy(%d)", int(p))
	}
}

// ParseTargetOnlyPolicy parses "fallback" or "reject"; empty means fallback.
func ParseTargetOnlyPolicy(s string) (TargetOnlyPolicy, error) {
	switch s {
	case "", "fallback":
		return TargetOnlyFallback, nil
	case "reject":
		return TargetOnlyReject, nil
	default:
		return 0, fmt.Errorf("invalid target-only policy %q: must be fallback or reject", s)
	}
}

// Options configures an Extractor.
type Options struct {
	// Classifier decides isArray; nil uses match.DefaultClassifier.
	Classifier *match.Classifier
	// TargetOnly is the policy for target-only directives.
	TargetOnly TargetOnlyPolicy
	// MaxDepth bounds nested expansion; zero means DefaultMaxDepth.
	MaxDepth int
	// Graph resolves source_type and target_type; optional.
	Graph *analyze.TypeGraph
	// Concurrency limits parallel operations in ExtractFile; zero is unlimited.
	Concurrency int
	// Logger defaults to a noop logger.
	Logger log.Logger
}
