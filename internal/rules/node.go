package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Locator sentinels.
const (
	// Root is the locator of the document itself.
	Root = "$"
	// Unknown is the source locator of a target field with no counterpart.
	Unknown = "UNKNOWN"
	// ExpressionPrefix introduces verbatim custom logic in a source locator.
	ExpressionPrefix = "EXPRESSION: "
)

// Default content types for RuleSet documents.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

// RuleNode is one conversion rule and, for composite mappings, its children.
type RuleNode struct {
	// PropID is a descriptive label; it is not unique and not used for lookup.
	PropID string `json:"propID"`
	// SourceLocation is a dotted path, Root, Unknown, or ExpressionPrefix+logic.
	SourceLocation string `json:"sourceLocation"`
	// TargetLocation is a dotted path or Root.
	TargetLocation string `json:"targetLocation"`
	// IsArray marks a collection-to-collection relationship.
	IsArray bool `json:"isArray"`
	// Items is nil for terminal rules.
	Items []*RuleNode `json:"items"`
	// CustomLogic describes a non-trivial transformation.
	CustomLogic string `json:"customLogic,omitempty"`
}

// NewRoot builds a root rule ($ -> $).
func NewRoot(propID string, isArray bool, items []*RuleNode) *RuleNode {
	return NewRule(propID, Root, Root, isArray, items)
}

// NewRule builds a rule; an empty items slice is stored as nil.
func NewRule(propID, source, target string, isArray bool, items []*RuleNode) *RuleNode {
	if len(items) == 0 {
		items = nil
	}

	return &RuleNode{
		PropID:         propID,
		SourceLocation: source,
		TargetLocation: target,
		IsArray:        isArray,
		Items:          items,
	}
}

// Terminal builds a rule without children.
func Terminal(propID, source, target string, isArray bool) *RuleNode {
	return NewRule(propID, source, target, isArray, nil)
}

// Expression returns the source locator for a custom-logic mapping.
func Expression(logic string) string {
	return ExpressionPrefix + logic
}

// IsTerminal reports whether the rule has no children.
func (n *RuleNode) IsTerminal() bool {
	return len(n.Items) == 0
}

// IsRoot reports whether both locators are Root.
func (n *RuleNode) IsRoot() bool {
	return n.SourceLocation == Root && n.TargetLocation == Root
}

// IsUnmapped reports whether the rule is a placeholder for a target field
// with no source counterpart.
func (n *RuleNode) IsUnmapped() bool {
	return n.SourceLocation == Unknown
}

// IsExpression reports whether the source locator carries custom logic.
func (n *RuleNode) IsExpression() bool {
	return strings.HasPrefix(n.SourceLocation, ExpressionPrefix)
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func (n *RuleNode) Walk(fn func(node *RuleNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *RuleNode) walk(fn func(*RuleNode, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}

	for _, child := range n.Items {
		child.walk(fn, depth+1)
	}
}

// Count returns the number of rules in the tree rooted at n.
func (n *RuleNode) Count() int {
	count := 0
	n.Walk(func(*RuleNode, int) bool {
		count++
		return true
	})

	return count
}

// Equal reports structural equality on every field, recursively.
// Nil and empty Items are considered equal.
func (n *RuleNode) Equal(other *RuleNode) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.PropID != other.PropID ||
		n.SourceLocation != other.SourceLocation ||
		n.TargetLocation != other.TargetLocation ||
		n.IsArray != other.IsArray ||
		n.CustomLogic != other.CustomLogic ||
		len(n.Items) != len(other.Items) {
		return false
	}

	for i := range n.Items {
		if !n.Items[i].Equal(other.Items[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy with empty Items normalized to nil.
func (n *RuleNode) Clone() *RuleNode {
	if n == nil {
		return nil
	}

	c := *n
	c.Items = nil

	for _, child := range n.Items {
		c.Items = append(c.Items, child.Clone())
	}

	return &c
}

var (
	// ErrInvalidRule is wrapped by every Validate failure.
	ErrInvalidRule = errors.New("invalid rule")
)

// Validate checks the locator invariants of the whole tree: source locators
// are non-empty, and Unknown is only used as a source locator of a terminal
// rule. An empty target marks a low-information directive.
func (n *RuleNode) Validate() error {
	var err error

	n.Walk(func(node *RuleNode, depth int) bool {
		if err != nil {
			return false
		}

		err = node.validateSelf(depth)

		return err == nil
	})

	return err
}

// ValidateRoot runs Validate and also requires n to be a root rule.
func (n *RuleNode) ValidateRoot() error {
	if n == nil {
		return fmt.Errorf("%w: nil root", ErrInvalidRule)
	}

	if !n.IsRoot() {
		return fmt.Errorf("%w: root %q maps %q -> %q, want %q -> %q",
			ErrInvalidRule, n.PropID, n.SourceLocation, n.TargetLocation, Root, Root)
	}

	return n.Validate()
}

func (n *RuleNode) validateSelf(depth int) error {
	switch {
	case n.SourceLocation == "":
		return fmt.Errorf("%w: %q at depth %d has an empty source location", ErrInvalidRule, n.PropID, depth)
	case n.TargetLocation == Unknown:
		return fmt.Errorf("%w: %q uses %q as a target location", ErrInvalidRule, n.PropID, Unknown)
	case n.IsUnmapped() && !n.IsTerminal():
		return fmt.Errorf("%w: unmapped rule %q has children", ErrInvalidRule, n.PropID)
	}

	return nil
}

// RuleSet is the wire document holding one or more root rules.
type RuleSet struct {
	SourceContentType string      `json:"sourceContentType"`
	TargetContentType string      `json:"targetContentType"`
	ConversionRules   []*RuleNode `json:"conversionRules"`
}

// NewRuleSet wraps roots with content types; empty types default to JSON.
func NewRuleSet(sourceContentType, targetContentType string, roots ...*RuleNode) *RuleSet {
	if sourceContentType == "" {
		sourceContentType = ContentTypeJSON
	}

	if targetContentType == "" {
		targetContentType = ContentTypeJSON
	}

	if roots == nil {
		roots = []*RuleNode{}
	}

	return &RuleSet{
		SourceContentType: sourceContentType,
		TargetContentType: targetContentType,
		ConversionRules:   roots,
	}
}

// Equal compares content types and every root rule.
func (s *RuleSet) Equal(other *RuleSet) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.SourceContentType != other.SourceContentType ||
		s.TargetContentType != other.TargetContentType ||
		len(s.ConversionRules) != len(other.ConversionRules) {
		return false
	}

	for i := range s.ConversionRules {
		if !s.ConversionRules[i].Equal(other.ConversionRules[i]) {
			return false
		}
	}

	return true
}
