package schemadiff

import (
	"errors"
	"fmt"
	"strings"

	"rulegen/internal/diagnostic"
	"rulegen/internal/document"
	"rulegen/internal/log"
	"rulegen/internal/match"
	"rulegen/internal/rules"
)

// Root rule labels.
const (
	PropRootArray     = "RootArray"
	PropRootObject    = "RootObject"
	PropDirectMapping = "DirectMapping"
)

// DefaultMaxDepth bounds recursion into nested documents.
const DefaultMaxDepth = 64

var (
	// ErrMaxDepth is returned when documents nest deeper than MaxDepth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
	// ErrNilDocument is returned when a document is missing.
	ErrNilDocument = errors.New("nil document")
)

// Options configures a Matcher.
type Options struct {
	// FuzzyThreshold enables the edit-distance tier when positive.
	FuzzyThreshold float64
	// MaxDepth bounds recursion; zero means DefaultMaxDepth.
	MaxDepth int
	// Name labels diagnostics, e.g. the document pair being compared.
	Name string
	// Logger defaults to a noop logger.
	Logger log.Logger
}

// Matcher pairs documents. It holds no mutable state.
type Matcher struct {
	fuzzy    float64
	maxDepth int
	name     string
	logger   log.Logger
}

// New creates a Matcher.
func New(opts Options) *Matcher {
	m := &Matcher{
		fuzzy:    opts.FuzzyThreshold,
		maxDepth: opts.MaxDepth,
		name:     opts.Name,
		logger:   log.NewLogger(opts.Logger).WithFields(log.Fields{log.ModuleField: "schemadiff"}),
	}

	if m.maxDepth <= 0 {
		m.maxDepth = DefaultMaxDepth
	}

	return m
}

// session collects the findings of one invocation.
type session struct {
	*Matcher
	diags *diagnostic.Diagnostics
}

// Match builds the rule tree mapping source to target. The root always maps
// "$" to "$".
func (m *Matcher) Match(source, target *document.Node) (*rules.RuleNode, *diagnostic.Diagnostics, error) {
	s := &session{Matcher: m, diags: &diagnostic.Diagnostics{}}

	if source == nil || target == nil {
		return nil, s.diags, ErrNilDocument
	}

	var (
		root *rules.RuleNode
		err  error
	)

	switch {
	case source.IsArray() && target.IsArray():
		var items []*rules.RuleNode

		items, err = s.elementItems(source, target, "", nil, 1)
		root = rules.NewRoot(PropRootArray, true, items)

	case source.IsObject() && target.IsObject():
		var items []*rules.RuleNode

		items, err = s.matchFields(source, target, "", nil, 1)
		root = rules.NewRoot(PropRootObject, false, items)

	default:
		root = rules.NewRoot(PropDirectMapping, false, nil)
	}

	if err != nil {
		return nil, s.diags, err
	}

	m.logger.Debug("documents matched", log.Fields{"rules": root.Count() - 1, "unmapped": len(s.diags.ByCode(diagnostic.CodeUnmappedField))})

	return root, s.diags, nil
}

// elementItems matches the first elements of two arrays.
func (s *session) elementItems(source, target *document.Node, prefix string, path []string, depth int) ([]*rules.RuleNode, error) {
	if err := s.checkDepth(depth, path); err != nil {
		return nil, err
	}

	src, ok := source.First()
	if !ok {
		return nil, nil
	}

	tgt, ok := target.First()
	if !ok {
		return nil, nil
	}

	switch {
	case src.IsObject() && tgt.IsObject():
		return s.matchFields(src, tgt, prefix, path, depth+1)
	case src.IsArray() && tgt.IsArray():
		return s.elementItems(src, tgt, prefix, path, depth+1)
	default:
		return nil, nil
	}
}

// matchFields emits one rule per target field, in target order.
func (s *session) matchFields(source, target *document.Node, prefix string, path []string, depth int) ([]*rules.RuleNode, error) {
	if err := s.checkDepth(depth, path); err != nil {
		return nil, err
	}

	sourceNames := source.FieldNames()
	items := make([]*rules.RuleNode, 0, len(target.Fields))

	for _, field := range target.Fields {
		fieldPath := append(path[:len(path):len(path)], field.Name)

		found := match.FindSource(field.Name, sourceNames, s.fuzzy)
		if !found.Found() {
			items = append(items, s.unmapped(prefix, field, fieldPath))
			continue
		}

		if found.Tier == match.TierFuzzy {
			s.diags.AddInfo(diagnostic.CodeFuzzyMatch,
				fmt.Sprintf("matched %q by similarity %.2f", found.Name, found.Score), s.name, strings.Join(fieldPath, "."))
		}

		srcValue, _ := source.Get(found.Name)
		propID := match.FieldID(prefix, field.Name)

		var (
			children []*rules.RuleNode
			isArray  bool
			err      error
		)

		switch {
		case srcValue.IsArray() && field.Value.IsArray():
			isArray = true
			children, err = s.elementItems(srcValue, field.Value, propID, fieldPath, depth+1)
		case srcValue.IsObject() && field.Value.IsObject():
			children, err = s.matchFields(srcValue, field.Value, propID, fieldPath, depth+1)
		}

		if err != nil {
			return nil, err
		}

		items = append(items, rules.NewRule(propID, found.Name, field.Name, isArray, children))
	}

	return items, nil
}

func (s *session) unmapped(prefix string, field document.Field, path []string) *rules.RuleNode {
	fieldPath := strings.Join(path, ".")

	s.diags.AddInfo(diagnostic.CodeUnmappedField,
		fmt.Sprintf("no source field matches %q", field.Name), s.name, fieldPath)
	s.logger.Debug("unmapped target field", log.Fields{"field": fieldPath})

	return rules.Terminal(match.UnmappedID(prefix, field.Name), rules.Unknown, field.Name, field.Value.IsArray())
}

func (m *Matcher) checkDepth(depth int, path []string) error {
	if depth > m.maxDepth {
		return fmt.Errorf("%w: %d levels at %q", ErrMaxDepth, m.maxDepth, strings.Join(path, "."))
	}

	return nil
}
