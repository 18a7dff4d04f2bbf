package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"rulegen/internal/analyze"
	"rulegen/internal/common"
	"rulegen/internal/diagnostic"
	"rulegen/internal/log"
	"rulegen/internal/mapping"
	"rulegen/internal/match"
	"rulegen/internal/rules"
)

var (
	// ErrRejected is returned when a directive was rejected by policy.
	ErrRejected = errors.New("directive rejected")
	// ErrUnresolvedType is returned when returns: auto names a type that the
	// type graph does not hold.
	ErrUnresolvedType = errors.New("unresolved type")
	// ErrInvalidFile is returned when a directive file fails validation.
	ErrInvalidFile = errors.New("invalid directive file")
)

// DefaultLabel names the root of an operation without a name.
const DefaultLabel = "Root"

// Extractor turns mapping operations into rule trees. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	classifier match.Classifier
	targetOnly TargetOnlyPolicy
	maxDepth   int
	graph      *analyze.TypeGraph
	limit      int
	logger     log.Logger
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	e := &Extractor{
		classifier: match.DefaultClassifier(),
		targetOnly: opts.TargetOnly,
		maxDepth:   opts.MaxDepth,
		graph:      opts.Graph,
		limit:      opts.Concurrency,
		logger:     log.NewLogger(opts.Logger).WithFields(log.Fields{log.ModuleField: "extract"}),
	}

	if opts.Classifier != nil {
		e.classifier = *opts.Classifier
	}

	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}

	return e
}

// Extract builds the rule tree of one operation. On error no tree is
// returned; the diagnostics describe every finding either way.
func (e *Extractor) Extract(op *mapping.Operation) (*rules.RuleNode, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}
	logger := e.logger.WithFields(log.Fields{"operation": op.Name})

	collection, err := e.returnsCollection(op, diags)
	if err != nil {
		return nil, diags, err
	}

	var (
		items    []*rules.RuleNode
		rejected bool
	)

	for i, d := range op.AllDirectives() {
		rule, ok := e.directiveRule(op.Name, i, d, diags, logger)
		if !ok {
			rejected = rejected || (d.IsTargetOnly() && e.targetOnly == TargetOnlyReject)
			continue
		}

		items = append(items, rule)
	}

	if rejected {
		return nil, diags, fmt.Errorf("operation %s: %w", op.Name, ErrRejected)
	}

	if common.IsEmpty(items) {
		items = e.intersect(op, diags, logger)
	}

	root := rules.NewRoot(Label(op.Name, collection), collection, items)
	if err := root.ValidateRoot(); err != nil {
		return nil, diags, fmt.Errorf("operation %s: %w", op.Name, err)
	}

	logger.Debug("operation extracted", log.Fields{"rules": len(items), "collection": collection})

	return root, diags, nil
}

// ExtractFile validates a directive file and extracts all of its
// operations concurrently. Roots keep the operation order.
func (e *Extractor) ExtractFile(ctx context.Context, f *mapping.File) (*rules.RuleSet, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	if res := mapping.Validate(f); res.HasErrors() {
		diags.Errors = res.Errors
		return nil, diags, fmt.Errorf("%w: %w", ErrInvalidFile, res.Error())
	}

	roots := make([]*rules.RuleNode, len(f.Operations))
	opDiags := make([]*diagnostic.Diagnostics, len(f.Operations))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := range f.Operations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			root, d, err := e.Extract(&f.Operations[i])
			opDiags[i] = d
			roots[i] = root

			return err
		})
	}

	err := g.Wait()

	for _, d := range opDiags {
		diags.Merge(d)
	}

	if err != nil {
		return nil, diags, err
	}

	return rules.NewRuleSet(f.SourceContentType, f.TargetContentType, roots...), diags, nil
}

func (e *Extractor) returnsCollection(op *mapping.Operation, diags *diagnostic.Diagnostics) (bool, error) {
	switch op.Returns {
	case mapping.ReturnsScalar, "":
		return false, nil
	case mapping.ReturnsCollection:
		return true, nil
	case mapping.ReturnsAuto:
		t := analyze.ResolveTypeID(op.TargetType, e.graph)
		if t == nil {
			diags.AddError(diagnostic.CodeTypeNotFound,
				fmt.Sprintf("cannot derive return shape: target type %q not found", op.TargetType), op.Name, "")
			return false, fmt.Errorf("operation %s: target type %q: %w", op.Name, op.TargetType, ErrUnresolvedType)
		}

		return analyze.IsCollection(t), nil
	default:
		diags.AddError(diagnostic.CodeInvalidReturns,
			fmt.Sprintf("returns %q must be one of scalar, collection, auto", string(op.Returns)), op.Name, "")
		return false, fmt.Errorf("operation %s: invalid returns %q", op.Name, string(op.Returns))
	}
}

// directiveRule returns false when the directive produces no rule.
func (e *Extractor) directiveRule(
	opName string,
	index int,
	d mapping.Directive,
	diags *diagnostic.Diagnostics,
	logger log.Logger,
) (*rules.RuleNode, bool) {
	fields := log.Fields{"directive": index + 1, "source": d.Source, "target": d.Target}

	var source string

	switch {
	case d.IsEmpty():
		diags.AddInfo(diagnostic.CodeSkippedDirective,
			fmt.Sprintf("directive #%d is empty", index+1), opName, "")
		logger.Debug("skipping empty directive", fields)

		return nil, false

	case d.Expression != "":
		source = rules.Expression(d.Expression)

	case d.Source != "":
		source = d.Source

	default:
		if e.targetOnly == TargetOnlyReject {
			diags.AddError(diagnostic.CodeTargetOnlyDirective,
				"directive has a target but no source or expression", opName, d.Target)
			logger.Error(ErrRejected, "rejecting target-only directive", fields)

			return nil, false
		}

		diags.AddWarning(diagnostic.CodeTargetOnlyDirective,
			"directive has no source or expression; target used as source", opName, d.Target)
		logger.Warn(nil, "target-only directive, using target as source", fields)

		source = d.Target
	}

	if d.Target == "" {
		diags.AddInfo(diagnostic.CodeLowInformation,
			fmt.Sprintf("directive #%d targets no field", index+1), opName, d.Source)
		logger.Debug("directive without target", fields)
	}

	rule := rules.NewRule(
		match.PropertyID(d.Source, d.Target),
		source,
		d.Target,
		e.classifier.LooksLikeArray(d.Source, d.Target),
		e.nested(opName, d.Source, diags),
	)
	rule.CustomLogic = d.Expression

	return rule, true
}

// nested expands "a.b.c" into terminal children b and c. Sources naming a
// List or Array are not expanded.
func (e *Extractor) nested(opName, source string, diags *diagnostic.Diagnostics) []*rules.RuleNode {
	if !strings.Contains(source, ".") || strings.Contains(source, "List") || strings.Contains(source, "Array") {
		return nil
	}

	segments := strings.Split(source, ".")[1:]
	if len(segments) > e.maxDepth {
		diags.AddWarning(diagnostic.CodeNestingTruncated,
			fmt.Sprintf("nested expansion truncated to %d segments", e.maxDepth), opName, source)
		segments = segments[:e.maxDepth]
	}

	children := make([]*rules.RuleNode, 0, len(segments))
	for _, seg := range segments {
		children = append(children, rules.Terminal(strings.ToUpper(seg), seg, seg, false))
	}

	return children
}

func (e *Extractor) intersect(op *mapping.Operation, diags *diagnostic.Diagnostics, logger log.Logger) []*rules.RuleNode {
	sourceFields := e.accessors(op, op.SourceFields, op.SourceType, diags)
	targetFields := e.accessors(op, op.TargetFields, op.TargetType, diags)

	shared := common.Intersect(sourceFields, targetFields)
	if common.IsEmpty(shared) {
		return nil
	}

	diags.AddInfo(diagnostic.CodeNameIntersection,
		fmt.Sprintf("no directive produced a rule; mapped %d shared names", len(shared)), op.Name, "")
	logger.Debug("falling back to name intersection", log.Fields{"names": shared})

	items := make([]*rules.RuleNode, 0, len(shared))
	for _, name := range shared {
		items = append(items, rules.Terminal(match.PropertyID(name, name), name, name, false))
	}

	return items
}

// accessors prefers explicit names over the declared Go type.
func (e *Extractor) accessors(op *mapping.Operation, explicit []string, typeID string, diags *diagnostic.Diagnostics) []string {
	if len(explicit) > 0 || typeID == "" {
		return explicit
	}

	if e.graph == nil {
		diags.AddWarning(diagnostic.CodeTypeNotFound,
			fmt.Sprintf("type %q declared but no Go packages were loaded", typeID), op.Name, "")
		return nil
	}

	t := analyze.ResolveTypeID(typeID, e.graph)
	if t == nil {
		diags.AddWarning(diagnostic.CodeTypeNotFound,
			fmt.Sprintf("type %q not found in loaded packages", typeID), op.Name, "")
		return nil
	}

	return analyze.AccessorNames(t)
}

// Label derives the root propID from an operation name: everything through
// the first "To" followed by an upper-case letter is dropped, the first rune
// is upper-cased, and collections get a "List" suffix.
//   - Label("employeeToEmployeeDTO", true) == "EmployeeDTOList"
//   - Label("totalize", false) == "Totalize"
func Label(name string, collection bool) string {
	label := name

	for i := 0; ; {
		j := strings.Index(label[i:], "To")
		if j < 0 {
			break
		}

		at := i + j + len("To")
		if r, _ := utf8.DecodeRuneInString(label[at:]); unicode.IsUpper(r) {
			label = label[at:]
			break
		}

		i = at
	}

	label = match.UpperCamel(label)
	if label == "" {
		label = DefaultLabel
	}

	if collection && !strings.HasSuffix(label, "List") {
		label += "List"
	}

	return label
}
