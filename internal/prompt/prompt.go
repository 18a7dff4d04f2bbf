package prompt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"rulegen/internal/mapping"
	"rulegen/internal/rules"
)

// ErrNoJSON is returned when a response holds no '{' ... '}' span.
var ErrNoJSON = errors.New("no JSON object in response")

//go:embed prompt.tmpl
var promptTemplate string

var tmpl = template.Must(template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(promptTemplate))

type promptData struct {
	Operation         string
	Returns           string
	SourceType        string
	TargetType        string
	SourceContentType string
	TargetContentType string
	Definition        string
	Summary           []string
}

type options struct {
	sourceContentType string
	targetContentType string
}

// Option configures Build and Generate.
type Option func(*options)

// WithContentTypes sets the content types the answer must declare. Empty
// values keep application/json.
func WithContentTypes(source, target string) Option {
	return func(o *options) {
		if source != "" {
			o.sourceContentType = source
		}

		if target != "" {
			o.targetContentType = target
		}
	}
}

func newOptions(opts []Option) options {
	o := options{sourceContentType: rules.ContentTypeJSON, targetContentType: rules.ContentTypeJSON}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Build renders the prompt for one operation. source is the raw textual
// definition of the operation; when empty, the operation's own definition is
// used. summary may be nil.
func Build(op *mapping.Operation, summary *rules.RuleNode, source string, opts ...Option) (string, error) {
	if op == nil {
		return "", errors.New("nil operation")
	}

	o := newOptions(opts)

	if source == "" {
		source = op.Definition
	}

	data := promptData{
		Operation:         op.Name,
		Returns:           op.Returns.String(),
		SourceType:        op.SourceType,
		TargetType:        op.TargetType,
		SourceContentType: o.sourceContentType,
		TargetContentType: o.targetContentType,
		Definition:        source,
		Summary:           SummaryLines(summary),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt for %s: %w", op.Name, err)
	}

	return buf.String(), nil
}

// SummaryLines renders one line per rule, depth first, indented two spaces
// per level:
//
//	propID: EmployeeDTOList, source: $, target: $
//	  propID: EMPLOYEEID, source: employeeId, target: employeeId
func SummaryLines(root *rules.RuleNode) []string {
	if root == nil {
		return nil
	}

	var lines []string

	root.Walk(func(n *rules.RuleNode, depth int) bool {
		lines = append(lines, fmt.Sprintf("%spropID: %s, source: %s, target: %s",
			strings.Repeat("  ", depth), n.PropID, n.SourceLocation, n.TargetLocation))
		return true
	})

	return lines
}

// ExtractJSON returns the substring from the first '{' to the last '}'
// inclusive.
func ExtractJSON(response string) (string, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')

	if start < 0 || end < start {
		return "", ErrNoJSON
	}

	return response[start : end+1], nil
}
