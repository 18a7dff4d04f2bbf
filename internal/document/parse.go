package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth bounds nesting of parsed documents.
const DefaultMaxDepth = 64

// Content types understood by Parse.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

var (
	// ErrMalformed is wrapped by every parse failure.
	ErrMalformed = errors.New("malformed document")
	// ErrTooDeep is returned when nesting exceeds the configured depth.
	ErrTooDeep = errors.New("document nesting exceeds maximum depth")
	// ErrPathNotFound is returned by Select for a path matching nothing.
	ErrPathNotFound = errors.New("path not found in document")
)

type options struct {
	maxDepth int
}

// Option configures parsing.
type Option func(*options)

// WithMaxDepth overrides DefaultMaxDepth; n <= 0 keeps the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// DetectContentType guesses the content type of a file from its extension.
// Anything that is not .yaml or .yml is treated as JSON.
func DetectContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ContentTypeYAML
	default:
		return ContentTypeJSON
	}
}

// Parse dispatches on content type.
func Parse(data []byte, contentType string, opts ...Option) (*Node, error) {
	switch contentType {
	case ContentTypeYAML, "application/x-yaml", "text/yaml":
		return ParseYAML(data, opts...)
	case ContentTypeJSON, "":
		return ParseJSON(data, opts...)
	default:
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrMalformed, contentType)
	}
}

// ParseJSON parses exactly one JSON value, keeping object key order.
// Numbers are kept as json.Number. The token stream does not check ',' and
// ':' placement, so the syntax is validated with gjson first.
func ParseJSON(data []byte, opts ...Option) (*Node, error) {
	o := newOptions(opts)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	p := &jsonParser{dec: dec, maxDepth: o.maxDepth}

	root, err := p.value(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMalformed)
		}

		return nil, err
	}

	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		return nil, fmt.Errorf("%w: unexpected trailing data %v", ErrMalformed, tok)
	}

	return root, nil
}

type jsonParser struct {
	dec      *json.Decoder
	maxDepth int
}

func (p *jsonParser) value(depth int) (*Node, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch v := tok.(type) {
	case json.Delim:
		if depth > p.maxDepth {
			return nil, fmt.Errorf("%w (%d)", ErrTooDeep, p.maxDepth)
		}

		switch v {
		case '{':
			return p.object(depth)
		case '[':
			return p.array(depth)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrMalformed, rune(v))
		}
	case string, json.Number, bool, nil:
		return Scalar(v), nil
	case float64:
		return Scalar(v), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %T", ErrMalformed, tok)
	}
}

func (p *jsonParser) object(depth int) (*Node, error) {
	obj := Object()

	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key must be a string, got %v", ErrMalformed, tok)
		}

		val, err := p.value(depth + 1)
		if err != nil {
			return nil, unexpectedEOF(err)
		}

		obj.set(key, val)
	}

	return obj, p.closing('}')
}

func (p *jsonParser) array(depth int) (*Node, error) {
	arr := Array()

	for p.dec.More() {
		val, err := p.value(depth + 1)
		if err != nil {
			return nil, unexpectedEOF(err)
		}

		arr.Elems = append(arr.Elems, val)
	}

	return arr, p.closing(']')
}

func (p *jsonParser) closing(want json.Delim) error {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformed, rune(want), tok)
	}

	return nil
}

// unexpectedEOF turns a bare io.EOF inside a container into a parse error.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrMalformed, io.ErrUnexpectedEOF)
	}

	return err
}

// ParseYAML parses the first YAML document, keeping mapping key order.
// Aliases are expanded; the depth limit also stops alias cycles.
func ParseYAML(data []byte, opts ...Option) (*Node, error) {
	o := newOptions(opts)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if root.Kind == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	return fromYAML(&root, 1, o.maxDepth)
}

func fromYAML(n *yaml.Node, depth, maxDepth int) (*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrTooDeep, maxDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, fmt.Errorf("%w: empty input", ErrMalformed)
		}

		return fromYAML(n.Content[0], depth, maxDepth)

	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1, maxDepth)

	case yaml.MappingNode:
		obj := Object()

		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, n.Content[i].Line, err)
			}

			val, err := fromYAML(n.Content[i+1], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}

			obj.set(key, val)
		}

		return obj, nil

	case yaml.SequenceNode:
		arr := Array()

		for _, c := range n.Content {
			val, err := fromYAML(c, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}

			arr.Elems = append(arr.Elems, val)
		}

		return arr, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, n.Line, err)
		}

		return Scalar(v), nil

	default:
		return nil, fmt.Errorf("%w: unsupported YAML node kind %v", ErrMalformed, n.Kind)
	}
}

// Select extracts the sub-document at a gjson path from a JSON payload, for
// example documents wrapped in an envelope ("data.items"). An empty path
// returns data unchanged.
func Select(data []byte, path string) ([]byte, error) {
	if path == "" {
		return data, nil
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}

	return []byte(res.Raw), nil
}
