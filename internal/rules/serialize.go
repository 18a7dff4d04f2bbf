package rules

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

const indent = "  "

// encode writes indented JSON without HTML escaping, so expressions such as
// "a > b" stay readable. The trailing newline of the encoder is dropped.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Marshal renders a rule tree as canonical JSON: fixed key order, two-space
// indentation, and "items": null for terminal rules.
func Marshal(n *RuleNode) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil rule", ErrInvalidRule)
	}

	data, err := encode(n.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule %q: %w", n.PropID, err)
	}

	return data, nil
}

// MarshalSet renders a RuleSet as canonical JSON.
func MarshalSet(s *RuleSet) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil rule set", ErrInvalidRule)
	}

	c := *s
	c.ConversionRules = make([]*RuleNode, 0, len(s.ConversionRules))

	for _, root := range s.ConversionRules {
		if root == nil {
			return nil, fmt.Errorf("%w: nil root rule", ErrInvalidRule)
		}

		c.ConversionRules = append(c.ConversionRules, root.Clone())
	}

	data, err := encode(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule set: %w", err)
	}

	return data, nil
}

// Unmarshal reads a rule tree back. "items": [] and "items": null both
// decode to nil Items.
func Unmarshal(data []byte) (*RuleNode, error) {
	var n RuleNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to parse rule: %w", err)
	}

	return n.Clone(), nil
}

// UnmarshalSet reads a RuleSet back.
func UnmarshalSet(data []byte) (*RuleSet, error) {
	var s RuleSet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse rule set: %w", err)
	}

	roots := make([]*RuleNode, 0, len(s.ConversionRules))
	for i, root := range s.ConversionRules {
		if root == nil {
			return nil, fmt.Errorf("%w: conversionRules[%d] is null", ErrInvalidRule, i)
		}

		roots = append(roots, root.Clone())
	}

	s.ConversionRules = roots

	return &s, nil
}
