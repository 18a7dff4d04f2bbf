package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping into pairs, keeping key order.
func (p *OrderedPairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: 121 must be a mapping of source: target", node.Line)
	}

	pairs := make(OrderedPairs, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var pair Pair

		if err := node.Content[i].Decode(&pair.Source); err != nil {
			return fmt.Errorf("line %d: invalid 121 source: %w", node.Content[i].Line, err)
		}

		if err := node.Content[i+1].Decode(&pair.Target); err != nil {
			return fmt.Errorf("line %d: invalid 121 target: %w", node.Content[i+1].Line, err)
		}

		pairs = append(pairs, pair)
	}

	*p = pairs

	return nil
}

// MarshalYAML encodes pairs as a YAML mapping in order.
func (p OrderedPairs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, pair := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Source},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Target},
		)
	}

	return node, nil
}

// UnmarshalYAML accepts a shape name, case-sensitively.
func (r *ReturnShape) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: returns must be a string: %w", node.Line, err)
	}

	*r = ReturnShape(s)

	return nil
}
