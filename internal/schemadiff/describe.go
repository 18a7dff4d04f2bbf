package schemadiff

import (
	"rulegen/internal/document"
	"rulegen/internal/match"
	"rulegen/internal/rules"
)

// Describe documents the structure of a single document: one rule per field
// mapping the field to itself, using the same root labels and id prefixes
// as Match.
func (m *Matcher) Describe(doc *document.Node) (*rules.RuleNode, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	switch {
	case doc.IsArray():
		items, err := m.describeElements(doc, "", nil, 1)
		if err != nil {
			return nil, err
		}

		return rules.NewRoot(PropRootArray, true, items), nil

	case doc.IsObject():
		items, err := m.describeFields(doc, "", nil, 1)
		if err != nil {
			return nil, err
		}

		return rules.NewRoot(PropRootObject, false, items), nil

	default:
		return rules.NewRoot(PropDirectMapping, false, nil), nil
	}
}

func (m *Matcher) describeElements(arr *document.Node, prefix string, path []string, depth int) ([]*rules.RuleNode, error) {
	if err := m.checkDepth(depth, path); err != nil {
		return nil, err
	}

	first, ok := arr.First()
	if !ok {
		return nil, nil
	}

	switch {
	case first.IsObject():
		return m.describeFields(first, prefix, path, depth+1)
	case first.IsArray():
		return m.describeElements(first, prefix, path, depth+1)
	default:
		return nil, nil
	}
}

func (m *Matcher) describeFields(obj *document.Node, prefix string, path []string, depth int) ([]*rules.RuleNode, error) {
	if err := m.checkDepth(depth, path); err != nil {
		return nil, err
	}

	items := make([]*rules.RuleNode, 0, len(obj.Fields))

	for _, field := range obj.Fields {
		fieldPath := append(path[:len(path):len(path)], field.Name)
		propID := match.FieldID(prefix, field.Name)

		var (
			children []*rules.RuleNode
			err      error
		)

		switch {
		case field.Value.IsObject():
			children, err = m.describeFields(field.Value, propID, fieldPath, depth+1)
		case field.Value.IsArray():
			children, err = m.describeElements(field.Value, propID, fieldPath, depth+1)
		}

		if err != nil {
			return nil, err
		}

		items = append(items, rules.NewRule(propID, field.Name, field.Name, field.Value.IsArray(), children))
	}

	return items, nil
}
