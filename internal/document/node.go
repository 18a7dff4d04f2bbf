package document

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

import "rulegen/internal/common"

// Kind is the variant of a document node.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindScalar
)

// Node is one value of a parsed document.
type Node struct {
	Kind Kind
	// Fields of an object, in input order.
	Fields []Field
	// Elems of an array.
	Elems []*Node
	// Value of a scalar: string, json.Number (JSON), int/float64 (YAML), bool, or nil.
	Value any
}

// Field is a named object member.
type Field struct {
	Name  string
	Value *Node
}

// Object builds an object node.
func Object(fields ...Field) *Node {
	return &Node{Kind: KindObject, Fields: fields}
}

// Array builds an array node.
func Array(elems ...*Node) *Node {
	return &Node{Kind: KindArray, Elems: elems}
}

// Scalar builds a scalar node.
func Scalar(v any) *Node {
	return &Node{Kind: KindScalar, Value: v}
}

// F is shorthand for a Field.
func F(name string, value *Node) Field {
	return Field{Name: name, Value: value}
}

// IsObject reports whether n is a non-nil object.
func (n *Node) IsObject() bool { return n != nil && n.Kind == KindObject }

// IsArray reports whether n is a non-nil array.
func (n *Node) IsArray() bool { return n != nil && n.Kind == KindArray }

// IsScalar reports whether n is a non-nil scalar, including null.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == KindScalar }

// Get returns the value of the named field of an object.
func (n *Node) Get(name string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}

	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// FieldNames returns object field names in order.
func (n *Node) FieldNames() []string {
	if !n.IsObject() {
		return nil
	}

	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.Name
	}

	return names
}

// First returns the first element of a non-empty array.
func (n *Node) First() (*Node, bool) {
	if !n.IsArray() {
		return nil, false
	}

	return common.First(n.Elems)
}

// Depth returns the nesting depth; scalars and empty containers are depth 1.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}

	deepest := 0

	switch n.Kind {
	case KindObject:
		for _, f := range n.Fields {
			deepest = max(deepest, f.Value.Depth())
		}
	case KindArray:
		for _, e := range n.Elems {
			deepest = max(deepest, e.Depth())
		}
	}

	return deepest + 1
}

// set stores value under name, replacing an earlier duplicate in place so
// the first occurrence keeps its position and the last value wins.
func (n *Node) set(name string, value *Node) {
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			n.Fields[i].Value = value
			return
		}
	}

	n.Fields = append(n.Fields, Field{Name: name, Value: value})
}
