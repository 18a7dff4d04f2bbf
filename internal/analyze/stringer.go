package analyze

import (
	"strings"
)

// TypePath builds a locator path in directive syntax:
//   - "address" for a simple field
//   - "address.country" for a nested field
//   - "workExperience[]" for a collection field
//   - "workExperience[].company" for a field within collection elements
type TypePath struct {
	parts []string
}

// NewTypePath creates an empty TypePath.
func NewTypePath() *TypePath {
	return &TypePath{}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice marks the last segment as a collection.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += "[]"

	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer provides methods for creating readable type strings and paths.
type TypeStringer struct{}

// NewTypeStringer creates a new TypeStringer.
func NewTypeStringer() *TypeStringer {
	return &TypeStringer{}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.GoType.String()

	case TypeKindStruct:
		if t.IsNamed() {
			return t.ID.Name
		}
		return "struct{...}"

	case TypeKindPointer:
		return "*" + s.TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + s.TypeString(t.ElemType)

	case TypeKindArray, TypeKindMap:
		return t.GoType.String()

	case TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}
		return s.TypeString(t.Underlying)

	case TypeKindExternal:
		return t.ID.String()

	default:
		if t.GoType == nil {
			return "<unknown>"
		}
		return t.GoType.String()
	}
}

// FieldPaths returns every field locator of a record type in declaration
// order, depth first, using JSON names. Nesting stops below maxDepth.
func (s *TypeStringer) FieldPaths(root *TypeInfo, maxDepth int) []string {
	var result []string

	rec := Record(root)
	if rec == nil || rec.Kind != TypeKindStruct {
		return result
	}

	s.fieldPaths(rec, NewTypePath(), &result, 0, maxDepth, map[*TypeInfo]bool{})

	return result
}

func (s *TypeStringer) fieldPaths(t *TypeInfo, path *TypePath, result *[]string, depth, maxDepth int, visiting map[*TypeInfo]bool) {
	if depth >= maxDepth || visiting[t] {
		return
	}

	visiting[t] = true
	defer delete(visiting, t)

	for i := range t.Fields {
		field := &t.Fields[i]
		if field.IsIgnored() {
			continue
		}

		fieldPath := path.Field(field.JSONName())
		if IsCollection(field.Type) {
			fieldPath = fieldPath.Slice()
		}

		*result = append(*result, fieldPath.String())

		if nested := Record(field.Type); nested != nil && nested.Kind == TypeKindStruct {
			s.fieldPaths(nested, fieldPath, result, depth+1, maxDepth, visiting)
		}
	}
}
