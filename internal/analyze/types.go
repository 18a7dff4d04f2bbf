package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"rulegen/internal/common"
)

// TypeID names a type by import path and identifier, e.g. rulegen/hr.Employee.
type TypeID struct {
	PkgPath string
	Name    string
}

func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind classifies a TypeInfo.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindBasic
	TypeKindStruct
	TypeKindPointer
	TypeKindSlice
	TypeKindArray
	TypeKindMap
	// TypeKindAlias is a named non-struct type, e.g. `type Status string`.
	TypeKindAlias
	// TypeKindExternal is a named type from a package that was not loaded.
	TypeKindExternal
)

var typeKindNames = [...]string{
	TypeKindBasic:    "basic",
	TypeKindStruct:   "struct",
	TypeKindPointer:  "pointer",
	TypeKindSlice:    "slice",
	TypeKindArray:    "array",
	TypeKindMap:      "map",
	TypeKindAlias:    "alias",
	TypeKindExternal: "external",
}

func (k TypeKind) String() string {
	if k <= TypeKindUnknown || int(k) >= len(typeKindNames) {
		return common.UnknownStr
	}

	return typeKindNames[k]
}

// TypeInfo is one node of the type graph. Unnamed types (*T, []T, map[K]V)
// have an empty ID and point at their element through ElemType.
type TypeInfo struct {
	ID   TypeID
	Kind TypeKind
	// Underlying is set for aliases.
	Underlying *TypeInfo
	// ElemType is the pointee, slice/array element or map value.
	ElemType *TypeInfo
	// Fields lists exported struct fields in declaration order.
	Fields []FieldInfo
	// Methods lists getters of named types.
	Methods []MethodInfo
	GoType  types.Type
}

func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// FieldInfo is an exported struct field.
type FieldInfo struct {
	Name string
	Type *TypeInfo
	Tag  reflect.StructTag
}

// JSONName returns the name from the json tag, or the Go name when the tag
// is absent or names nothing ("-" is handled by IsIgnored).
func (f *FieldInfo) JSONName() string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}

	return name
}

// IsIgnored reports a `json:"-"` field.
func (f *FieldInfo) IsIgnored() bool {
	return f.Tag.Get("json") == "-"
}

// MethodInfo describes a getter: exported, no parameters, one result.
type MethodInfo struct {
	Name   string
	Result *TypeInfo
	// PointerReceiver is set when the method is only in the pointer method set.
	PointerReceiver bool
}

// TypeGraph indexes the named types of the loaded packages.
type TypeGraph struct {
	Types    map[TypeID]*TypeInfo
	Packages map[string]*PackageInfo
}

func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    map[TypeID]*TypeInfo{},
		Packages: map[string]*PackageInfo{},
	}
}

// GetType returns nil for unknown ids.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo lists the exported named types of a loaded package in scope
// order.
type PackageInfo struct {
	Path  string
	Name  string
	Types []TypeID
}
