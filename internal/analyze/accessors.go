package analyze

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"rulegen/internal/common"
)

// Record returns the type whose fields describe one record: pointers and
// named wrappers are followed, and collections yield their element type.
func Record(t *TypeInfo) *TypeInfo {
	for range maxUnwrap {
		if t == nil {
			return nil
		}

		switch t.Kind {
		case TypeKindPointer, TypeKindSlice, TypeKindArray, TypeKindMap:
			t = t.ElemType
		case TypeKindAlias:
			t = t.Underlying
		default:
			return t
		}
	}

	return t
}

// maxUnwrap bounds Record and IsCollection on self-referencing types.
const maxUnwrap = 32

// IsCollection reports whether t is a slice, array or map, possibly behind
// pointers or named types.
func IsCollection(t *TypeInfo) bool {
	for range maxUnwrap {
		if t == nil {
			return false
		}

		switch t.Kind {
		case TypeKindSlice, TypeKindArray, TypeKindMap:
			return true
		case TypeKindPointer:
			t = t.ElemType
		case TypeKindAlias:
			t = t.Underlying
		default:
			return false
		}
	}

	return false
}

// AccessorNames returns the accessor names of a record type: JSON names of
// exported fields in declaration order, then getter names. A getter
// "GetSalary" yields "salary" and "DisplayName" yields "displayName".
// Methods of the named type t itself are used even when t wraps a
// collection; fields come from the record element.
func AccessorNames(t *TypeInfo) []string {
	if t == nil {
		return nil
	}

	var names []string

	if rec := Record(t); rec != nil {
		for i := range rec.Fields {
			f := &rec.Fields[i]
			if f.IsIgnored() {
				continue
			}

			names = append(names, f.JSONName())
		}

		names = append(names, getterNames(rec)...)
	}

	if IsCollection(t) {
		return common.Unique(names)
	}

	return common.Unique(append(names, getterNames(t)...))
}

func getterNames(t *TypeInfo) []string {
	names := make([]string, 0, len(t.Methods))
	for _, m := range t.Methods {
		names = append(names, GetterName(m.Name))
	}

	return names
}

// GetterName maps a getter method name to its accessor name. A leading
// initialism is lower-cased as a whole ("GetURLPath" yields "urlPath").
func GetterName(method string) string {
	name := method
	if rest, ok := strings.CutPrefix(method, "Get"); ok && rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) {
			name = rest
		}
	}

	runes := []rune(name)

	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	switch {
	case upper == len(runes):
		return strings.ToLower(name)
	case upper > 1:
		upper--
	}

	for i := range upper {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// ResolveTypeID resolves a type ID string like:
// - "hr.Employee" (short)
// - "rulegen/hr.Employee" (full)
// - "Employee" (name only).
//
// Short and name-only forms pick the lexically first package path on
// ambiguity.
func ResolveTypeID(typeIDStr string, graph *TypeGraph) *TypeInfo {
	if graph == nil || typeIDStr == "" {
		return nil
	}

	lastDot := strings.LastIndex(typeIDStr, ".")

	pkgStr, name := "", typeIDStr
	if lastDot >= 0 {
		pkgStr, name = typeIDStr[:lastDot], typeIDStr[lastDot+1:]
		if pkgStr == "" || name == "" {
			return nil
		}

		if t := graph.GetType(TypeID{PkgPath: pkgStr, Name: name}); t != nil {
			return t
		}
	}

	var best *TypeInfo

	for id, t := range graph.Types {
		if id.Name != name {
			continue
		}

		if pkgStr != "" && id.PkgPath != pkgStr && !strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			continue
		}

		if best == nil || id.PkgPath < best.ID.PkgPath {
			best = t
		}
	}

	return best
}
