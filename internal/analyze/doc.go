// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build an in-memory
// model of structs, their fields and their accessor methods. The extractor
// uses it to enumerate the accessor names of declared source and target
// types.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/array/map/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - MethodInfo: describes a getter (exported, no params, one result)
package analyze
