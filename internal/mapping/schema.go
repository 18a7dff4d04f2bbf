package mapping

import (
	"rulegen/internal/common"
)

// File represents the root of a YAML directive file.
type File struct {
	// Version of the directive schema.
	Version string `yaml:"version,omitempty"`

	// SourceContentType and TargetContentType label the produced RuleSet.
	SourceContentType string `yaml:"source_content_type,omitempty"`
	TargetContentType string `yaml:"target_content_type,omitempty"`

	// Operations are the mapping operations, in file order.
	Operations []Operation `yaml:"operations"`
}

// Operation is one conceptual mapping, such as mapping a list of records.
type Operation struct {
	// Name labels the root rule ("employeeToEmployeeDTO").
	Name string `yaml:"name"`

	// Returns is the operation's return shape.
	Returns ReturnShape `yaml:"returns,omitempty"`

	// SourceType and TargetType are optional Go type ids ("hr.Employee")
	// used to enumerate accessor names and, for ReturnsAuto, collection-ness.
	SourceType string `yaml:"source_type,omitempty"`
	TargetType string `yaml:"target_type,omitempty"`

	// OneToOne is the 1:1 shorthand, source path -> target path.
	// Priority: before Directives.
	OneToOne OrderedPairs `yaml:"121,omitempty"`

	// Directives are the explicit field directives, in order.
	Directives []Directive `yaml:"directives,omitempty"`

	// SourceFields and TargetFields feed the name-intersection fallback.
	SourceFields []string `yaml:"source_fields,omitempty"`
	TargetFields []string `yaml:"target_fields,omitempty"`

	// Definition is the raw textual definition of the operation, used only to
	// ground text-completion prompts.
	Definition string `yaml:"definition,omitempty"`
}

// Directive is one (source, target, expression) triple.
type Directive struct {
	Source     string `yaml:"source,omitempty"`
	Target     string `yaml:"target,omitempty"`
	Expression string `yaml:"expression,omitempty"`
}

// IsEmpty reports whether the directive carries no information.
func (d Directive) IsEmpty() bool {
	return d.Source == "" && d.Target == "" && d.Expression == ""
}

// IsTargetOnly reports whether only a target was given.
func (d Directive) IsTargetOnly() bool {
	return d.Source == "" && d.Expression == "" && d.Target != ""
}

// ReturnShape is the declared return kind of an operation.
type ReturnShape string

const (
	// ReturnsScalar is a single record.
	ReturnsScalar ReturnShape = "scalar"
	// ReturnsCollection is a list, array, set or similar.
	ReturnsCollection ReturnShape = "collection"
	// ReturnsAuto derives the shape from the Go target type.
	ReturnsAuto ReturnShape = "auto"
)

// IsValid returns true if the shape is a recognized value.
func (r ReturnShape) IsValid() bool {
	return r == ReturnsScalar || r == ReturnsCollection || r == ReturnsAuto
}

// String returns the shape name.
func (r ReturnShape) String() string {
	if !r.IsValid() {
		return common.UnknownStr
	}

	return string(r)
}

// Pair is one entry of the 121 shorthand.
type Pair struct {
	Source string
	Target string
}

// OrderedPairs keeps the 121 shorthand in file order.
type OrderedPairs []Pair

// Operation returns the operation with the given name.
func (f *File) Operation(name string) (*Operation, bool) {
	for i := range f.Operations {
		if f.Operations[i].Name == name {
			return &f.Operations[i], true
		}
	}

	return nil, false
}

// AllDirectives returns the 121 shorthand expanded to directives, followed by
// the explicit directives.
func (o *Operation) AllDirectives() []Directive {
	all := make([]Directive, 0, len(o.OneToOne)+len(o.Directives))
	for _, p := range o.OneToOne {
		all = append(all, Directive{Source: p.Source, Target: p.Target})
	}

	return append(all, o.Directives...)
}
