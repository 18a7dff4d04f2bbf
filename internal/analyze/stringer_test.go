package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypePath(t *testing.T) {
	p1 := NewTypePath().Field("address")
	assert.Equal(t, "address", p1.String())

	p2 := p1.Field("country")
	assert.Equal(t, "address.country", p2.String())

	p3 := NewTypePath().Field("workExperience").Slice()
	assert.Equal(t, "workExperience[]", p3.String())

	p4 := p3.Field("company")
	assert.Equal(t, "workExperience[].company", p4.String())

	// Paths are immutable
	assert.Equal(t, "address", p1.String())
}

func TestTypeStringer_TypeString(t *testing.T) {
	graph := loadFixtures(t)
	stringer := NewTypeStringer()

	employee := graph.GetType(TypeID{PkgPath: hrPkg, Name: "Employee"})
	require.NotNil(t, employee)
	assert.Equal(t, "Employee", stringer.TypeString(employee))

	tests := []struct {
		field string
		want  string
	}{
		{"EmployeeID", "string"},
		{"Address", "Address"},
		{"WorkExperience", "[]Position"},
		{"Manager", "*Employee"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := findField(employee, tt.field)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, stringer.TypeString(f.Type))
		})
	}

	status := graph.GetType(TypeID{PkgPath: hrPkg, Name: "Status"})
	require.NotNil(t, status)
	assert.Equal(t, "Status", stringer.TypeString(status))

	position := graph.GetType(TypeID{PkgPath: hrPkg, Name: "Position"})
	require.NotNil(t, position)
	assert.Equal(t, "time.Time", stringer.TypeString(findField(position, "Started").Type))
}

func TestTypeStringer_FieldPaths(t *testing.T) {
	graph := loadFixtures(t)
	stringer := NewTypeStringer()

	employee := graph.GetType(TypeID{PkgPath: hrPkg, Name: "Employee"})
	require.NotNil(t, employee)

	paths := stringer.FieldPaths(employee, 2)

	assert.Equal(t, []string{
		"employeeId",
		"name",
		"address",
		"address.street",
		"address.city",
		"address.country",
		"workExperience[]",
		"workExperience[].company",
		"workExperience[].title",
		"workExperience[].started",
		"manager",
	}, paths)
}

func TestTypeStringer_FieldPathsDepth(t *testing.T) {
	graph := loadFixtures(t)
	stringer := NewTypeStringer()

	directory := graph.GetType(TypeID{PkgPath: hrPkg, Name: "Directory"})
	require.NotNil(t, directory)

	paths := stringer.FieldPaths(directory, 1)
	assert.Equal(t, []string{"employeeId", "name", "address", "workExperience[]", "manager"}, paths)
}

func TestTypeStringer_NilType(t *testing.T) {
	stringer := NewTypeStringer()
	assert.Equal(t, "<nil>", stringer.TypeString(nil))
	assert.Empty(t, stringer.FieldPaths(nil, 3))
}
