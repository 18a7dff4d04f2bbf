package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reflectTag(s string) reflect.StructTag {
	return reflect.StructTag(s)
}

func TestAccessorNames(t *testing.T) {
	graph := loadFixtures(t)

	tests := []struct {
		id   TypeID
		want []string
	}{
		{
			id:   TypeID{PkgPath: hrPkg, Name: "Employee"},
			want: []string{"employeeId", "name", "address", "workExperience", "manager", "displayName", "salary"},
		},
		{
			id:   TypeID{PkgPath: hrPkg, Name: "Directory"},
			want: []string{"employeeId", "name", "address", "workExperience", "manager", "displayName", "salary"},
		},
		{
			id:   TypeID{PkgPath: payrollPkg, Name: "EmployeeDTO"},
			want: []string{"employeeId", "fullName", "emplocation", "salary", "currency"},
		},
		{
			id:   TypeID{PkgPath: payrollPkg, Name: "Roster"},
			want: []string{"employeeId", "fullName", "emplocation", "salary", "currency"},
		},
		{
			id:   TypeID{PkgPath: hrPkg, Name: "Status"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.id.Name, func(t *testing.T) {
			info := graph.GetType(tt.id)
			require.NotNil(t, info)
			assert.Equal(t, tt.want, AccessorNames(info))
		})
	}

	assert.Nil(t, AccessorNames(nil))
}

func TestIsCollection(t *testing.T) {
	graph := loadFixtures(t)

	tests := []struct {
		id   TypeID
		want bool
	}{
		{TypeID{PkgPath: hrPkg, Name: "Employee"}, false},
		{TypeID{PkgPath: hrPkg, Name: "Directory"}, true},
		{TypeID{PkgPath: hrPkg, Name: "Status"}, false},
		{TypeID{PkgPath: payrollPkg, Name: "EmployeeDTOList"}, true},
		{TypeID{PkgPath: payrollPkg, Name: "Roster"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.id.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCollection(graph.GetType(tt.id)))
		})
	}

	assert.False(t, IsCollection(nil))
	assert.True(t, IsCollection(&TypeInfo{Kind: TypeKindPointer, ElemType: &TypeInfo{Kind: TypeKindArray}}))
}

func TestRecordSelfReference(t *testing.T) {
	// type Loop *Loop style cycles terminate
	loop := &TypeInfo{Kind: TypeKindPointer}
	loop.ElemType = loop

	assert.NotPanics(t, func() {
		Record(loop)
		IsCollection(loop)
	})
}

func TestGetterName(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"GetSalary", "salary"},
		{"DisplayName", "displayName"},
		{"Get", "get"},
		{"Getter", "getter"},
		{"GetID", "id"},
		{"ID", "id"},
		{"GetURLPath", "urlPath"},
		{"getter", "getter"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, GetterName(tt.method))
		})
	}
}

func TestResolveTypeID(t *testing.T) {
	graph := loadFixtures(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "full", in: "rulegen/hr.Employee", want: "Employee"},
		{name: "short", in: "hr.Employee", want: "Employee"},
		{name: "name only", in: "EmployeeDTO", want: "EmployeeDTO"},
		{name: "unknown", in: "hr.Nope", want: ""},
		{name: "wrong package", in: "payroll.Employee", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "dangling dot", in: "hr.", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTypeID(tt.in, graph)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID.Name)
		})
	}

	assert.Nil(t, ResolveTypeID("hr.Employee", nil))
}
