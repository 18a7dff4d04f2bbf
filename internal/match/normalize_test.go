package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"employeeId", "employeeid"},
		{"employee_id", "employeeid"},
		{"employee-ID", "employeeid"},
		{"EmployeeID", "employeeid"},
		{"EMPLOYEE_ID", "employeeid"},
		{"workExperience", "workexperience"},
		{"address.country", "addresscountry"},
		{"", ""},
		{"x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"employeeID", []string{"employee", "ID"}},
		{"HTTPStatus", []string{"HTTP", "Status"}},
		{"work_experience", []string{"work", "experience"}},
		{"EmployeeDTOList", []string{"Employee", "DTO", "List"}},
		{"parseURL", []string{"parse", "URL"}},
		{"AbC", []string{"Ab", "C"}},
		{"lower", []string{"lower"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestUpperCamel(t *testing.T) {
	assert.Equal(t, "EmployeeDTO", UpperCamel("employeeDTO"))
	assert.Equal(t, "EmployeeDTO", UpperCamel("EmployeeDTO"))
	assert.Equal(t, "Éclair", UpperCamel("éclair"))
	assert.Equal(t, "", UpperCamel(""))
}
