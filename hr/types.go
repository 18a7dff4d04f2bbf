package hr

import "time"

// Address is where an employee is based.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Position is one entry of an employee's work history.
type Position struct {
	Company string    `json:"company"`
	Title   string    `json:"title"`
	Started time.Time `json:"started"`
}

// Employee is the HR record of a person.
type Employee struct {
	EmployeeID     string     `json:"employeeId"`
	Name           string     `json:"name"`
	Address        Address    `json:"address"`
	WorkExperience []Position `json:"workExperience"`
	Manager        *Employee  `json:"manager,omitempty"`
	Internal       string     `json:"-"`

	salaryCents int64
}

// GetSalary returns the salary in cents.
func (e Employee) GetSalary() int64 {
	return e.salaryCents
}

// DisplayName is the name shown in directories.
func (e *Employee) DisplayName() string {
	return e.Name + " (" + e.EmployeeID + ")"
}

// SetSalary is not an accessor.
func (e *Employee) SetSalary(cents int64) {
	e.salaryCents = cents
}

// Directory is a list of employees.
type Directory []Employee

// Status is an employment status.
type Status string
