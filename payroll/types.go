package payroll

// EmployeeDTO is the payroll view of an employee.
type EmployeeDTO struct {
	EmployeeID  string `json:"employeeId"`
	FullName    string `json:"fullName"`
	Emplocation string `json:"emplocation"`
	Salary      int64  `json:"salary"`
}

// GetCurrency returns the payout currency.
func (d EmployeeDTO) GetCurrency() string {
	return "EUR"
}

// EmployeeDTOList is a batch of payroll records.
type EmployeeDTOList []EmployeeDTO

// Roster indexes payroll records by employee id.
type Roster map[string]EmployeeDTO
