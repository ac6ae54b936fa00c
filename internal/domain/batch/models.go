package batch

import (
	"time"

	"payportal/internal/domain/payroll"
)

type Batch struct {
	ID            string     `json:"id"`
	Month         string     `json:"month"`
	WorkbookPath  string     `json:"-"`
	Status        string     `json:"status"`
	EmployeeCount int        `json:"employeeCount"`
	TotalGross    float64    `json:"totalGross"`
	TotalNet      float64    `json:"totalNet"`
	CreatedAt     time.Time  `json:"createdAt"`
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
}

// PolicyRecord is the persisted form of a deduction policy: structured fields
// plus the free-text notes HR typed alongside them. The effective policy is
// always the structured values with the notes re-applied on top.
type PolicyRecord struct {
	ID        string         `json:"id"`
	Policy    payroll.Policy `json:"policy"`
	Notes     string         `json:"notes"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type Payslip struct {
	ID            string         `json:"id"`
	BatchID       string         `json:"batchId"`
	EmpID         string         `json:"empId"`
	Result        payroll.Result `json:"result"`
	StatementPath string         `json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type Employee struct {
	ID          string  `json:"id"`
	EmpID       string  `json:"empId"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	Department  string  `json:"department"`
	Email       string  `json:"email"`
	GrossSalary float64 `json:"grossSalary"`
}
