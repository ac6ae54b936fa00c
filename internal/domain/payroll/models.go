package payroll

// Policy holds the statutory deduction configuration for a payroll run. It is
// passed by value into every computation; nothing in this package retains or
// mutates a caller's policy.
type Policy struct {
	PFRate        float64 `json:"pfRate"`
	PFCap         float64 `json:"pfCap"`
	ESIRate       float64 `json:"esiRate"`
	ESIThreshold  float64 `json:"esiThreshold"`
	PTAmount      float64 `json:"ptAmount"`
	Encashment    bool    `json:"leaveEncashment"`
	EncashMaxDays int     `json:"encashMaxDays"`
}

// Table is a semantic spreadsheet table: the header row plus the data rows in
// sheet order. Rows may be shorter than Headers when trailing cells were
// empty in the source sheet.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Row pairs one data row with the table's headers so field resolution can
// walk columns in their original order.
type Row struct {
	Headers []string
	Cells   []string
}

func (t Table) Row(i int) Row {
	return Row{Headers: t.Headers, Cells: t.Rows[i]}
}

// Tables is what a workbook yields. Attendance is nil when the workbook has
// no attendance sheet; that is valid input, not an error.
type Tables struct {
	Salary     Table
	Attendance *Table
}

// Attendance is one employee's reconciled attendance for the month.
type Attendance struct {
	PresentDays     float64
	PaidLeaves      float64
	LOPDays         float64
	RemainingLeaves float64
}

// Result is the computed payroll for one employee. Monetary fields are
// rounded to 2 decimals, day counts to 1. Gross is the prorated gross, not
// the contractual monthly gross.
type Result struct {
	EmpID           string  `json:"empId"`
	Name            string  `json:"name"`
	Designation     string  `json:"designation"`
	Month           string  `json:"month"`
	PresentDays     float64 `json:"presentDays"`
	PaidLeaves      float64 `json:"approvedPaidLeaves"`
	LOPDays         float64 `json:"lopDays"`
	PayableDays     float64 `json:"payableDays"`
	RemainingLeaves float64 `json:"remainingLeaves"`
	BasicDA         float64 `json:"basicDa"`
	HRA             float64 `json:"hra"`
	OtherAllowances float64 `json:"otherAllowances"`
	Gross           float64 `json:"gross"`
	PF              float64 `json:"pf"`
	ESI             float64 `json:"esi"`
	PT              float64 `json:"pt"`
	TDS             float64 `json:"tds"`
	TotalDeductions float64 `json:"totalDeductions"`
	Encashment      float64 `json:"encashment"`
	NetPay          float64 `json:"netPay"`
	StatementPath   string  `json:"statementPath,omitempty"`
}

// Outcome is one employee's slot in a batch run: either a result or the
// error that stopped that employee, never both.
type Outcome struct {
	EmpID  string
	Result *Result
	Err    error
}

// EmployeeRecord is the canonical employee identity extracted from a salary
// row, used by callers that persist the uploaded roster.
type EmployeeRecord struct {
	EmpID           string  `json:"empId"`
	Name            string  `json:"name"`
	Designation     string  `json:"designation"`
	Department      string  `json:"department"`
	Email           string  `json:"email"`
	BasicDA         float64 `json:"basicDa"`
	HRA             float64 `json:"hra"`
	OtherAllowances float64 `json:"otherAllowances"`
	GrossSalary     float64 `json:"grossSalary"`
}
