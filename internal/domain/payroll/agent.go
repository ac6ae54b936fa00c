package payroll

import "strings"

// Agent runs the payroll computation over loaded workbook tables. It holds
// only the renderer; tables and policy arrive with every call, so concurrent
// runs over different workbooks cannot observe each other.
type Agent struct {
	renderer *Renderer
}

func NewAgent(renderer *Renderer) *Agent {
	return &Agent{renderer: renderer}
}

// ComputeOne computes and renders a single employee's statement. The id is
// matched by case-insensitive substring over every cell of each salary row,
// mirroring the attendance match, so a name fragment locates the row as well
// as an employee code. Returns ErrEmployeeNotFound when no row matches.
func (a *Agent) ComputeOne(tables Tables, policy Policy, month, empID string) (Result, error) {
	needle := strings.ToLower(strings.TrimSpace(empID))
	for i := range tables.Salary.Rows {
		row := tables.Salary.Row(i)
		if !rowContains(row.Cells, needle) {
			continue
		}
		return a.compute(row, tables, policy, month, EmpID(row))
	}
	return Result{}, ErrEmployeeNotFound
}

// ComputeAll computes every salary row, one Outcome per employee, in sheet
// order. A failure confines itself to its own Outcome; the rest of the batch
// still completes.
func (a *Agent) ComputeAll(tables Tables, policy Policy, month string) []Outcome {
	outcomes := make([]Outcome, 0, len(tables.Salary.Rows))
	for i := range tables.Salary.Rows {
		row := tables.Salary.Row(i)
		id := EmpID(row)
		result, err := a.compute(row, tables, policy, month, id)
		if err != nil {
			outcomes = append(outcomes, Outcome{EmpID: id, Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{EmpID: id, Result: &result})
	}
	return outcomes
}

func (a *Agent) compute(row Row, tables Tables, policy Policy, month, empID string) (Result, error) {
	daysInMonth := ResolveFloat(row, daysKeys, defaultDaysInMonth)
	if daysInMonth <= 0 {
		daysInMonth = defaultDaysInMonth
	}
	att := FindAttendance(tables.Attendance, empID, daysInMonth)
	result := Compute(row, att, policy, month)

	path, err := a.renderer.Render(result)
	if err != nil {
		return Result{}, err
	}
	result.StatementPath = path
	return result, nil
}
