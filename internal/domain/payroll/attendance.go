package payroll

import "strings"

var (
	presentKeys   = []string{"present", "total present"}
	paidLeaveKeys = []string{"cl", "el", "paid leave"}
	lopKeys       = []string{"lop"}
	remainingKeys = []string{"remaining", "balance"}
)

// FindAttendance locates the employee's row in the attendance table by a
// case-insensitive substring match of the id over every cell of the row.
// The match is deliberately loose: attendance sheets rarely share the salary
// sheet's column discipline. Returns nil when the table is nil, the id is
// empty, or no row matches; callers then fall back to full attendance for
// the month.
func FindAttendance(table *Table, empID string, daysInMonth float64) *Attendance {
	if table == nil || strings.TrimSpace(empID) == "" {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(empID))
	for i := range table.Rows {
		row := table.Row(i)
		if !rowContains(row.Cells, needle) {
			continue
		}
		return &Attendance{
			PresentDays:     ResolveFloat(row, presentKeys, daysInMonth),
			PaidLeaves:      ResolveFloat(row, paidLeaveKeys, 0),
			LOPDays:         ResolveFloat(row, lopKeys, 0),
			RemainingLeaves: ResolveFloat(row, remainingKeys, fallbackRemainingLeaves),
		}
	}
	return nil
}

func rowContains(cells []string, needle string) bool {
	for _, c := range cells {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}
