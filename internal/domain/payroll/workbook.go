package payroll

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheets qualify as salary data when a header cell equals one of these
// labels exactly (lowercased), not merely contains it.
var salarySheetLabels = []string{"basic", "hra", "gross", "ctc", "salary"}

const attendanceSheetMark = "atten"

// LoadWorkbook opens an .xlsx file and picks out the salary and attendance
// tables. When several sheets qualify for a role, the last one in workbook
// order wins. Returns ErrNoSalaryData when no sheet carries salary columns.
func LoadWorkbook(path string) (Tables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var (
		salary     *Table
		attendance *Table
	)
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return Tables{}, fmt.Errorf("read sheet %q: %w", name, err)
		}
		table := buildTable(rows)
		if table == nil {
			continue
		}
		// The roles are independent: an attendance-named sheet that also
		// carries salary columns serves as both.
		if strings.Contains(strings.ToLower(name), attendanceSheetMark) {
			attendance = table
		}
		if hasSalaryHeader(table.Headers) {
			salary = table
		}
	}

	if salary == nil {
		return Tables{}, ErrNoSalaryData
	}
	return Tables{Salary: *salary, Attendance: attendance}, nil
}

func hasSalaryHeader(headers []string) bool {
	for _, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, label := range salarySheetLabels {
			if h == label {
				return true
			}
		}
	}
	return false
}

// buildTable turns raw sheet rows into a Table, dropping rows whose cells are
// all empty. Returns nil for a sheet with no header row.
func buildTable(rows [][]string) *Table {
	if len(rows) == 0 {
		return nil
	}
	t := &Table{Headers: rows[0]}
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
