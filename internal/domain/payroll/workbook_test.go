package payroll

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "payroll.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Attendance": {
			{"Emp Code", "Present", "CL", "LOP", "Remaining"},
			{"E042", 28, 2, 1, 5},
		},
		"SalaryMain": {
			{"Emp Code", "Name", "Basic", "HRA", "Gross"},
			{"E042", "Asha Rao", 20000, 8000, 28000},
			{"", "", "", "", ""},
			{"E043", "Ravi Kumar", 15000, 6000, 21000},
		},
	}, []string{"Attendance", "SalaryMain"})

	tables, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tables.Salary.Rows) != 2 {
		t.Fatalf("expected 2 salary rows after dropping the empty one, got %d", len(tables.Salary.Rows))
	}
	if tables.Attendance == nil {
		t.Fatalf("expected attendance table")
	}
	if len(tables.Attendance.Rows) != 1 {
		t.Fatalf("expected 1 attendance row, got %d", len(tables.Attendance.Rows))
	}
}

func TestLoadWorkbookLastSalarySheetWins(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Old Salary": {
			{"Emp Code", "Basic"},
			{"E001", 10000},
		},
		"Revised": {
			{"Emp Code", "Basic"},
			{"E001", 12000},
			{"E002", 13000},
		},
	}, []string{"Old Salary", "Revised"})

	tables, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tables.Salary.Rows) != 2 {
		t.Fatalf("expected the later sheet's 2 rows, got %d", len(tables.Salary.Rows))
	}
}

func TestLoadWorkbookSalaryNeedsExactLabel(t *testing.T) {
	// "Basic Info" contains "basic" but is not an exact label, so the sheet
	// does not qualify as salary data.
	path := writeWorkbook(t, map[string][][]interface{}{
		"People": {
			{"Emp Code", "Basic Info"},
			{"E001", "manager"},
		},
	}, []string{"People"})

	_, err := LoadWorkbook(path)
	if !errors.Is(err, ErrNoSalaryData) {
		t.Fatalf("expected ErrNoSalaryData, got %v", err)
	}
}

func TestLoadWorkbookSheetServesBothRoles(t *testing.T) {
	// An attendance-named sheet that also carries salary columns feeds both
	// tables.
	path := writeWorkbook(t, map[string][][]interface{}{
		"Attendance Register": {
			{"Emp Code", "Basic", "Present"},
			{"E042", 20000, 28},
		},
	}, []string{"Attendance Register"})

	tables, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tables.Attendance == nil {
		t.Fatalf("expected attendance table")
	}
	if len(tables.Salary.Rows) != 1 {
		t.Fatalf("expected the same sheet as salary data, got %d rows", len(tables.Salary.Rows))
	}
}

func TestLoadWorkbookNoAttendance(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Salary": {
			{"Emp Code", "Gross"},
			{"E001", 28000},
		},
	}, []string{"Salary"})

	tables, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tables.Attendance != nil {
		t.Fatalf("expected nil attendance table")
	}
}

func TestLoadWorkbookMissingFile(t *testing.T) {
	if _, err := LoadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
