package payroll

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testTables() Tables {
	return Tables{
		Salary: Table{
			Headers: []string{"Emp Code", "Name", "Basic", "HRA", "Gross", "Days in Month"},
			Rows: [][]string{
				{"E042", "Asha Rao", "20000", "8000", "28000", "30"},
				{"E043", "Ravi Kumar", "12000", "5000", "17000", "30"},
			},
		},
		Attendance: &Table{
			Headers: []string{"Emp Code", "Present", "CL", "Remaining"},
			Rows: [][]string{
				{"E042", "26", "2", "5"},
			},
		},
	}
}

func TestComputeOne(t *testing.T) {
	agent := NewAgent(NewRenderer(t.TempDir()))

	got, err := agent.ComputeOne(testTables(), DefaultPolicy(), "January 2026", "e042")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got.EmpID != "E042" {
		t.Fatalf("expected E042, got %q", got.EmpID)
	}
	if got.PayableDays != 28 {
		t.Fatalf("expected payable 28 from attendance, got %v", got.PayableDays)
	}
	if got.StatementPath == "" {
		t.Fatalf("expected a statement path")
	}
	if _, err := os.Stat(got.StatementPath); err != nil {
		t.Fatalf("statement not written: %v", err)
	}
}

func TestComputeOneMatchesAnyCell(t *testing.T) {
	// The lookup scans every cell of the row, so a name fragment finds the
	// employee just like a code does.
	agent := NewAgent(NewRenderer(t.TempDir()))

	got, err := agent.ComputeOne(testTables(), DefaultPolicy(), "January 2026", "asha")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got.EmpID != "E042" {
		t.Fatalf("expected E042 via name match, got %q", got.EmpID)
	}
}

func TestComputeOneNotFound(t *testing.T) {
	agent := NewAgent(NewRenderer(t.TempDir()))
	if _, err := agent.ComputeOne(testTables(), DefaultPolicy(), "January 2026", "E999"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestComputeOneIdempotent(t *testing.T) {
	agent := NewAgent(NewRenderer(t.TempDir()))

	first, err := agent.ComputeOne(testTables(), DefaultPolicy(), "January 2026", "E042")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := agent.ComputeOne(testTables(), DefaultPolicy(), "January 2026", "E042")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Fatalf("re-run differed:\n%+v\n%+v", first, second)
	}
}

func TestComputeAll(t *testing.T) {
	agent := NewAgent(NewRenderer(t.TempDir()))

	outcomes := agent.ComputeAll(testTables(), DefaultPolicy(), "January 2026")
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome %s failed: %v", o.EmpID, o.Err)
		}
		if o.Result == nil {
			t.Fatalf("outcome %s has no result", o.EmpID)
		}
	}
	// E043 has no attendance row; full month assumed.
	if outcomes[1].Result.PayableDays != 30 {
		t.Fatalf("expected full month for E043, got %v", outcomes[1].Result.PayableDays)
	}
}

func TestComputeAllPartialFailure(t *testing.T) {
	// A statement directory nested under a regular file cannot be created, so
	// every render fails, but each failure stays in its own outcome.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	agent := NewAgent(NewRenderer(filepath.Join(blocker, "out")))
	outcomes := agent.ComputeAll(testTables(), DefaultPolicy(), "January 2026")
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if !errors.Is(o.Err, ErrRenderFailed) {
			t.Fatalf("expected ErrRenderFailed for %s, got %v", o.EmpID, o.Err)
		}
	}
}

func TestRenderOverwrites(t *testing.T) {
	renderer := NewRenderer(t.TempDir())
	result := Result{EmpID: "E042", Name: "Asha Rao", Month: "January 2026", NetPay: 26000}

	first, err := renderer.Render(result)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.Render(result)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Fatalf("path changed between renders: %q vs %q", first, second)
	}
	if _, err := os.Stat(first); err != nil {
		t.Fatalf("statement missing: %v", err)
	}
}

func TestStatementPath(t *testing.T) {
	renderer := NewRenderer("/tmp/statements")
	got := renderer.StatementPath(Result{EmpID: "E042", Month: "January 2026"})
	want := "/tmp/statements/statement_E042_January_2026.pdf"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
