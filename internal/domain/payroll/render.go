package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Renderer writes pay statements as PDFs into a fixed directory.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// StatementPath is the deterministic output path for a result. Re-rendering
// the same employee and month overwrites the previous file.
func (r *Renderer) StatementPath(result Result) string {
	month := strings.ReplaceAll(result.Month, " ", "_")
	return filepath.Join(r.dir, fmt.Sprintf("statement_%s_%s.pdf", result.EmpID, month))
}

// Render writes the statement PDF and returns its path. Failures wrap
// ErrRenderFailed so batch callers can classify them.
func (r *Renderer) Render(result Result) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	path := r.StatementPath(result)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", result.Name, result.EmpID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Designation: %s", result.Designation))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", result.Month))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attendance")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Present: %.1f  Paid leaves: %.1f  LOP: %.1f  Payable days: %.1f",
		result.PresentDays, result.PaidLeaves, result.LOPDays, result.PayableDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Basic + DA: %.2f", result.BasicDA))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("HRA: %.2f", result.HRA))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Other allowances: %.2f", result.OtherAllowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross (prorated): %.2f", result.Gross))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("PF: %.2f  ESI: %.2f  PT: %.2f  TDS: %.2f", result.PF, result.ESI, result.PT, result.TDS))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %.2f", result.TotalDeductions))
	pdf.Ln(10)

	if result.Encashment > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Leave encashment: %.2f", result.Encashment))
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Net Pay: %.2f", result.NetPay))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return path, nil
}
