package payroll

import "testing"

func salaryRow(overrides map[string]string) Row {
	headers := []string{"Emp Code", "Name", "Designation", "Basic", "HRA", "Gross", "Days in Month", "TDS"}
	cells := map[string]string{
		"Emp Code":      "E042",
		"Name":          "Asha Rao",
		"Designation":   "Engineer",
		"Basic":         "20000",
		"HRA":           "8000",
		"Gross":         "28000",
		"Days in Month": "30",
		"TDS":           "0",
	}
	for k, v := range overrides {
		cells[k] = v
	}
	row := Row{Headers: headers}
	for _, h := range headers {
		row.Cells = append(row.Cells, cells[h])
	}
	return row
}

func TestComputeFullMonth(t *testing.T) {
	got := Compute(salaryRow(nil), nil, DefaultPolicy(), "January 2026")

	if got.EmpID != "E042" || got.Name != "Asha Rao" {
		t.Fatalf("identity not carried: %+v", got)
	}
	if got.PayableDays != 30 {
		t.Fatalf("expected full month payable 30, got %v", got.PayableDays)
	}
	if got.Gross != 28000 {
		t.Fatalf("expected prorated gross 28000, got %v", got.Gross)
	}
	if got.PF != 1800 {
		t.Fatalf("expected PF capped at 1800, got %v", got.PF)
	}
	if got.ESI != 0 {
		t.Fatalf("expected no ESI above threshold, got %v", got.ESI)
	}
	if got.PT != 200 {
		t.Fatalf("expected PT 200, got %v", got.PT)
	}
	if got.TotalDeductions != 2000 {
		t.Fatalf("expected total deductions 2000, got %v", got.TotalDeductions)
	}
	if got.NetPay != 26000 {
		t.Fatalf("expected net 26000, got %v", got.NetPay)
	}
	if got.RemainingLeaves != fallbackRemainingLeaves {
		t.Fatalf("expected remaining leaves fallback, got %v", got.RemainingLeaves)
	}
}

func TestComputeProration(t *testing.T) {
	att := &Attendance{PresentDays: 20, PaidLeaves: 2, LOPDays: 8, RemainingLeaves: 0}
	got := Compute(salaryRow(nil), att, DefaultPolicy(), "January 2026")

	if got.PayableDays != 22 {
		t.Fatalf("expected payable 22, got %v", got.PayableDays)
	}
	// 28000/30*22
	if got.Gross != 20533.33 {
		t.Fatalf("expected prorated gross 20533.33, got %v", got.Gross)
	}
}

func TestComputeESIThresholdInclusive(t *testing.T) {
	row := salaryRow(map[string]string{"Basic": "10000", "HRA": "5000", "Gross": "21000", "Days in Month": "31"})
	att := &Attendance{PresentDays: 31}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	if got.Gross != 21000 {
		t.Fatalf("expected gross 21000, got %v", got.Gross)
	}
	// Exactly at the threshold still attracts ESI.
	if got.ESI != 157.5 {
		t.Fatalf("expected ESI 157.5 at threshold, got %v", got.ESI)
	}
}

func TestComputePTFloorStrict(t *testing.T) {
	row := salaryRow(map[string]string{"Basic": "8000", "HRA": "4000", "Gross": "15000", "Days in Month": "31"})
	att := &Attendance{PresentDays: 31}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	if got.PT != 0 {
		t.Fatalf("PT applies strictly above the floor; got %v at exactly 15000", got.PT)
	}

	row = salaryRow(map[string]string{"Basic": "8000", "HRA": "4000", "Gross": "15001", "Days in Month": "31"})
	got = Compute(row, att, DefaultPolicy(), "January 2026")
	if got.PT != 200 {
		t.Fatalf("expected PT 200 just above the floor, got %v", got.PT)
	}
}

func TestComputeEncashment(t *testing.T) {
	policy := DefaultPolicy()
	policy.Encashment = true
	att := &Attendance{PresentDays: 30, RemainingLeaves: 5}

	got := Compute(salaryRow(nil), att, policy, "January 2026")
	// (20000+8000)/30*5
	if got.Encashment != 4666.67 {
		t.Fatalf("expected encashment 4666.67, got %v", got.Encashment)
	}

	att.RemainingLeaves = 15
	got = Compute(salaryRow(nil), att, policy, "January 2026")
	// Capped at 10 days.
	if got.Encashment != 9333.33 {
		t.Fatalf("expected encashment capped at 10 days, got %v", got.Encashment)
	}

	att.RemainingLeaves = 0
	got = Compute(salaryRow(nil), att, policy, "January 2026")
	if got.Encashment != 0 {
		t.Fatalf("expected no encashment without balance, got %v", got.Encashment)
	}
}

func TestComputeGrossDefaultsToComponents(t *testing.T) {
	row := salaryRow(map[string]string{"Gross": ""})
	att := &Attendance{PresentDays: 30}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	if got.Gross != 28000 {
		t.Fatalf("expected gross from basic+hra, got %v", got.Gross)
	}
}

func TestComputeGrossFromCTC(t *testing.T) {
	// A CTC-only sheet has no "gross" header; the CTC column is the pay.
	row := Row{
		Headers: []string{"Emp Code", "CTC", "Days in Month"},
		Cells:   []string{"E042", "30000", "30"},
	}
	att := &Attendance{PresentDays: 30}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	if got.Gross != 30000 {
		t.Fatalf("expected gross from CTC column, got %v", got.Gross)
	}
	if got.NetPay != 29800 {
		t.Fatalf("expected net 29800 (PT only), got %v", got.NetPay)
	}
}

func TestComputeAllowancesHeader(t *testing.T) {
	row := Row{
		Headers: []string{"Emp Code", "Basic", "HRA", "Allowances", "Days in Month"},
		Cells:   []string{"E042", "20000", "8000", "2000", "30"},
	}
	att := &Attendance{PresentDays: 30}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	if got.OtherAllowances != 2000 {
		t.Fatalf("expected allowances 2000, got %v", got.OtherAllowances)
	}
	if got.Gross != 30000 {
		t.Fatalf("expected gross from components incl. allowances, got %v", got.Gross)
	}
}

func TestComputeDayCountIgnoresOtherDayColumns(t *testing.T) {
	// "LOP Days" must not resolve as the month's day count.
	row := Row{
		Headers: []string{"Emp Code", "Gross", "LOP Days"},
		Cells:   []string{"E042", "31000", "3"},
	}
	att := &Attendance{PresentDays: 31}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	if got.Gross != 31000 {
		t.Fatalf("expected prorated gross 31000 over the default 31 days, got %v", got.Gross)
	}
}

func TestComputeThresholdsCompareUnrounded(t *testing.T) {
	att := &Attendance{PresentDays: 31}

	// Just above the ESI threshold but rounds down to exactly 21000.
	row := salaryRow(map[string]string{"Basic": "0", "HRA": "0", "Gross": "21000.004", "Days in Month": "31"})
	got := Compute(row, att, DefaultPolicy(), "January 2026")
	if got.Gross != 21000 {
		t.Fatalf("expected rounded gross 21000, got %v", got.Gross)
	}
	if got.ESI != 0 {
		t.Fatalf("ESI eligibility must use the unrounded gross, got %v", got.ESI)
	}

	// Just above the PT floor but rounds down to exactly 15000.
	row = salaryRow(map[string]string{"Basic": "0", "HRA": "0", "Gross": "15000.004", "Days in Month": "31"})
	got = Compute(row, att, DefaultPolicy(), "January 2026")
	if got.Gross != 15000 {
		t.Fatalf("expected rounded gross 15000, got %v", got.Gross)
	}
	if got.PT != 200 {
		t.Fatalf("PT must use the unrounded gross, got %v", got.PT)
	}
}

func TestComputeBadDayCount(t *testing.T) {
	row := salaryRow(map[string]string{"Days in Month": "0", "Gross": "31000"})
	att := &Attendance{PresentDays: 31}
	got := Compute(row, att, DefaultPolicy(), "January 2026")

	// Non-positive day count falls back to 31 instead of dividing by zero.
	if got.Gross != 31000 {
		t.Fatalf("expected prorated gross 31000 with default days, got %v", got.Gross)
	}
}

func TestComputeDeterministic(t *testing.T) {
	att := &Attendance{PresentDays: 26, PaidLeaves: 2, LOPDays: 3, RemainingLeaves: 5}
	first := Compute(salaryRow(nil), att, DefaultPolicy(), "January 2026")
	second := Compute(salaryRow(nil), att, DefaultPolicy(), "January 2026")
	if first != second {
		t.Fatalf("same inputs produced different results:\n%+v\n%+v", first, second)
	}
}
