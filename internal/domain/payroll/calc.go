package payroll

import "math"

// Keyword sets for salary sheet fields, matched per the column resolver.
// "id" is last in empIDKeys so the more specific labels win on messy sheets
// where several headers contain "id".
var (
	empIDKeys       = []string{"code", "emp id", "e.code", "id"}
	nameKeys        = []string{"name"}
	designationKeys = []string{"designation", "role"}
	departmentKeys  = []string{"department", "dept"}
	emailKeys       = []string{"email", "mail"}
	basicKeys       = []string{"basic"}
	hraKeys         = []string{"hra"}
	otherAllowKeys  = []string{"other allow", "allowance"}
	grossKeys       = []string{"gross", "monthly gross", "ctc"}
	daysKeys        = []string{"days in month", "month days"}
	tdsKeys         = []string{"tds"}
)

const unknownEmpID = "Unknown"

// EmpID extracts the employee id from a salary row.
func EmpID(row Row) string {
	return ResolveString(row, empIDKeys, unknownEmpID)
}

// Compute derives one employee's pay for the month from their salary row and
// attendance. It never fails: missing numeric fields fall back to zero, a nil
// attendance means a full month worked with the standard leave balance, and a
// non-positive day count in the sheet is replaced with the default.
func Compute(row Row, att *Attendance, policy Policy, month string) Result {
	daysInMonth := ResolveFloat(row, daysKeys, defaultDaysInMonth)
	if daysInMonth <= 0 {
		daysInMonth = defaultDaysInMonth
	}

	if att == nil {
		att = &Attendance{
			PresentDays:     daysInMonth,
			RemainingLeaves: fallbackRemainingLeaves,
		}
	}

	basicDA := ResolveFloat(row, basicKeys, 0)
	hra := ResolveFloat(row, hraKeys, 0)
	other := ResolveFloat(row, otherAllowKeys, 0)
	gross := ResolveFloat(row, grossKeys, basicDA+hra+other)
	tds := ResolveFloat(row, tdsKeys, 0)

	payable := round1(att.PresentDays + att.PaidLeaves)
	// Threshold checks run on the unrounded prorated gross; only the stored
	// figures are rounded.
	rawProrated := gross / daysInMonth * payable
	prorated := round2(rawProrated)

	pf := round2(math.Min(basicDA*policy.PFRate, policy.PFCap))

	var esi float64
	if rawProrated <= policy.ESIThreshold {
		esi = round2(rawProrated * policy.ESIRate)
	}

	var pt float64
	if rawProrated > ptGrossFloor {
		pt = policy.PTAmount
	}

	total := round2(pf + esi + pt + tds)

	var encash float64
	if policy.Encashment && att.RemainingLeaves > 0 {
		days := math.Min(att.RemainingLeaves, float64(policy.EncashMaxDays))
		encash = round2((basicDA + hra) / encashmentDayBase * days)
	}

	return Result{
		EmpID:           EmpID(row),
		Name:            ResolveString(row, nameKeys, ""),
		Designation:     ResolveString(row, designationKeys, ""),
		Month:           month,
		PresentDays:     round1(att.PresentDays),
		PaidLeaves:      round1(att.PaidLeaves),
		LOPDays:         round1(att.LOPDays),
		PayableDays:     payable,
		RemainingLeaves: round1(att.RemainingLeaves),
		BasicDA:         round2(basicDA),
		HRA:             round2(hra),
		OtherAllowances: round2(other),
		Gross:           prorated,
		PF:              pf,
		ESI:             esi,
		PT:              pt,
		TDS:             round2(tds),
		TotalDeductions: total,
		Encashment:      encash,
		NetPay:          round2(prorated - total + encash),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
