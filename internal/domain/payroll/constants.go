package payroll

const (
	defaultPFRate        = 0.12
	defaultPFCap         = 1800
	defaultESIRate       = 0.0075
	defaultESIThreshold  = 21000
	defaultPTAmount      = 200
	defaultEncashMaxDays = 10

	// PT applies above this prorated gross regardless of policy; only the
	// amount is configurable.
	ptGrossFloor = 15000

	defaultDaysInMonth      = 31
	fallbackRemainingLeaves = 12

	// Encashment pays out at (basic+DA+HRA)/30 per day irrespective of the
	// month's actual day count.
	encashmentDayBase = 30
)

// DefaultPolicy returns the statutory defaults applied when no stored policy
// exists yet.
func DefaultPolicy() Policy {
	return Policy{
		PFRate:        defaultPFRate,
		PFCap:         defaultPFCap,
		ESIRate:       defaultESIRate,
		ESIThreshold:  defaultESIThreshold,
		PTAmount:      defaultPTAmount,
		Encashment:    false,
		EncashMaxDays: defaultEncashMaxDays,
	}
}
