package payroll

import (
	"regexp"
	"strconv"
	"strings"
)

var pfCapPattern = regexp.MustCompile(`pf cap\s*(\d+)`)

// ApplyPolicyNotes overlays free-text policy notes onto a policy and returns
// the adjusted copy. Recognized directives, matched case-insensitively:
//
//	"encash" or "leave encashment"  enables leave encashment
//	"pt 250"                        sets the PT amount to 250
//	"pf cap <n>"                    overrides the PF cap
//
// Unrecognized text is ignored. Notes always win over structured fields.
func ApplyPolicyNotes(policy Policy, notes string) Policy {
	text := strings.ToLower(notes)
	if text == "" {
		return policy
	}

	if strings.Contains(text, "encash") || strings.Contains(text, "leave encashment") {
		policy.Encashment = true
	}
	if strings.Contains(text, "pt 250") {
		policy.PTAmount = 250
	}
	if m := pfCapPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			policy.PFCap = v
		}
	}
	return policy
}
