package payroll

import "testing"

func TestApplyPolicyNotes(t *testing.T) {
	cases := []struct {
		name  string
		notes string
		check func(t *testing.T, p Policy)
	}{
		{"empty leaves policy untouched", "", func(t *testing.T, p Policy) {
			if p != DefaultPolicy() {
				t.Fatalf("policy changed: %+v", p)
			}
		}},
		{"encashment keyword", "Enable leave ENCASHMENT this cycle", func(t *testing.T, p Policy) {
			if !p.Encashment {
				t.Fatalf("expected encashment enabled")
			}
		}},
		{"pt override", "apply pt 250 for Karnataka", func(t *testing.T, p Policy) {
			if p.PTAmount != 250 {
				t.Fatalf("expected PT 250, got %v", p.PTAmount)
			}
		}},
		{"pf cap override", "PF cap 2000 from April", func(t *testing.T, p Policy) {
			if p.PFCap != 2000 {
				t.Fatalf("expected PF cap 2000, got %v", p.PFCap)
			}
		}},
		{"unrecognized text ignored", "double everyone's salary", func(t *testing.T, p Policy) {
			if p != DefaultPolicy() {
				t.Fatalf("policy changed: %+v", p)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, ApplyPolicyNotes(DefaultPolicy(), tc.notes))
		})
	}
}

func TestApplyPolicyNotesReturnsCopy(t *testing.T) {
	base := DefaultPolicy()
	_ = ApplyPolicyNotes(base, "pf cap 9999")
	if base.PFCap != defaultPFCap {
		t.Fatalf("input policy mutated: %v", base.PFCap)
	}
}
