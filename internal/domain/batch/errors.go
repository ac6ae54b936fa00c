package batch

import "errors"

var (
	ErrBatchNotFound     = errors.New("payroll batch not found")
	ErrBatchApproved     = errors.New("payroll batch already approved")
	ErrBatchNotGenerated = errors.New("payroll batch not generated yet")
	ErrNoActivePolicy    = errors.New("no active policy")
	ErrPayslipNotFound   = errors.New("payslip not found")
)
