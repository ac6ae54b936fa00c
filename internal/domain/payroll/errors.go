package payroll

import "errors"

var (
	ErrNoSalaryData     = errors.New("workbook has no sheet with salary columns")
	ErrEmployeeNotFound = errors.New("employee not found in salary sheet")
	ErrRenderFailed     = errors.New("pay statement render failed")
)
