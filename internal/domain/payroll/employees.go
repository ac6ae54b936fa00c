package payroll

// EmployeeList extracts the roster from a salary table, one record per row in
// sheet order. Rows without a recognizable id come through with the Unknown
// placeholder; the caller decides whether to keep them.
func EmployeeList(salary Table) []EmployeeRecord {
	records := make([]EmployeeRecord, 0, len(salary.Rows))
	for i := range salary.Rows {
		row := salary.Row(i)
		basic := ResolveFloat(row, basicKeys, 0)
		hra := ResolveFloat(row, hraKeys, 0)
		other := ResolveFloat(row, otherAllowKeys, 0)
		records = append(records, EmployeeRecord{
			EmpID:           EmpID(row),
			Name:            ResolveString(row, nameKeys, ""),
			Designation:     ResolveString(row, designationKeys, ""),
			Department:      ResolveString(row, departmentKeys, ""),
			Email:           ResolveString(row, emailKeys, ""),
			BasicDA:         basic,
			HRA:             hra,
			OtherAllowances: other,
			GrossSalary:     ResolveFloat(row, grossKeys, basic+hra+other),
		})
	}
	return records
}
