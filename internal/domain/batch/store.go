package batch

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payportal/internal/domain/payroll"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ActivePolicy(ctx context.Context) (PolicyRecord, error) {
	var rec PolicyRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, pf_rate, pf_cap, esi_rate, esi_threshold, pt_amount, encashment, encash_max_days, notes, updated_at
    FROM policies
    WHERE active
    ORDER BY updated_at DESC
    LIMIT 1
  `).Scan(&rec.ID, &rec.Policy.PFRate, &rec.Policy.PFCap, &rec.Policy.ESIRate, &rec.Policy.ESIThreshold,
		&rec.Policy.PTAmount, &rec.Policy.Encashment, &rec.Policy.EncashMaxDays, &rec.Notes, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PolicyRecord{}, ErrNoActivePolicy
	}
	if err != nil {
		return PolicyRecord{}, err
	}
	return rec, nil
}

// SavePolicy deactivates any existing policy and inserts the new one as the
// single active row.
func (s *Store) SavePolicy(ctx context.Context, policy payroll.Policy, notes string) (PolicyRecord, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return PolicyRecord{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "UPDATE policies SET active = FALSE WHERE active"); err != nil {
		return PolicyRecord{}, err
	}

	var rec PolicyRecord
	rec.Policy = policy
	rec.Notes = notes
	err = tx.QueryRow(ctx, `
    INSERT INTO policies (pf_rate, pf_cap, esi_rate, esi_threshold, pt_amount, encashment, encash_max_days, notes, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,TRUE)
    RETURNING id, updated_at
  `, policy.PFRate, policy.PFCap, policy.ESIRate, policy.ESIThreshold, policy.PTAmount,
		policy.Encashment, policy.EncashMaxDays, notes).Scan(&rec.ID, &rec.UpdatedAt)
	if err != nil {
		return PolicyRecord{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return PolicyRecord{}, err
	}
	return rec, nil
}

func (s *Store) CreateBatch(ctx context.Context, workbookPath, month string) (Batch, error) {
	var b Batch
	b.Month = month
	b.WorkbookPath = workbookPath
	b.Status = StatusDraft
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_batches (month, workbook_path, status)
    VALUES ($1,$2,$3)
    RETURNING id, created_at
  `, month, workbookPath, StatusDraft).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return Batch{}, err
	}
	return b, nil
}

func (s *Store) BatchByID(ctx context.Context, id string) (Batch, error) {
	var b Batch
	err := s.DB.QueryRow(ctx, `
    SELECT id, month, workbook_path, status, employee_count, total_gross, total_net, created_at, generated_at, approved_at
    FROM payroll_batches
    WHERE id = $1
  `, id).Scan(&b.ID, &b.Month, &b.WorkbookPath, &b.Status, &b.EmployeeCount, &b.TotalGross, &b.TotalNet,
		&b.CreatedAt, &b.GeneratedAt, &b.ApprovedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Batch{}, ErrBatchNotFound
	}
	if err != nil {
		return Batch{}, err
	}
	return b, nil
}

// CurrentBatch is the most recently created batch.
func (s *Store) CurrentBatch(ctx context.Context) (Batch, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM payroll_batches ORDER BY created_at DESC LIMIT 1").Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Batch{}, ErrBatchNotFound
	}
	if err != nil {
		return Batch{}, err
	}
	return s.BatchByID(ctx, id)
}

func (s *Store) MarkGenerated(ctx context.Context, batchID string, employeeCount int, totalGross, totalNet float64) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_batches
    SET status = $1, employee_count = $2, total_gross = $3, total_net = $4, generated_at = now()
    WHERE id = $5
  `, StatusGenerated, employeeCount, totalGross, totalNet, batchID)
	return err
}

func (s *Store) MarkApproved(ctx context.Context, batchID, approverID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_batches
    SET status = $1, approved_at = now(), approved_by = $2
    WHERE id = $3
  `, StatusApproved, approverID, batchID)
	return err
}

// ReplaceEmployees swaps the imported roster for a batch with the rows from a
// freshly uploaded workbook.
func (s *Store) ReplaceEmployees(ctx context.Context, batchID string, records []payroll.EmployeeRecord) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM employees WHERE batch_id = $1", batchID); err != nil {
		return err
	}
	for _, rec := range records {
		// Messy sheets can repeat an id (or lack one entirely); first row wins.
		if _, err := tx.Exec(ctx, `
      INSERT INTO employees (batch_id, emp_id, name, designation, department, email, basic_da, hra, other_allowances, gross_salary)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
      ON CONFLICT (batch_id, emp_id) DO NOTHING
    `, batchID, rec.EmpID, rec.Name, rec.Designation, rec.Department, rec.Email,
			rec.BasicDA, rec.HRA, rec.OtherAllowances, rec.GrossSalary); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ListEmployees(ctx context.Context, batchID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_id, name, designation, department, email, gross_salary
    FROM employees
    WHERE batch_id = $1
    ORDER BY emp_id
  `, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmpID, &e.Name, &e.Designation, &e.Department, &e.Email, &e.GrossSalary); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (s *Store) UpsertPayslip(ctx context.Context, batchID string, result payroll.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO payslips (batch_id, emp_id, data, statement_path, net_pay)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (batch_id, emp_id)
    DO UPDATE SET data = EXCLUDED.data, statement_path = EXCLUDED.statement_path, net_pay = EXCLUDED.net_pay
  `, batchID, result.EmpID, data, result.StatementPath, result.NetPay)
	return err
}

func (s *Store) ListPayslips(ctx context.Context, batchID string) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, batch_id, emp_id, data, statement_path, created_at
    FROM payslips
    WHERE batch_id = $1
    ORDER BY emp_id
  `, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, nil
}

func (s *Store) PayslipByEmp(ctx context.Context, batchID, empID string) (Payslip, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, batch_id, emp_id, data, statement_path, created_at
    FROM payslips
    WHERE batch_id = $1 AND emp_id = $2
  `, batchID, empID)
	slip, err := scanPayslip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrPayslipNotFound
	}
	if err != nil {
		return Payslip{}, err
	}
	return slip, nil
}

// LatestApprovedPayslip is what the employee portal serves: the payslip from
// the most recent approved batch that includes the employee.
func (s *Store) LatestApprovedPayslip(ctx context.Context, empID string) (Payslip, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT p.id, p.batch_id, p.emp_id, p.data, p.statement_path, p.created_at
    FROM payslips p
    JOIN payroll_batches b ON p.batch_id = b.id
    WHERE p.emp_id = $1 AND b.status = $2
    ORDER BY b.approved_at DESC
    LIMIT 1
  `, empID, StatusApproved)
	slip, err := scanPayslip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrPayslipNotFound
	}
	if err != nil {
		return Payslip{}, err
	}
	return slip, nil
}

func scanPayslip(row pgx.Row) (Payslip, error) {
	var slip Payslip
	var data []byte
	if err := row.Scan(&slip.ID, &slip.BatchID, &slip.EmpID, &data, &slip.StatementPath, &slip.CreatedAt); err != nil {
		return Payslip{}, err
	}
	if err := json.Unmarshal(data, &slip.Result); err != nil {
		return Payslip{}, err
	}
	return slip, nil
}
