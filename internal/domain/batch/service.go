package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"payportal/internal/domain/auth"
	"payportal/internal/domain/payroll"
)

type Service struct {
	Store *Store
	Agent *payroll.Agent
}

func NewService(store *Store, agent *payroll.Agent) *Service {
	return &Service{Store: store, Agent: agent}
}

// EffectivePolicy is what the engine actually runs with: the active stored
// policy with its notes re-applied over the structured fields, or the
// statutory defaults when HR has not saved one yet.
func (s *Service) EffectivePolicy(ctx context.Context) (payroll.Policy, error) {
	rec, err := s.Store.ActivePolicy(ctx)
	if errors.Is(err, ErrNoActivePolicy) {
		return payroll.DefaultPolicy(), nil
	}
	if err != nil {
		return payroll.Policy{}, err
	}
	return payroll.ApplyPolicyNotes(rec.Policy, rec.Notes), nil
}

func (s *Service) SavePolicy(ctx context.Context, policy payroll.Policy, notes string) (PolicyRecord, error) {
	return s.Store.SavePolicy(ctx, policy, notes)
}

// UploadWorkbook validates the workbook, creates a draft batch, and imports
// the salary roster. The workbook stays on disk; generation re-reads it so a
// re-upload before generate simply supersedes the earlier file.
func (s *Service) UploadWorkbook(ctx context.Context, path, month string) (Batch, int, error) {
	tables, err := payroll.LoadWorkbook(path)
	if err != nil {
		return Batch{}, 0, err
	}

	b, err := s.Store.CreateBatch(ctx, path, month)
	if err != nil {
		return Batch{}, 0, err
	}

	records := payroll.EmployeeList(tables.Salary)
	if err := s.Store.ReplaceEmployees(ctx, b.ID, records); err != nil {
		return Batch{}, 0, err
	}
	return b, len(records), nil
}

// Generate runs the engine over the batch's workbook and upserts one payslip
// per successful outcome. Failed outcomes are returned to the caller and do
// not stop the rest of the batch. Approved batches are immutable.
func (s *Service) Generate(ctx context.Context, batchID string) (Batch, []payroll.Outcome, error) {
	b, err := s.Store.BatchByID(ctx, batchID)
	if err != nil {
		return Batch{}, nil, err
	}
	if b.Status == StatusApproved {
		return Batch{}, nil, ErrBatchApproved
	}

	tables, err := payroll.LoadWorkbook(b.WorkbookPath)
	if err != nil {
		return Batch{}, nil, fmt.Errorf("reload workbook: %w", err)
	}
	policy, err := s.EffectivePolicy(ctx)
	if err != nil {
		return Batch{}, nil, err
	}

	outcomes := s.Agent.ComputeAll(tables, policy, b.Month)

	var (
		generated  int
		totalGross float64
		totalNet   float64
	)
	for _, o := range outcomes {
		if o.Err != nil {
			slog.Warn("payslip generation failed", "batchId", batchID, "empId", o.EmpID, "err", o.Err)
			continue
		}
		if err := s.Store.UpsertPayslip(ctx, batchID, *o.Result); err != nil {
			return Batch{}, nil, err
		}
		generated++
		totalGross += o.Result.Gross
		totalNet += o.Result.NetPay
	}

	if err := s.Store.MarkGenerated(ctx, batchID, generated, totalGross, totalNet); err != nil {
		return Batch{}, nil, err
	}

	b, err = s.Store.BatchByID(ctx, batchID)
	if err != nil {
		return Batch{}, nil, err
	}
	return b, outcomes, nil
}

// RegenerateOne recomputes a single employee's payslip in a not-yet-approved
// batch, for fixing one person without rerunning everyone.
func (s *Service) RegenerateOne(ctx context.Context, batchID, empID string) (payroll.Result, error) {
	b, err := s.Store.BatchByID(ctx, batchID)
	if err != nil {
		return payroll.Result{}, err
	}
	if b.Status == StatusApproved {
		return payroll.Result{}, ErrBatchApproved
	}

	tables, err := payroll.LoadWorkbook(b.WorkbookPath)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("reload workbook: %w", err)
	}
	policy, err := s.EffectivePolicy(ctx)
	if err != nil {
		return payroll.Result{}, err
	}

	result, err := s.Agent.ComputeOne(tables, policy, b.Month, empID)
	if err != nil {
		return payroll.Result{}, err
	}
	if err := s.Store.UpsertPayslip(ctx, batchID, result); err != nil {
		return payroll.Result{}, err
	}
	return result, nil
}

// Approve flips a generated batch to approved and opens the employee portal:
// every employee with a payslip gets a login-enabled user account, created on
// first approval with their employee id as the initial password.
func (s *Service) Approve(ctx context.Context, batchID, approverID string) (Batch, error) {
	b, err := s.Store.BatchByID(ctx, batchID)
	if err != nil {
		return Batch{}, err
	}
	if b.Status == StatusApproved {
		return Batch{}, ErrBatchApproved
	}
	if b.Status != StatusGenerated {
		return Batch{}, ErrBatchNotGenerated
	}

	slips, err := s.Store.ListPayslips(ctx, batchID)
	if err != nil {
		return Batch{}, err
	}
	for _, slip := range slips {
		if err := s.ensureEmployeeUser(ctx, batchID, slip); err != nil {
			return Batch{}, err
		}
	}

	if err := s.Store.MarkApproved(ctx, batchID, approverID); err != nil {
		return Batch{}, err
	}
	return s.Store.BatchByID(ctx, batchID)
}

func (s *Service) ensureEmployeeUser(ctx context.Context, batchID string, slip Payslip) error {
	var userID string
	err := s.Store.DB.QueryRow(ctx, "SELECT id FROM users WHERE emp_id = $1", slip.EmpID).Scan(&userID)
	if err == nil {
		if _, err := s.Store.DB.Exec(ctx, "UPDATE users SET can_login = TRUE WHERE id = $1", userID); err != nil {
			return err
		}
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var email string
	if err := s.Store.DB.QueryRow(ctx,
		"SELECT email FROM employees WHERE batch_id = $1 AND emp_id = $2", batchID, slip.EmpID).Scan(&email); err != nil {
		slog.Warn("employee email lookup failed", "empId", slip.EmpID, "err", err)
	}
	if strings.TrimSpace(email) == "" {
		email = strings.ToLower(slip.EmpID) + "@company.com"
	}

	hash, err := auth.HashPassword(slip.EmpID)
	if err != nil {
		return err
	}
	_, err = s.Store.DB.Exec(ctx, `
    INSERT INTO users (email, password_hash, name, role, emp_id, can_login)
    VALUES ($1,$2,$3,$4,$5,TRUE)
    ON CONFLICT (email) DO UPDATE SET can_login = TRUE, emp_id = EXCLUDED.emp_id
  `, email, hash, slip.Result.Name, auth.RoleEmployee, slip.EmpID)
	return err
}
