package hrhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"payportal/internal/domain/batch"
	"payportal/internal/domain/payroll"
	"payportal/internal/transport/http/api"
	"payportal/internal/transport/http/middleware"
)

type Handler struct {
	Service          *batch.Service
	UploadDir        string
	MaxWorkbookBytes int64
}

func NewHandler(service *batch.Service, uploadDir string, maxWorkbookBytes int64) *Handler {
	return &Handler{Service: service, UploadDir: uploadDir, MaxWorkbookBytes: maxWorkbookBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/upload", h.handleUpload)
		r.Get("/policy", h.handleGetPolicy)
		r.Post("/policy", h.handleSavePolicy)
		r.Post("/generate", h.handleGenerate)
		r.Post("/approve", h.handleApprove)
		r.Get("/batch", h.handleCurrentBatch)
	})
	r.Get("/employees", h.handleListEmployees)
	r.Route("/payslips", func(r chi.Router) {
		r.Get("/", h.handleListPayslips)
		r.Get("/{empID}", h.handleGetPayslip)
		r.Get("/{empID}/download", h.handleDownloadPayslip)
		r.Post("/{empID}/regenerate", h.handleRegeneratePayslip)
	})
}

type batchRequest struct {
	BatchID string `json:"batchId"`
}

type policyRequest struct {
	payroll.Policy
	Notes string `json:"notes"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxWorkbookBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "workbook file required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		api.Fail(w, http.StatusBadRequest, "invalid_workbook", "only .xlsx workbooks are accepted", middleware.GetRequestID(r.Context()))
		return
	}

	month := strings.TrimSpace(r.FormValue("month"))
	if month == "" {
		month = time.Now().Format("January 2006")
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store workbook", middleware.GetRequestID(r.Context()))
		return
	}
	name := fmt.Sprintf("upload_%d_%s", time.Now().Unix(), filepath.Base(header.Filename))
	path := filepath.Join(h.UploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store workbook", middleware.GetRequestID(r.Context()))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store workbook", middleware.GetRequestID(r.Context()))
		return
	}
	dst.Close()

	b, imported, err := h.Service.UploadWorkbook(r.Context(), path, month)
	if errors.Is(err, payroll.ErrNoSalaryData) {
		api.Fail(w, http.StatusBadRequest, "no_salary_data", "workbook has no salary sheet", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_workbook", "unable to read workbook", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]any{"batch": b, "importedEmployees": imported}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Store.ActivePolicy(r.Context())
	if errors.Is(err, batch.ErrNoActivePolicy) {
		api.Success(w, map[string]any{"policy": payroll.DefaultPolicy(), "notes": "", "stored": false}, middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "policy_load_failed", "failed to load policy", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"policy":    rec.Policy,
		"notes":     rec.Notes,
		"effective": payroll.ApplyPolicyNotes(rec.Policy, rec.Notes),
		"stored":    true,
		"updatedAt": rec.UpdatedAt,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSavePolicy(w http.ResponseWriter, r *http.Request) {
	payload := policyRequest{Policy: payroll.DefaultPolicy()}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	rec, err := h.Service.SavePolicy(r.Context(), payload.Policy, payload.Notes)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "policy_save_failed", "failed to save policy", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{
		"policy":    rec.Policy,
		"notes":     rec.Notes,
		"effective": payroll.ApplyPolicyNotes(rec.Policy, rec.Notes),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) resolveBatchID(r *http.Request) (string, error) {
	var payload batchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil && payload.BatchID != "" {
		return payload.BatchID, nil
	}
	b, err := h.Service.Store.CurrentBatch(r.Context())
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	batchID, err := h.resolveBatchID(r)
	if err != nil {
		h.failBatch(w, r, err)
		return
	}

	b, outcomes, err := h.Service.Generate(r.Context(), batchID)
	if err != nil {
		h.failBatch(w, r, err)
		return
	}

	var failures []map[string]string
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, map[string]string{"empId": o.EmpID, "error": o.Err.Error()})
		}
	}
	api.Success(w, map[string]any{"batch": b, "failures": failures}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	batchID, err := h.resolveBatchID(r)
	if err != nil {
		h.failBatch(w, r, err)
		return
	}

	b, err := h.Service.Approve(r.Context(), batchID, user.UserID)
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	api.Success(w, map[string]any{"batch": b}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCurrentBatch(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Store.CurrentBatch(r.Context())
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	api.Success(w, b, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Store.CurrentBatch(r.Context())
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	employees, err := h.Service.Store.ListEmployees(r.Context(), b.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPayslips(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Store.CurrentBatch(r.Context())
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	slips, err := h.Service.Store.ListPayslips(r.Context(), b.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, slips, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.currentPayslip(r)
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	api.Success(w, slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.currentPayslip(r)
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	if slip.StatementPath == "" {
		api.Fail(w, http.StatusNotFound, "statement_missing", "statement not rendered", middleware.GetRequestID(r.Context()))
		return
	}
	http.ServeFile(w, r, slip.StatementPath)
}

func (h *Handler) handleRegeneratePayslip(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Store.CurrentBatch(r.Context())
	if err != nil {
		h.failBatch(w, r, err)
		return
	}

	result, err := h.Service.RegenerateOne(r.Context(), b.ID, chi.URLParam(r, "empID"))
	if err != nil {
		h.failBatch(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) currentPayslip(r *http.Request) (batch.Payslip, error) {
	b, err := h.Service.Store.CurrentBatch(r.Context())
	if err != nil {
		return batch.Payslip{}, err
	}
	return h.Service.Store.PayslipByEmp(r.Context(), b.ID, chi.URLParam(r, "empID"))
}

// failBatch maps domain sentinels onto HTTP statuses; anything unrecognized
// is a 500.
func (h *Handler) failBatch(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, batch.ErrBatchNotFound):
		api.Fail(w, http.StatusNotFound, "batch_not_found", "payroll batch not found", reqID)
	case errors.Is(err, batch.ErrPayslipNotFound):
		api.Fail(w, http.StatusNotFound, "payslip_not_found", "payslip not found", reqID)
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found in salary sheet", reqID)
	case errors.Is(err, batch.ErrBatchApproved):
		api.Fail(w, http.StatusForbidden, "batch_approved", "approved batches are immutable", reqID)
	case errors.Is(err, batch.ErrBatchNotGenerated):
		api.Fail(w, http.StatusBadRequest, "batch_not_generated", "generate the batch before approving", reqID)
	case errors.Is(err, payroll.ErrNoSalaryData):
		api.Fail(w, http.StatusBadRequest, "no_salary_data", "workbook has no salary sheet", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", reqID)
	}
}
