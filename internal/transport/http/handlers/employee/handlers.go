package employeehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payportal/internal/domain/batch"
	"payportal/internal/transport/http/api"
	"payportal/internal/transport/http/middleware"
)

// Handler serves the employee self-service surface. Everything here is scoped
// to the authenticated employee's own id; there is no cross-employee access.
type Handler struct {
	Store *batch.Store
}

func NewHandler(store *batch.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Get("/profile", h.handleProfile)
		r.Get("/payslip", h.handlePayslip)
		r.Get("/payslip/download", h.handleDownload)
	})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var name, email, empID string
	err := h.Store.DB.QueryRow(r.Context(), `
    SELECT name, email, COALESCE(emp_id, '')
    FROM users
    WHERE id = $1
  `, user.UserID).Scan(&name, &email, &empID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "profile not found", middleware.GetRequestID(r.Context()))
		return
	}

	profile := map[string]any{"name": name, "email": email, "empId": empID}

	// Enrich from the latest roster import when present.
	var designation, department string
	err = h.Store.DB.QueryRow(r.Context(), `
    SELECT e.designation, e.department
    FROM employees e
    JOIN payroll_batches b ON e.batch_id = b.id
    WHERE e.emp_id = $1 AND b.status = $2
    ORDER BY b.approved_at DESC
    LIMIT 1
  `, empID, batch.StatusApproved).Scan(&designation, &department)
	if err == nil {
		profile["designation"] = designation
		profile["department"] = department
	}

	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	slip, ok := h.ownPayslip(w, r)
	if !ok {
		return
	}
	api.Success(w, slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	slip, ok := h.ownPayslip(w, r)
	if !ok {
		return
	}
	if slip.StatementPath == "" {
		api.Fail(w, http.StatusNotFound, "statement_missing", "statement not rendered", middleware.GetRequestID(r.Context()))
		return
	}
	http.ServeFile(w, r, slip.StatementPath)
}

func (h *Handler) ownPayslip(w http.ResponseWriter, r *http.Request) (batch.Payslip, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return batch.Payslip{}, false
	}
	if user.EmpID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked", middleware.GetRequestID(r.Context()))
		return batch.Payslip{}, false
	}

	slip, err := h.Store.LatestApprovedPayslip(r.Context(), user.EmpID)
	if errors.Is(err, batch.ErrPayslipNotFound) {
		api.Fail(w, http.StatusNotFound, "payslip_not_found", "no approved payslip yet", middleware.GetRequestID(r.Context()))
		return batch.Payslip{}, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_load_failed", "failed to load payslip", middleware.GetRequestID(r.Context()))
		return batch.Payslip{}, false
	}
	return slip, true
}
