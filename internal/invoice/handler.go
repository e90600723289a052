package invoice

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gstbill-erp/gstbill/internal/platform/httpx"
	"github.com/gstbill-erp/gstbill/internal/shared"
)

// Handler wires HTTP endpoints for invoice and bill submission.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	submitted SubmissionHook
}

// SubmissionHook runs after a successful submission, e.g. to enqueue
// background work or record metrics. Failures are logged, never surfaced
// to the caller.
type SubmissionHook func(inv *Invoice, warnings []string) error

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, submitted SubmissionHook) *Handler {
	return &Handler{logger: logger, service: service, submitted: submitted}
}

// MountRoutes registers invoice routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/invoices", h.SubmitInvoice)
	r.Post("/invoices/preview", h.Preview)
	r.Post("/bills", h.SubmitBill)
	r.Get("/invoices", h.List)
	r.Get("/invoices/{id}", h.Show)
	r.Get("/invoices/{id}/export.csv", h.ExportCSV)
}

// Preview recomputes rows and summary without persisting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid preview payload")
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.Preview(req))
}

// SubmitInvoice validates and stores a full GST invoice.
func (h *Handler) SubmitInvoice(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var req CreateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice payload")
		return
	}

	inv, warnings, err := h.service.SubmitInvoice(r.Context(), req, userID)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}
	h.afterSubmit(inv, warnings)

	httpx.JSON(w, http.StatusCreated, SubmitResponse{Invoice: inv, Warnings: warnings})
}

// SubmitBill validates and stores a simple bill.
func (h *Handler) SubmitBill(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var req CreateBillRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid bill payload")
		return
	}

	inv, warnings, err := h.service.SubmitBill(r.Context(), req, userID)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}
	h.afterSubmit(inv, warnings)

	httpx.JSON(w, http.StatusCreated, SubmitResponse{Invoice: inv, Warnings: warnings})
}

// List returns submitted documents.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListInvoicesRequest{}
	if k := r.URL.Query().Get("kind"); k != "" {
		kind := DocumentKind(k)
		req.Kind = &kind
	}
	if t := parseDate(r.URL.Query().Get("date_from")); t != nil {
		req.DateFrom = t
	}
	if t := parseDate(r.URL.Query().Get("date_to")); t != nil {
		req.DateTo = t
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		req.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		req.Offset = offset
	}

	invoices, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list invoices failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices, "total": total})
}

// Show returns one submitted document with its lines.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// ExportCSV streams one document as CSV.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+inv.DocNumber+`.csv"`)
	if err := WriteCSV(w, inv); err != nil {
		h.logger.Error("export invoice csv failed", slog.Int64("id", id), slog.Any("error", err))
	}
}

func (h *Handler) afterSubmit(inv *Invoice, warnings []string) {
	if h.submitted == nil {
		return
	}
	if err := h.submitted(inv, warnings); err != nil {
		h.logger.Warn("submission hook failed", slog.String("doc_number", inv.DocNumber), slog.Any("error", err))
	}
}

// respondSubmitError distinguishes local validation failures (no state was
// mutated, the caller can fix the form and retry) from persistence errors.
func (h *Handler) respondSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingCustomer), errors.Is(err, ErrAdvanceIncomplete):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	default:
		h.logger.Error("submit failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
