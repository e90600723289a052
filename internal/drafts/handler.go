package drafts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gstbill-erp/gstbill/internal/platform/httpx"
	"github.com/gstbill-erp/gstbill/internal/shared"
)

// Handler wires HTTP endpoints for draft management.
type Handler struct {
	logger *slog.Logger
	repo   Repository
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers draft routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/drafts", h.Save)
	r.Get("/drafts", h.List)
	r.Delete("/drafts", h.ClearAll)
	r.Get("/drafts/{key}", h.LoadOne)
	r.Delete("/drafts/{key}", h.DeleteOne)
}

// Save stores the posted working state as a new draft.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var snap Snapshot
	if err := httpx.DecodeJSON(r, &snap); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft payload")
		return
	}

	key, err := h.repo.Save(r.Context(), userID, snap)
	if err != nil {
		h.logger.Error("save draft failed", slog.Int64("user_id", userID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]string{"key": key})
}

// List returns every draft belonging to the current user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	list, err := h.repo.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list drafts failed", slog.Int64("user_id", userID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"drafts": list})
}

// LoadOne returns one draft; the caller replaces its working state with it.
func (h *Handler) LoadOne(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	key := chi.URLParam(r, "key")
	draft, err := h.repo.LoadOne(r.Context(), userID, key)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			h.logger.Warn("requested draft is corrupt", slog.String("key", key))
			httpx.Problem(w, http.StatusInternalServerError, "Draft Unavailable", "the stored draft could not be read")
			return
		}
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, draft)
}

// DeleteOne removes one draft.
func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	key := chi.URLParam(r, "key")
	if err := h.repo.DeleteOne(r.Context(), userID, key); err != nil {
		httpx.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearAll removes every draft for the current user.
func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	removed, err := h.repo.ClearAll(r.Context(), userID)
	if err != nil {
		h.logger.Error("clear drafts failed", slog.Int64("user_id", userID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]int{"removed": removed})
}
