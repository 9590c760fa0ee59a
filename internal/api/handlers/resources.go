package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/ong-backend/internal/api/httpx"
	"github.com/baharkarakas/ong-backend/internal/api/validate"
	"github.com/baharkarakas/ong-backend/internal/apperr"
	"github.com/baharkarakas/ong-backend/internal/middleware"
	"github.com/baharkarakas/ong-backend/internal/models"
)

type ResourceService interface {
	List(ctx context.Context) ([]models.ResourceView, error)
	GetByID(ctx context.Context, id string) (models.ResourceView, error)
	Create(ctx context.Context, ownerID string, in models.ResourceInput) (models.ResourceView, error)
	Update(ctx context.Context, userID, id string, patch models.ResourcePatch) (models.ResourceView, error)
	Delete(ctx context.Context, userID, id string) (models.ResourceView, error)
}

// resourceSchema is built per request so the year bound follows the clock.
func resourceSchema(now time.Time) validate.Schema {
	return validate.Schema{
		"name":        {validate.Required(), validate.String()},
		"description": {validate.Required(), validate.String()},
		"createdYear": {validate.Required(), validate.Int(), validate.Range(0, int64(now.Year()))},
	}
}

type ResourceHandler struct {
	Resources ResourceService
	Now       func() time.Time
}

func NewResourceHandler(resources ResourceService) *ResourceHandler {
	return &ResourceHandler{Resources: resources, Now: time.Now}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Resources.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rs)
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.Resources.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, r, apperr.ErrMissingToken)
		return
	}
	var in models.ResourceInput
	if err := decodeValid(w, r, resourceSchema(h.Now()), &in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	res, err := h.Resources.Create(r.Context(), u.UserID, in)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, r, apperr.ErrMissingToken)
		return
	}
	var patch models.ResourcePatch
	if err := decodeValid(w, r, resourceSchema(h.Now()).Optional(), &patch); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	res, err := h.Resources.Update(r.Context(), u.UserID, chi.URLParam(r, "id"), patch)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, r, apperr.ErrMissingToken)
		return
	}
	res, err := h.Resources.Delete(r.Context(), u.UserID, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
