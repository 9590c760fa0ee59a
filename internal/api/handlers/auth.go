package handlers

import (
	"context"
	"net/http"

	"github.com/baharkarakas/ong-backend/internal/api/httpx"
	"github.com/baharkarakas/ong-backend/internal/api/validate"
	"github.com/baharkarakas/ong-backend/internal/models"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (models.UserView, error)
	Login(ctx context.Context, email, password string) (models.UserView, error)
	List(ctx context.Context) ([]models.UserListItem, error)
}

var (
	registerSchema = validate.Schema{
		"username": {validate.Required(), validate.String()},
		"email":    {validate.Required(), validate.Email()},
		// bcrypt ignores input past 72 bytes
		"password": {validate.Required(), validate.String(), validate.MaxLength(72)},
	}
	loginSchema = validate.Schema{
		"email":    {validate.Required(), validate.String()},
		"password": {validate.Required(), validate.String()},
	}
)

type AuthHandler struct {
	Users UserService
}

func NewAuthHandler(users UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeValid(w, r, registerSchema, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	u, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeValid(w, r, loginSchema, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}
