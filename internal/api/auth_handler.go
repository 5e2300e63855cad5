package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/getapet/server/internal/service"
	"github.com/getapet/server/internal/store"
)

// AuthHandler serves the registration and login endpoints.
type AuthHandler struct {
	service  service.ClassifiedsService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. If log is nil the process default
// logger is used.
func NewAuthHandler(svc service.ClassifiedsService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		service:  svc,
		validate: validator.New(),
		logger:   log.With(slog.String("component", "auth_handler")),
	}
}

// Register handles PUT /api/register. On a unique-constraint conflict the
// response names the conflicting column so the client can highlight the field.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := RegisterRequest{
		Username:    r.FormValue("username"),
		Password:    r.FormValue("password"),
		DisplayName: r.FormValue("display_name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
	}
	if err := h.validate.Struct(req); err != nil {
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to create user: %v", err))
		return
	}

	err := h.service.CreateUser(r.Context(), req.Username, req.Password, req.DisplayName, req.Email, req.Phone)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			h.logger.Warn("failed to create user, duplicate value",
				slog.String("username", req.Username),
				slog.String("column", conflict.Column))
			RespondWithText(w, http.StatusBadRequest,
				fmt.Sprintf("Chosen %s exists, please choose a different one", conflict.Column))
			return
		}
		h.logger.Error("failed to create user", slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to create user: %v", err))
		return
	}

	h.logger.Info("user created successfully", slog.String("username", req.Username))
	RespondWithText(w, http.StatusOK, "User created successfully: "+req.Username)
}

// Login handles POST /api/login. A wrong username and a wrong password are
// deliberately indistinguishable in the response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to login: %v", err))
		return
	}

	profile, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("failed to login", slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to login: %v", err))
		return
	}
	if profile == nil {
		h.logger.Warn("wrong user name or password", slog.String("username", req.Username))
		RespondWithText(w, http.StatusBadRequest, "Wrong user name or password, please try again")
		return
	}

	h.logger.Info("user logged in", slog.String("username", req.Username))
	RespondWithJSON(w, http.StatusOK, profile)
}
