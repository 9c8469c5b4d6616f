// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/phamqnam/bodylog/internal/platform/request"
	"github.com/phamqnam/bodylog/internal/platform/respond"
	"github.com/phamqnam/bodylog/internal/platform/validate"
)

// errMissingGuard signals a wiring mistake: an authenticated handler was
// mounted without [Guard.RequireUser] in front of it.
var errMissingGuard = errors.New("authenticated route reached without guard")

// Handler exposes the account endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds the HTTP handler for the account endpoints.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the authentication routes. Registration and login are
// public; the current-user endpoint sits behind the guard.
func (handler *Handler) Routes(guard *Guard) chi.Router {
	router := chi.NewRouter()
	router.Post("/register", handler.Register)
	router.Post("/login", handler.Login)
	router.With(guard.RequireUser).Get("/me", handler.Me)
	return router
}

// RegisterRequest is the JSON body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
//
// Input problems are business outcomes, not transport errors: a missing or
// malformed field comes back as HTTP 200 with success=false and a message,
// exactly like a duplicate username would. Only an undecodable body is a 400.
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	var body RegisterRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.TrimSpace(body.Email)

	if message, ok := validateRegister(body); !ok {
		respond.OK(writer, &AuthResult{Success: false, Message: message})
		return
	}

	result, err := handler.service.Register(request.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// Login handles POST /api/auth/login.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var body LoginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	body.Username = strings.TrimSpace(body.Username)

	if body.Username == "" || body.Password == "" {
		respond.OK(writer, &AuthResult{Success: false, Message: MsgInvalidCredentials})
		return
	}

	result, err := handler.service.Login(request.Context(), body.Username, body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// Me handles GET /api/auth/me. It runs behind [Guard.RequireUser], which has
// already resolved the account.
func (handler *Handler) Me(writer http.ResponseWriter, request *http.Request) {
	user, ok := CurrentUser(request.Context())
	if !ok {
		// Route wired without the guard; treat as a server fault.
		respond.Error(writer, request, errMissingGuard)
		return
	}
	respond.OK(writer, user.Sanitize())
}

// ListUsers handles GET /api/users, a protected listing of every account.
func (handler *Handler) ListUsers(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]*UserView{"users": views})
}

// validateRegister applies the registration input rules in order and returns
// the first failure message. Password content is unrestricted beyond presence.
func validateRegister(body RegisterRequest) (string, bool) {
	if new(validate.Validator).Required("username", body.Username).HasErrors() {
		return MsgUsernameRequired, false
	}
	if new(validate.Validator).Email("email", body.Email).HasErrors() {
		return MsgEmailInvalid, false
	}
	if new(validate.Validator).Required("password", body.Password).HasErrors() {
		return MsgPasswordRequired, false
	}
	return "", true
}
