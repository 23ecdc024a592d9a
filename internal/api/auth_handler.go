package api

import (
	"encoding/json"
	"net/http"

	"pointage/internal/auth"
	"pointage/internal/errors"
	"pointage/internal/logging"
	"pointage/ports"
)

// AuthHandler issues tokens and reports the current principal
type AuthHandler struct {
	issuer *auth.TokenIssuer
	users  ports.UserRepository
	log    *logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(issuer *auth.TokenIssuer, users ports.UserRepository, log *logging.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, users: users, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, r, errors.ValidationError("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(h.log, w, r, errors.ValidationError("username and password are required"))
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same response for unknown user and wrong password
		respondError(h.log, w, r, errors.New(errors.CodeInvalidCredentials, "invalid username or password"))
		return
	}
	if !user.IsActive {
		respondError(h.log, w, r, errors.Unauthorized("account disabled"))
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, loginResponse{Token: token, User: user}, "Logged in")
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())
	respondOK(w, principal, "")
}
