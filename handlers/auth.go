package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cineview/models"
	"cineview/services/accounts"
	"cineview/services/sessions"
)

type accountService interface {
	Register(ctx context.Context, username, plaintext string) (*models.Account, error)
	Authenticate(ctx context.Context, username, plaintext string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

type sessionService interface {
	Create(ctx context.Context, accountID string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
}

var (
	_ accountService = (*accounts.Service)(nil)
	_ sessionService = (*sessions.Service)(nil)
)

type AuthHandler struct {
	Accounts accountService
	Sessions sessionService
	Auth     *Authenticator
}

func NewAuthHandler(accts accountService, sess sessionService, auth *Authenticator) *AuthHandler {
	return &AuthHandler{Accounts: accts, Sessions: sess, Auth: auth}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	acct, err := h.Accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrUsernameRequired),
			errors.Is(err, accounts.ErrPasswordTooShort):
			writeStatus(w, http.StatusBadRequest, false, err.Error())
		case errors.Is(err, accounts.ErrUsernameTaken):
			writeStatus(w, http.StatusConflict, false, err.Error())
		default:
			writeStatus(w, http.StatusInternalServerError, false, "failed to create account")
		}
		return
	}

	sess, err := h.Sessions.Create(r.Context(), acct.ID)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: sess.Token, Account: acct})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	acct, err := h.Accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			writeStatus(w, http.StatusUnauthorized, false, err.Error())
			return
		}
		writeStatus(w, http.StatusInternalServerError, false, "failed to sign in")
		return
	}

	sess, err := h.Sessions.Create(r.Context(), acct.ID)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: sess.Token, Account: acct})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeStatus(w, http.StatusUnauthorized, false, "not authenticated")
		return
	}
	if err := h.Sessions.Destroy(r.Context(), token); err != nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to sign out")
		return
	}
	writeStatus(w, http.StatusOK, true, "")
}

// Me returns the account behind the request's session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}
	acct, err := h.Accounts.GetByID(r.Context(), userID)
	if err != nil || acct == nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to load account")
		return
	}
	writeJSON(w, http.StatusOK, acct)
}
