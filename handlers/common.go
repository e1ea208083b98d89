package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, statusResponse{Success: success, Message: message})
}

type sessionValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// Authenticator resolves the bearer token of a request to an account id.
type Authenticator struct {
	Sessions sessionValidator
}

func NewAuthenticator(sessions sessionValidator) *Authenticator {
	return &Authenticator{Sessions: sessions}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}

// UserID returns the account id for the request, or "" for anonymous
// callers. Read endpoints treat anonymous as "no saved state".
func (a *Authenticator) UserID(r *http.Request) string {
	token := bearerToken(r)
	if token == "" {
		return ""
	}
	userID, err := a.Sessions.Validate(r.Context(), token)
	if err != nil {
		return ""
	}
	return userID
}

// RequireUser is UserID for endpoints that must reject anonymous callers.
func (a *Authenticator) RequireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := a.UserID(r)
	if userID == "" {
		writeStatus(w, http.StatusUnauthorized, false, "not authenticated")
		return "", false
	}
	return userID, true
}
