package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/rest"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresAt    string `json:"expiresAt,omitempty"`
}

type AuthHandler struct {
	authenticator Authenticator
}

func NewAuthHandler(authenticator Authenticator) *AuthHandler {
	return &AuthHandler{authenticator}
}

func (handler *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if request.Username == "" || request.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "username and password are required"})
		return
	}

	token, err := handler.authenticator.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			http.Error(w, "Authentication is not configured", http.StatusNotImplemented)
			return
		}
		log.Warnf("login failed for user %q: %v", request.Username, err)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeToken(w, token)
}

func (handler *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if request.RefreshToken == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "refreshToken is required"})
		return
	}

	token, err := handler.authenticator.Refresh(r.Context(), request.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			http.Error(w, "Authentication is not configured", http.StatusNotImplemented)
			return
		}
		log.Warn("token refresh failed: ", err)
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}
	writeToken(w, token)
}

func writeToken(w http.ResponseWriter, token Token) {
	response := tokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		response.ExpiresAt = token.Expiry.Format(time.RFC3339)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
