package httpapp

import (
	"errors"
	"net/http"

	"github.com/cesargomez89/mekkompis/internal/auth"
	"github.com/cesargomez89/mekkompis/internal/constants"
	"github.com/cesargomez89/mekkompis/internal/http/dto"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Password == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Lösenord krävs")
		return
	}

	token, err := h.Gate.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		writeErrorMessage(w, http.StatusInternalServerError, "Autentisering är inte konfigurerad på servern")
		return
	case errors.Is(err, auth.ErrWrongPassword):
		writeErrorMessage(w, http.StatusUnauthorized, "Felaktigt lösenord")
		return
	case err != nil:
		h.Logger.WithRequest(r.Method, r.URL.Path, requestID(r)).Error("Login failed", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Inloggning misslyckades")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: constants.TokenLifetimeLabel,
		Message:   "Inloggning lyckades",
	})
}

func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	if !h.Gate.Enabled() {
		writeJSON(w, http.StatusOK, map[string]bool{"valid": true, "authEnabled": false})
		return
	}
	_, err := h.Gate.Verify(auth.BearerToken(r))
	writeJSON(w, http.StatusOK, map[string]bool{"valid": err == nil, "authEnabled": true})
}

func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	gate, ok := auth.GateFromContext(r.Context())
	if !ok {
		gate = h.Gate
	}
	message := "Autentisering är inaktiverad (lokal utveckling)"
	if gate.Enabled() {
		message = "Autentisering är aktiverad"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authEnabled": gate.Enabled(),
		"message":     message,
	})
}
