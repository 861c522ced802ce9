package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Niffb/Livwishlist/internal/services"
	"github.com/Niffb/Livwishlist/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles the admin gate: login and session restoration.
type AuthHandler struct {
	Service *services.AuthService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// LoginHandler checks the shared secret and returns the session token. A
// wrong password is surfaced inline and the form stays open for retry.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	token, err := h.Service.Login(credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			http.Error(w, "Incorrect password.", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to generate session token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"token": token,
		"user":  map[string]string{"id": "admin", "role": "admin"},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SessionHandler restores the gated state on reload: a valid persisted token
// gets the current user back.
func (h *AuthHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	response := map[string]interface{}{
		"user": map[string]string{"id": claims.UserID, "role": claims.Role},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
