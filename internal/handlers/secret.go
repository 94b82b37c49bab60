package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/secretpages/internal/models"
	"github.com/HammerMeetNail/secretpages/internal/services"
)

type SecretHandler struct {
	secretService services.SecretServiceInterface
}

func NewSecretHandler(secretService services.SecretServiceInterface) *SecretHandler {
	return &SecretHandler{secretService: secretService}
}

type SaveSecretRequest struct {
	Message string `json:"message"`
}

type SecretResponse struct {
	Secret  *models.Secret `json:"secret,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Save stores or replaces the caller's secret.
func (h *SecretHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	secret, err := h.secretService.Upsert(r.Context(), user.ID, req.Message)
	if errors.Is(err, services.ErrEmptySecret) {
		writeError(w, http.StatusBadRequest, "Secret message is required")
		return
	}
	if err != nil {
		log.Printf("Error saving secret: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SecretResponse{Secret: secret})
}

// GetOwn returns the caller's secret. A missing secret is a normal state
// and comes back as a message, not an error.
func (h *SecretHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	secret, err := h.secretService.GetOwn(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error getting secret: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if secret == nil {
		writeJSON(w, http.StatusOK, SecretResponse{Message: "You haven't shared a secret yet"})
		return
	}

	writeJSON(w, http.StatusOK, SecretResponse{Secret: secret})
}

// GetFriendSecret returns another user's secret, visible only through an
// accepted friendship.
func (h *SecretHandler) GetFriendSecret(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ownerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	secret, err := h.secretService.GetSecret(r.Context(), user.ID, ownerID)
	if errors.Is(err, services.ErrNotFriends) {
		writeError(w, http.StatusForbidden, "You are not friends with this user")
		return
	}
	if err != nil {
		log.Printf("Error getting friend secret: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if secret == nil {
		writeJSON(w, http.StatusOK, SecretResponse{Message: "This user hasn't shared a secret yet"})
		return
	}

	writeJSON(w, http.StatusOK, SecretResponse{Secret: secret})
}
