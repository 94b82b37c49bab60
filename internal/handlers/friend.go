package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/secretpages/internal/models"
	"github.com/HammerMeetNail/secretpages/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// SendRequestRequest targets the recipient by email, the only identifier
// one user knows about another.
type SendRequestRequest struct {
	Email string `json:"email"`
}

type FriendListResponse struct {
	Friends  []models.FriendWithUser `json:"friends,omitempty"`
	Requests []models.FriendRequest  `json:"requests,omitempty"`
	Sent     []models.FriendWithUser `json:"sent,omitempty"`
	Message  string                  `json:"message,omitempty"`
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	_, err := h.friendService.SendRequest(r.Context(), user.ID, req.Email)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "No user with that email")
		return
	}
	if errors.Is(err, services.ErrCannotFriendSelf) {
		writeError(w, http.StatusBadRequest, "Cannot send a friend request to yourself")
		return
	}
	if errors.Is(err, services.ErrAlreadyFriends) {
		writeError(w, http.StatusConflict, "You are already friends with this user")
		return
	}
	if errors.Is(err, services.ErrRequestAlreadyPending) {
		writeError(w, http.StatusConflict, "A friend request already exists between you")
		return
	}
	if err != nil {
		log.Printf("Error sending friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, FriendListResponse{Message: "Friend request sent"})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	_, err = h.friendService.AcceptRequest(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if errors.Is(err, services.ErrNotFriendshipRecipient) {
		writeError(w, http.StatusForbidden, "Only the recipient can accept this request")
		return
	}
	if errors.Is(err, services.ErrFriendshipNotPending) {
		writeError(w, http.StatusBadRequest, "Request is not pending")
		return
	}
	if err != nil {
		log.Printf("Error accepting friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Message: "Friend request accepted"})
}

// Decline covers declining a received request, canceling a sent one, and
// removing an accepted friend. All three delete the same row.
func (h *FriendHandler) Decline(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	err = h.friendService.Decline(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friendship not found")
		return
	}
	if err != nil {
		log.Printf("Error removing friendship: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Message: "Friendship removed"})
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing friends: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	requests, err := h.friendService.ListPendingRequests(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing pending requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sent, err := h.friendService.ListSentRequests(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing sent requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{
		Friends:  friends,
		Requests: requests,
		Sent:     sent,
	})
}

func parseFriendshipID(r *http.Request) (uuid.UUID, error) {
	if id := r.PathValue("id"); id != "" {
		return uuid.Parse(id)
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "requests" {
			return uuid.Parse(parts[i+1])
		}
	}
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "friends" {
			if parts[i+1] == "requests" {
				continue
			}
			return uuid.Parse(parts[i+1])
		}
	}
	return uuid.Nil, errors.New("friendship ID not found in path")
}
