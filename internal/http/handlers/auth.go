package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/crisischord/auth-be/internal/auth"
	"github.com/crisischord/auth-be/internal/http/respond"
	"github.com/crisischord/auth-be/internal/middleware"
	"github.com/crisischord/auth-be/internal/models"
	"github.com/crisischord/auth-be/internal/models/dto"
	"github.com/crisischord/auth-be/internal/storage"
)

// AuthHandler owns the registration, login, profile, and password endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches auth routes to the mux. Profile and password routes sit
// behind the bearer-token guard.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.Handle("/profile", middleware.RequireAuth(h.tokens, http.HandlerFunc(h.handleProfile)))
	mux.Handle("/change-password", middleware.RequireAuth(h.tokens, http.HandlerFunc(h.handleChangePassword)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		respond.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// Check-then-insert: the pre-check gives the common duplicate case a
	// cheap 409, the unique index catches the race below.
	if _, err := h.store.FindByEmail(r.Context(), email); err == nil {
		respond.Error(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("register: check email: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to check email")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to process registration")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Email:        email,
		Name:         name,
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("register: create user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to create user account")
		return
	}

	token, err := h.tokens.Issue(created)
	if err != nil {
		log.Printf("register: issue token: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    created,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// Unknown email and wrong password produce identical responses so the
	// endpoint cannot be used for account enumeration.
	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("login: fetch user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("login: issue token: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetProfile(w, r)
	case http.MethodPatch:
		h.handleUpdateProfile(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	// The row may have been removed since the token was issued.
	user, err := h.store.FindByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("profile: fetch user %d: %v", claims.UserID, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch user profile")
		return
	}

	respond.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Error(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.store.UpdateName(r.Context(), claims.UserID, name); err != nil {
		log.Printf("profile: update name for %d: %v", claims.UserID, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to update user profile")
		return
	}

	// Echo the token's own claims plus the new name rather than re-reading
	// the row; email and role may be marginally stale.
	respond.JSON(w, http.StatusOK, dto.ProfileResponse{
		Message: "Profile updated successfully",
		User: dto.ProfileView{
			ID:    claims.UserID,
			Name:  name,
			Email: claims.Email,
			Role:  claims.Role,
		},
	})
}

func (h *AuthHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respond.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := h.store.FindByID(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("change-password: fetch user %d: %v", claims.UserID, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to verify current password")
		return
	}
	if !auth.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("change-password: hash password: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to process password change")
		return
	}
	if err := h.store.UpdatePasswordHash(r.Context(), claims.UserID, newHash); err != nil {
		log.Printf("change-password: update hash for %d: %v", claims.UserID, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	// Tokens issued before the change stay valid until they expire.
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
