package dto

import "github.com/crisischord/auth-be/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

// ProfileView is the identity snapshot echoed back by profile updates. It is
// assembled from the request's token claims rather than a fresh store read,
// so it carries no timestamps.
type ProfileView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProfileResponse is returned by profile updates.
type ProfileResponse struct {
	Message string      `json:"message"`
	User    ProfileView `json:"user"`
}
