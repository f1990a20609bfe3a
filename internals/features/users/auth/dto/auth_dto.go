// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"strings"

	userModel "soutenance_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUESTS
   ======================================================= */

// RegisterRequest creates a staff account. Student accounts are created
// through the students endpoint together with their academic profile.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Prenom   string `json:"prenom" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=teacher admin"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Prenom = strings.TrimSpace(r.Prenom)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Role == "" {
		r.Role = string(userModel.RoleTeacher)
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

/* =======================================================
   RESPONSES
   ======================================================= */

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prenom string `json:"prenom"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:     u.UserID.String(),
		Name:   u.UserName,
		Prenom: u.UserPrenom,
		Email:  u.UserEmail,
		Role:   string(u.UserRole),
	}
}
