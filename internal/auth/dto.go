package auth

import (
	"github.com/google/uuid"

	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN STAFF"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID       uuid.UUID      `json:"id"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name,omitempty"`
	Role     enums.UserRole `json:"role"`
}

type LoginResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toUserDTO(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
