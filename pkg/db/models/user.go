package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/enums"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"size:512;not null" json:"-"`
	FullName     string         `gorm:"size:255" json:"full_name"`
	Role         enums.UserRole `gorm:"size:20;not null" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`

	AuditFields
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &u.ID)
}
