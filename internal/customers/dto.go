package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentalhq/rental-backend/pkg/db/models"
)

type CreateCustomerInput struct {
	Name           string     `json:"name" validate:"required,max=255"`
	MobileNumber   string     `json:"mobile_number" validate:"required,max=20"`
	WhatsappNumber string     `json:"whatsapp_number" validate:"omitempty,max=20"`
	Email          string     `json:"email" validate:"omitempty,email"`
	Address        string     `json:"address"`
	IDProofType    string     `json:"id_proof_type" validate:"omitempty,max=50"`
	IDProofNo      string     `json:"id_proof_no" validate:"omitempty,max=100"`
	IDProofImage   string     `json:"id_proof_image" validate:"omitempty,max=512"`
	UserID         *uuid.UUID `json:"user_id"`
}

// UpdateCustomerInput is a partial update. Nil fields are left as they
// are.
type UpdateCustomerInput struct {
	Name           *string    `json:"name" validate:"omitempty,max=255"`
	MobileNumber   *string    `json:"mobile_number" validate:"omitempty,max=20"`
	WhatsappNumber *string    `json:"whatsapp_number" validate:"omitempty,max=20"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Address        *string    `json:"address"`
	IDProofType    *string    `json:"id_proof_type" validate:"omitempty,max=50"`
	IDProofNo      *string    `json:"id_proof_no" validate:"omitempty,max=100"`
	IDProofImage   *string    `json:"id_proof_image" validate:"omitempty,max=512"`
	UserID         *uuid.UUID `json:"user_id"`
}

type CustomerDTO struct {
	ID             uuid.UUID  `json:"id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	Name           string     `json:"name"`
	MobileNumber   string     `json:"mobile_number"`
	WhatsappNumber string     `json:"whatsapp_number,omitempty"`
	Email          string     `json:"email,omitempty"`
	Address        string     `json:"address,omitempty"`
	IDProofType    string     `json:"id_proof_type,omitempty"`
	IDProofNo      string     `json:"id_proof_no,omitempty"`
	IDProofImage   string     `json:"id_proof_image,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toCustomerDTO(c *models.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:             c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		MobileNumber:   c.MobileNumber,
		WhatsappNumber: c.WhatsappNumber,
		Email:          c.Email,
		Address:        c.Address,
		IDProofType:    c.IDProofType,
		IDProofNo:      c.IDProofNo,
		IDProofImage:   c.IDProofImage,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func applyUpdateToCustomer(c *models.Customer, input UpdateCustomerInput) {
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.MobileNumber != nil {
		c.MobileNumber = *input.MobileNumber
	}
	if input.WhatsappNumber != nil {
		c.WhatsappNumber = *input.WhatsappNumber
	}
	if input.Email != nil {
		c.Email = *input.Email
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if input.IDProofType != nil {
		c.IDProofType = *input.IDProofType
	}
	if input.IDProofNo != nil {
		c.IDProofNo = *input.IDProofNo
	}
	if input.IDProofImage != nil {
		c.IDProofImage = *input.IDProofImage
	}
	if input.UserID != nil {
		c.UserID = input.UserID
	}
}
