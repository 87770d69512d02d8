package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClinicRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type ClinicResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
