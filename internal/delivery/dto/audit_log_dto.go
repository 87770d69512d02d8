package dto

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         int64        `json:"id"`
	ClinicID   *uuid.UUID   `json:"clinic_id,omitempty"`
	User       *UserSummary `json:"user,omitempty"`
	Action     string       `json:"action"`
	EntityType string       `json:"entity_type"`
	EntityID   string       `json:"entity_id"`
	Metadata   entity.JSON  `json:"metadata"`
	CreatedAt  time.Time    `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
