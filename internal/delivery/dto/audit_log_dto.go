package dto

import (
	"time"

	"doctor-directory/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64          `json:"id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id"`
	Changes   entity.Changes `json:"changes"`
	CreatedAt time.Time      `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
