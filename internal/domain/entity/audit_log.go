package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditLog records one write made through the admin API.
type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor      string    `gorm:"type:varchar(100);not null;index" json:"actor"`
	Action     string    `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityName string    `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID   string    `gorm:"type:varchar(50);not null;index" json:"entity_id"`
	Changes    Changes   `gorm:"type:jsonb" json:"changes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;<-:create;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Changes holds the before/after snapshot of an audited write as JSONB.
type Changes struct {
	Old interface{} `json:"old,omitempty"`
	New interface{} `json:"new,omitempty"`
}

// Value implements driver.Valuer.
func (c Changes) Value() (driver.Value, error) {
	if c.Old == nil && c.New == nil {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *Changes) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = Changes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported audit changes value %T", value)
	}
	return json.Unmarshal(raw, c)
}

// AuditLogFilter narrows audit log listings.
type AuditLogFilter struct {
	EntityName string
	EntityID   string
	Limit      int
}

const (
	AuditActionSpecialtyCreate  = "specialty.create"
	AuditActionSpecialtyUpdate  = "specialty.update"
	AuditActionSpecialtyDelete  = "specialty.delete"
	AuditActionHospitalCreate   = "hospital.create"
	AuditActionHospitalUpdate   = "hospital.update"
	AuditActionHospitalDelete   = "hospital.delete"
	AuditActionDoctorCreate     = "doctor.create"
	AuditActionDoctorUpdate     = "doctor.update"
	AuditActionDoctorDelete     = "doctor.delete"
	AuditActionExperienceCreate = "experience.create"
	AuditActionExperienceUpdate = "experience.update"
	AuditActionExperienceDelete = "experience.delete"
	AuditActionReviewCreate     = "review.create"
	AuditActionReviewDelete     = "review.delete"
)
