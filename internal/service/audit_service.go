package service

import (
	"context"

	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SystemActor is recorded when a write has no authenticated operator.
const SystemActor = "system"

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, actor, action, entityName, entityID, entity.Changes{New: newValue})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, actor, action, entityName, entityID, entity.Changes{Old: oldValue, New: newValue})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, tx, actor, action, entityName, entityID, entity.Changes{Old: oldValue})
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actor, action, entityName, entityID string, changes entity.Changes) error {
	if actor == "" {
		actor = SystemActor
	}

	auditLog := &entity.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Changes:    changes,
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
