package services

import (
	"context"

	"park-system/internal/models"
)

// AuditService exposes the audit trail to the admin surface.
type AuditService struct {
	logs AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(logs AuditLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// List returns audit entries newest-first, capped at limit (0 = all).
func (s *AuditService) List(ctx context.Context, limit int64) ([]*models.AuditLog, error) {
	return s.logs.GetAll(ctx, limit)
}
