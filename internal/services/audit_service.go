package services

import (
	"go.uber.org/zap"

	"finboard/internal/logger"
)

// auditService records audit events to the structured log.
type auditService struct {
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer.
func NewAuditService() AuditServicer {
	return &auditService{log: logger.Named("audit")}
}

// Log records an audit event. It never fails the calling operation.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	s.log.Infow(action,
		"user_id", userID,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip_address", ipAddress,
		"changes", changes,
	)
}
