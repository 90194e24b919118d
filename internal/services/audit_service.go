package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/leano777/subtracker-api/internal/logger"
	"github.com/leano777/subtracker-api/internal/models"
)

// auditService records sensitive operations to the audit_logs table.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log writes an audit entry. Failures are logged and swallowed so auditing
// can never fail the operation being audited.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("audit log write failed",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"user_id", userID,
		)
	}
}

func encodeChanges(action string, changes map[string]interface{}) string {
	if changes == nil {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Errorw("audit changes not serializable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
