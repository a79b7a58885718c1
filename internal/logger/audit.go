package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một thao tác làm thay đổi dữ liệu catalog
type AuditAction struct {
	Action       string         `json:"action"`        // Tên hành động (ví dụ: "product_create", "product_delete_many")
	ResourceType string         `json:"resource_type"` // Loại tài nguyên (ví dụ: "product")
	ResourceIDs  []string       `json:"resource_ids"`  // Các ID bị ảnh hưởng
	IP           string         `json:"ip"`
	UserAgent    string         `json:"user_agent"`
	RequestID    string         `json:"request_id"`
	Details      map[string]any `json:"details"`
	Timestamp    time.Time      `json:"timestamp"`
}

// LogAction ghi một hành động vào audit log
func LogAction(action, resourceType string, resourceIDs []string, c fiber.Ctx, details map[string]any) {
	if details == nil {
		details = make(map[string]any)
	}
	audit := AuditAction{
		Action:       action,
		ResourceType: resourceType,
		ResourceIDs:  resourceIDs,
		IP:           c.IP(),
		UserAgent:    c.Get("User-Agent"),
		RequestID:    RequestID(c),
		Details:      details,
		Timestamp:    time.Now(),
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"resource_type": audit.ResourceType,
		"resource_ids":  audit.ResourceIDs,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"request_id":    audit.RequestID,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}
