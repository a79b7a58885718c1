package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest tạo log entry gắn thông tin của request hiện tại
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(RequestFields(c))
}

// RequestFields trích xuất các field cần log từ request
func RequestFields(c fiber.Ctx) logrus.Fields {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}
	if rid := RequestID(c); rid != "" {
		fields["request_id"] = rid
	}
	return fields
}

// WithModule tạo log entry gắn tên module (dùng cho LOG_FILTER_MODULES)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// RequestID lấy request ID do middleware requestid gắn vào response (hoặc client gửi lên)
func RequestID(c fiber.Ctx) string {
	if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Get(fiber.HeaderXRequestID)
}
