package basehdl

import (
	"context"
	"time"

	"catalog_commerce/internal/common"
	"catalog_commerce/internal/database"
	"catalog_commerce/internal/global"

	"github.com/gofiber/fiber/v3"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	BaseHandler
	ping func(ctx context.Context) error
}

// NewSystemHandler tạo SystemHandler kiểm tra kết nối tới global.MongoDB_Session
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{
		ping: func(ctx context.Context) error {
			return database.Ping(ctx, global.MongoDB_Session)
		},
	}
}

// HandleHealth kiểm tra trạng thái API và kết nối database.
// 200 khi mọi thứ ổn, 503 khi không ping được MongoDB.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if err := h.ping(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, healthData)
	}

	services["database"] = "ok"
	return JSONResponse(c, common.StatusOK, healthData)
}
