package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// SecurityHeaders thêm các security header vào mọi response.
// HSTS chỉ được set khi server chạy TLS.
func SecurityHeaders(enableHSTS bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if enableHSTS {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	}
}

// SkipSystemRoutes trả về true với health check và preflight, dùng cho Next của limiter/recover
func SkipSystemRoutes(c fiber.Ctx) bool {
	return c.Path() == "/api/v1/system/health" || c.Method() == fiber.MethodOptions
}
