package middleware

import (
	"errors"
	"strings"

	"catalog_commerce/internal/common"
	"catalog_commerce/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse trả lỗi cho client dưới dạng {"message": ...}.
// Tách riêng khỏi basehdl để tránh import cycle.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{"message": customErr.Message})
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return JSONResponse(c, fiberErr.Code, fiber.Map{"message": fiberErr.Message})
	}
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{"message": err.Error()})
}

// ErrorHandler là fiber.Config.ErrorHandler: lỗi lọt ra khỏi handler (route không tồn tại,
// body quá lớn, request sai giao thức) được log và trả về {"message": ...}
func ErrorHandler(c fiber.Ctx, err error) error {
	// HTTPS gửi tới server HTTP: handshake TLS bị đọc như một method lạ
	errMsg := err.Error()
	if strings.Contains(errMsg, "unsupported http request method") &&
		(strings.Contains(errMsg, "\x16\x03\x01") || strings.Contains(errMsg, "error when reading request headers")) {
		return JSONResponse(c, fiber.StatusBadRequest, fiber.Map{
			"message": "Server only accepts plain HTTP, use http:// instead of https://",
		})
	}

	status := common.StatusCodeOf(err)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	if status >= fiber.StatusInternalServerError {
		logger.GetErrorLogger().WithFields(logger.RequestFields(c)).
			WithFields(logrus.Fields{"status": status}).
			WithError(err).Error("Request error")
	} else {
		logger.WithRequest(c).WithFields(logrus.Fields{"status": status}).
			WithError(err).Debug("Request error")
	}

	return HandleErrorResponse(c, err)
}

// RateLimitReached là response của limiter khi vượt ngưỡng
func RateLimitReached(c fiber.Ctx) error {
	logger.WithRequest(c).Warn("Rate limit reached")
	return JSONResponse(c, fiber.StatusTooManyRequests, fiber.Map{
		"message": "Too many requests, please try again later",
	})
}
