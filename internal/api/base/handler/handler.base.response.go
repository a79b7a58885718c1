package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

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

// MessageResponse trả về body {"message": ...}
func MessageResponse(c fiber.Ctx, statusCode int, message string) error {
	return JSONResponse(c, statusCode, fiber.Map{"message": message})
}

// HandleError ghi log rồi trả lỗi cho client dưới dạng {"message": ...}.
// Status lấy từ common.Error, lỗi không chuẩn hóa là 500. Message được trả nguyên văn.
func HandleError(c fiber.Ctx, err error) error {
	status := common.StatusCodeOf(err)

	fields := logrus.Fields{"status": status}
	var customErr *common.Error
	if errors.As(err, &customErr) {
		fields["errorCode"] = customErr.Code.Code
		if customErr.Details != nil {
			fields["details"] = fmt.Sprintf("%v", customErr.Details)
		}
	}
	entry := logger.WithRequest(c).WithFields(fields)
	if status >= common.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithError(err).Warn("Request rejected")
	}

	return MessageResponse(c, status, err.Error())
}

// SafeHandlerWrapper chạy fn, panic được chuyển thành lỗi 500 thay vì làm rơi kết nối
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).Error("Handler panic")
			err = HandleError(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("unexpected error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}
