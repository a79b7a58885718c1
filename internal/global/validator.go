package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("objectid", validateObjectID)
}

// validateNoXSS từ chối chuỗi chứa các pattern script phổ biến.
// Áp dụng được cho string và map[string]string (title/description đa ngôn ngữ).
func validateNoXSS(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch v := field.Interface().(type) {
	case string:
		return isSafeText(v)
	case map[string]string:
		for _, s := range v {
			if !isSafeText(s) {
				return false
			}
		}
		return true
	}
	return true
}

var dangerousPatterns = []string{
	"<script",
	"javascript:",
	"onerror=",
	"onload=",
	"onclick=",
	"onmouseover=",
	"eval(",
	"document.cookie",
	"document.write",
	"<iframe",
	"<object",
	"<embed",
}

func isSafeText(value string) bool {
	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateObjectID kiểm tra chuỗi là ObjectID hex hợp lệ (rỗng được bỏ qua, dùng required nếu bắt buộc)
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}
