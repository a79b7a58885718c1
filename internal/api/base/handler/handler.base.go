// Package basehdl chứa các tiện ích dùng chung cho handler: parse/validate request, chuẩn hóa response.
package basehdl

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"

	"catalog_commerce/internal/common"
	"catalog_commerce/internal/global"

	"github.com/gofiber/fiber/v3"
)

// BaseHandler được embed vào các domain handler
type BaseHandler struct{}

// ParseRequestBody decode JSON body vào input rồi validate theo struct tag `validate`.
// input có thể là con trỏ tới struct, slice struct hoặc map.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, err)
	}
	return h.ValidateInput(input)
}

// ValidateInput validate struct (hoặc từng phần tử của slice struct) bằng global.Validate
func (h *BaseHandler) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		global.InitValidator()
	}

	val := reflect.ValueOf(input)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		if err := global.Validate.Struct(val.Interface()); err != nil {
			return common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, err)
		}
	case reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			if err := h.ValidateInput(val.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParsePagination đọc page và limit từ query; giá trị không phải số được coi như không truyền
func (h *BaseHandler) ParsePagination(c fiber.Ctx) (page int64, limit int64) {
	page, _ = strconv.ParseInt(c.Query("page"), 10, 64)
	limit, _ = strconv.ParseInt(c.Query("limit"), 10, 64)
	return page, limit
}

// GetIDFromContext lấy ID từ URI params của request
func (h *BaseHandler) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}
