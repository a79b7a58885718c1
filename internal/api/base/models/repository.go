// Package models chứa các kiểu dùng chung cho layer repository/base (kết quả phân trang).
package models

import (
	"fmt"
	"math"

	"catalog_commerce/internal/common"
)

// PaginateResult đại diện cho kết quả phân trang
type PaginateResult[T any] struct {
	// Trang hiện tại
	Page int64 `json:"page" bson:"page"`
	// Số lượng mục trên mỗi trang
	Limit int64 `json:"limit" bson:"limit"`
	// Danh sách các mục
	Items []T `json:"items" bson:"items"`
	// Tổng số mục khớp filter (không tính phân trang)
	Total int64 `json:"total" bson:"total"`
}

// Pagination chuẩn hóa page/limit và trả về skip tương ứng.
// page < 1 về 1, limit <= 0 về 10. Không giới hạn trên cho limit,
// nhưng (page-1)*limit tràn int64 thì trả về lỗi 400.
func Pagination(page, limit int64) (normPage, normLimit, skip int64, err error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if page-1 > math.MaxInt64/limit {
		msg := fmt.Sprintf("page %d with limit %d is out of range", page, limit)
		return 0, 0, 0, common.NewError(common.ErrCodeValidationInput, msg, common.StatusBadRequest, nil)
	}
	return page, limit, (page - 1) * limit, nil
}
