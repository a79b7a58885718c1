package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category là danh mục sản phẩm. Các danh mục tạo thành một rừng cây qua ParentID.
// Vòng đời do hệ thống khác quản lý, service này chỉ đọc.
type Category struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     map[string]string  `json:"name" bson:"name"`
	ParentID string             `json:"parentId,omitempty" bson:"parentId,omitempty" index:"single:1"` // Hex ID của danh mục cha, rỗng với danh mục gốc
	Status   string             `json:"status,omitempty" bson:"status,omitempty"`
}
