package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái hiển thị của sản phẩm
const (
	ProductStatusShow = "show"
	ProductStatusHide = "hide"
)

// Prices là cấu trúc giá của sản phẩm không có biến thể
type Prices struct {
	OriginalPrice Amount `json:"originalPrice" bson:"originalPrice"` // Giá gốc
	Price         Amount `json:"price" bson:"price"`                 // Giá bán
	Discount      Amount `json:"discount" bson:"discount"`           // Mức giảm giá
}

// Variant là một biến thể (kích thước, màu...) của combination product
type Variant struct {
	ProductID     string            `json:"productId,omitempty" bson:"productId,omitempty"`
	SKU           string            `json:"sku,omitempty" bson:"sku,omitempty"`
	Barcode       string            `json:"barcode,omitempty" bson:"barcode,omitempty"`
	Image         string            `json:"image,omitempty" bson:"image,omitempty"`
	OriginalPrice Amount            `json:"originalPrice" bson:"originalPrice"`
	Price         Amount            `json:"price" bson:"price"`
	Discount      Amount            `json:"discount" bson:"discount"`
	Quantity      int64             `json:"quantity" bson:"quantity"`
	Attributes    map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"` // attribute id -> value id
}

// Product lưu thông tin sản phẩm của catalog.
// Variants chỉ có ý nghĩa khi IsCombination = true; ngược lại giảm giá đọc từ Prices.
type Product struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`                                   // ID của product trong MongoDB, đồng thời là thứ tự tạo
	ProductID     string               `json:"productId,omitempty" bson:"productId,omitempty" index:"single:1"` // ID do client gán, sinh tự động khi thiếu
	Title         map[string]string    `json:"title" bson:"title"`                                         // Tên theo mã ngôn ngữ
	Description   map[string]string    `json:"description,omitempty" bson:"description,omitempty"`         // Mô tả theo mã ngôn ngữ
	SKU           string               `json:"sku,omitempty" bson:"sku,omitempty" index:"single:1"`
	Barcode       string               `json:"barcode,omitempty" bson:"barcode,omitempty"`
	Slug          string               `json:"slug,omitempty" bson:"slug,omitempty" index:"single:1"` // Không ép unique
	Category      *primitive.ObjectID  `json:"category,omitempty" bson:"category,omitempty" index:"single:1"`
	Categories    []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty" index:"single:1"`
	Image         []string             `json:"image,omitempty" bson:"image,omitempty"`
	Show          []string             `json:"show,omitempty" bson:"show,omitempty"` // Mã ngôn ngữ mà sản phẩm được hiển thị
	Stock         int64                `json:"stock" bson:"stock"`
	Prices        *Prices              `json:"prices,omitempty" bson:"prices,omitempty"`
	IsCombination bool                 `json:"isCombination" bson:"isCombination"`
	Variants      []Variant            `json:"variants,omitempty" bson:"variants,omitempty"`
	Status        string               `json:"status" bson:"status" index:"single:1"`
	Sales         int64                `json:"sales" bson:"sales" index:"single:1,order:-1"`
	Tag           []string             `json:"tag,omitempty" bson:"tag,omitempty"`
	Commission    float64              `json:"commission" bson:"commission"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
