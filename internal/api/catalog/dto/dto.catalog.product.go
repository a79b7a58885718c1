package dto

import (
	catalogmodels "catalog_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductListQuery là tham số của admin listing (GET /products)
type ProductListQuery struct {
	Title    string `query:"title"`
	Category string `query:"category"`
	Price    string `query:"price"` // Directive sort/filter, xem ParsePriceDirective
	SKU      string `query:"sku"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}

// StoreProductQuery là tham số của storefront listing (GET /products/store)
type StoreProductQuery struct {
	Category string `query:"category"`
	Title    string `query:"title"`
	Slug     string `query:"slug"`
}

// ProductCreateInput là payload tạo sản phẩm (và từng phần tử của bulk replace)
type ProductCreateInput struct {
	ID            primitive.ObjectID        `json:"_id,omitempty"`
	ProductID     string                    `json:"productId,omitempty"`
	Title         map[string]string         `json:"title" validate:"required,no_xss"`
	Description   map[string]string         `json:"description,omitempty" validate:"omitempty,no_xss"`
	SKU           string                    `json:"sku,omitempty"`
	Barcode       string                    `json:"barcode,omitempty"`
	Slug          string                    `json:"slug,omitempty" validate:"omitempty,no_xss"`
	Category      *primitive.ObjectID       `json:"category,omitempty"`
	Categories    []primitive.ObjectID      `json:"categories,omitempty"`
	Image         []string                  `json:"image,omitempty"`
	Show          []string                  `json:"show,omitempty"`
	Stock         int64                     `json:"stock"`
	Prices        *catalogmodels.Prices     `json:"prices,omitempty"`
	IsCombination bool                      `json:"isCombination"`
	Variants      []catalogmodels.Variant   `json:"variants,omitempty"`
	Status        string                    `json:"status,omitempty" validate:"omitempty,oneof=show hide"`
	Sales         int64                     `json:"sales"`
	Tag           []string                  `json:"tag,omitempty"`
	Commission    float64                   `json:"commission"`
	CreatedAt     int64                     `json:"createdAt,omitempty"`
	UpdatedAt     int64                     `json:"updatedAt,omitempty"`
}

// ToModel chuyển payload thành model. Status trống mặc định là "show".
func (in *ProductCreateInput) ToModel() catalogmodels.Product {
	status := in.Status
	if status == "" {
		status = catalogmodels.ProductStatusShow
	}
	return catalogmodels.Product{
		ID:            in.ID,
		ProductID:     in.ProductID,
		Title:         in.Title,
		Description:   in.Description,
		SKU:           in.SKU,
		Barcode:       in.Barcode,
		Slug:          in.Slug,
		Category:      in.Category,
		Categories:    in.Categories,
		Image:         in.Image,
		Show:          in.Show,
		Stock:         in.Stock,
		Prices:        in.Prices,
		IsCombination: in.IsCombination,
		Variants:      in.Variants,
		Status:        status,
		Sales:         in.Sales,
		Tag:           in.Tag,
		Commission:    in.Commission,
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     in.UpdatedAt,
	}
}

// ProductUpdateInput là payload cập nhật toàn bộ một sản phẩm.
// Title/Description được merge theo từng ngôn ngữ; các field còn lại ghi đè,
// field vắng mặt (nil) bị xóa khỏi document.
type ProductUpdateInput struct {
	Title         map[string]string       `json:"title,omitempty" validate:"omitempty,no_xss"`
	Description   map[string]string       `json:"description,omitempty" validate:"omitempty,no_xss"`
	ProductID     *string                 `json:"productId,omitempty"`
	SKU           *string                 `json:"sku,omitempty"`
	Barcode       *string                 `json:"barcode,omitempty"`
	Slug          *string                 `json:"slug,omitempty"`
	Categories    []primitive.ObjectID    `json:"categories,omitempty"`
	Category      *primitive.ObjectID     `json:"category,omitempty"`
	Show          []string                `json:"show,omitempty"`
	IsCombination *bool                   `json:"isCombination,omitempty"`
	Variants      []catalogmodels.Variant `json:"variants,omitempty"`
	Stock         *int64                  `json:"stock,omitempty"`
	Prices        *catalogmodels.Prices   `json:"prices,omitempty"`
	Image         []string                `json:"image,omitempty"`
	Tag           []string                `json:"tag,omitempty"`
	Commission    *float64                `json:"commission,omitempty"`
}

// ProductStatusInput là payload của PUT /products/status/:id
type ProductStatusInput struct {
	Status string `json:"status"`
}

// ProductIDsInput là payload của bulk delete
type ProductIDsInput struct {
	IDs []string `json:"ids" validate:"dive,objectid"`
}

// CategoryRef là danh mục đã được populate (chỉ _id và name)
type CategoryRef struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name map[string]string  `json:"name" bson:"name"`
}

// ProductView là sản phẩm có category được populate.
// Tham chiếu tới danh mục không còn tồn tại được trả về null.
type ProductView struct {
	catalogmodels.Product
	Category *CategoryRef `json:"category"`
}

// ProductDetailView populate thêm categories; tham chiếu không còn tồn tại bị bỏ qua
type ProductDetailView struct {
	ProductView
	Categories []CategoryRef `json:"categories"`
}

// ProductListResult là response của admin listing
type ProductListResult struct {
	Products []ProductDetailView `json:"products"`
	TotalDoc int64               `json:"totalDoc"`
	Limits   int64               `json:"limits"`
	Pages    int64               `json:"pages"`
}

// StoreProductsResult là response của storefront listing, luôn có đủ 4 slot
type StoreProductsResult struct {
	Products           []ProductView `json:"products"`
	PopularProducts    []ProductView `json:"popularProducts"`
	RelatedProducts    []ProductView `json:"relatedProducts"`
	DiscountedProducts []ProductView `json:"discountedProducts"`
}

// UpdateProductResult là response của PUT /products/:id
type UpdateProductResult struct {
	Data    catalogmodels.Product `json:"data"`
	Message string                `json:"message"`
}
