package cataloghdl

import (
	"fmt"

	basehdl "catalog_commerce/internal/api/base/handler"
	catalogdto "catalog_commerce/internal/api/catalog/dto"
	catalogsvc "catalog_commerce/internal/api/catalog/service"
	"catalog_commerce/internal/common"
	"catalog_commerce/internal/logger"

	"github.com/gofiber/fiber/v3"
)

const auditResourceProduct = "product"

// ProductHandler xử lý các request của /products (admin và storefront)
type ProductHandler struct {
	basehdl.BaseHandler
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo ProductHandler trên các collection đã đăng ký
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return NewProductHandlerWithService(productService), nil
}

// NewProductHandlerWithService tạo ProductHandler với service cho trước
func NewProductHandlerWithService(productService *catalogsvc.ProductService) *ProductHandler {
	return &ProductHandler{ProductService: productService}
}

// ====================================
// READ
// ====================================

// ListProducts là admin listing: GET /products?title=&category=&price=&sku=&page=&limit=
func (h *ProductHandler) ListProducts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		page, limit := h.ParsePagination(c)
		params := catalogdto.ProductListQuery{
			Title:    c.Query("title"),
			Category: c.Query("category"),
			Price:    c.Query("price"),
			SKU:      c.Query("sku"),
			Page:     page,
			Limit:    limit,
		}

		result, err := h.ProductService.ListProducts(c.Context(), params)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// ListShowingProducts trả về mọi sản phẩm đang hiển thị
func (h *ProductHandler) ListShowingProducts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		products, err := h.ProductService.ListShowingProducts(c.Context())
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, products)
	})
}

// ListStoreProducts là storefront listing: GET /products/store?category=&title=&slug=
func (h *ProductHandler) ListStoreProducts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params := catalogdto.StoreProductQuery{
			Category: c.Query("category"),
			Title:    c.Query("title"),
			Slug:     c.Query("slug"),
		}

		result, err := h.ProductService.ListStoreProducts(c.Context(), params)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// GetProductBySlug trả về sản phẩm theo slug, body là null khi không có
func (h *ProductHandler) GetProductBySlug(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		product, err := h.ProductService.GetProductBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, product)
	})
}

// GetProductByID trả về sản phẩm đã populate category/categories
func (h *ProductHandler) GetProductByID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		product, err := h.ProductService.GetProductByID(c.Context(), h.GetIDFromContext(c))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, product)
	})
}

// ====================================
// WRITE
// ====================================

// CreateProduct tạo sản phẩm và trả về bản đã lưu
func (h *ProductHandler) CreateProduct(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input catalogdto.ProductCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}

		product, err := h.ProductService.CreateProduct(c.Context(), input)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_create", auditResourceProduct, []string{product.ID.Hex()}, c, map[string]any{
			"productId": product.ProductID,
			"slug":      product.Slug,
		})
		return basehdl.JSONResponse(c, common.StatusOK, product)
	})
}

// ReplaceAllProducts xóa toàn bộ catalog rồi insert danh sách trong body
func (h *ProductHandler) ReplaceAllProducts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var inputs []catalogdto.ProductCreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			return basehdl.HandleError(c, err)
		}

		if err := h.ProductService.ReplaceAllProducts(c.Context(), inputs); err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_replace_all", auditResourceProduct, nil, c, map[string]any{
			"count": len(inputs),
		})
		return basehdl.MessageResponse(c, common.StatusOK, catalogsvc.MsgProductsReplaced)
	})
}

// UpdateProduct ghi đè sản phẩm theo id, field vắng mặt bị xóa
func (h *ProductHandler) UpdateProduct(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input catalogdto.ProductUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}

		id := h.GetIDFromContext(c)
		result, err := h.ProductService.UpdateProduct(c.Context(), id, input)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_update", auditResourceProduct, []string{id}, c, nil)
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// UpdateManyProducts áp dụng cùng một tập field cho các sản phẩm trong body["ids"]
func (h *ProductHandler) UpdateManyProducts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var body map[string]interface{}
		if err := h.ParseRequestBody(c, &body); err != nil {
			return basehdl.HandleError(c, err)
		}

		matched, err := h.ProductService.UpdateManyProducts(c.Context(), body)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_update_many", auditResourceProduct, stringIDs(body["ids"]), c, map[string]any{
			"matched": matched,
		})
		return basehdl.MessageResponse(c, common.StatusOK, catalogsvc.MsgProductsUpdated)
	})
}

// UpdateStatus đặt status của một sản phẩm
func (h *ProductHandler) UpdateStatus(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input catalogdto.ProductStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}

		id := h.GetIDFromContext(c)
		message, err := h.ProductService.UpdateStatus(c.Context(), id, input.Status)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_update_status", auditResourceProduct, []string{id}, c, map[string]any{
			"status": input.Status,
		})
		return basehdl.MessageResponse(c, common.StatusOK, message)
	})
}

// DeleteProduct xóa một sản phẩm
func (h *ProductHandler) DeleteProduct(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id := h.GetIDFromContext(c)
		deleted, err := h.ProductService.DeleteProduct(c.Context(), id)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_delete", auditResourceProduct, []string{id}, c, map[string]any{
			"deleted": deleted,
		})
		return basehdl.MessageResponse(c, common.StatusOK, catalogsvc.MsgProductDeleted)
	})
}

// DeleteManyProducts xóa các sản phẩm trong body["ids"]
func (h *ProductHandler) DeleteManyProducts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input catalogdto.ProductIDsInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}

		deleted, err := h.ProductService.DeleteManyProducts(c.Context(), input.IDs)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		logger.LogAction("product_delete_many", auditResourceProduct, input.IDs, c, map[string]any{
			"deleted": deleted,
		})
		return basehdl.MessageResponse(c, common.StatusOK, catalogsvc.MsgProductsDeleted)
	})
}

// stringIDs lấy các id dạng chuỗi từ giá trị JSON đã decode, bỏ qua phần tử khác kiểu
func stringIDs(raw interface{}) []string {
	items, _ := raw.([]interface{})
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}
