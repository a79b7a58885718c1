// Package router đăng ký các route thuộc domain Catalog: sản phẩm cho admin và storefront.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "catalog_commerce/internal/api/catalog/handler"
	apirouter "catalog_commerce/internal/api/router"
)

const productsPrefix = "/products"

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("create product handler: %w", err)
	}
	RegisterProductRoutes(v1, productHandler)
	return nil
}

// RegisterProductRoutes đăng ký các route /products.
// Route tĩnh phải đứng trước /:id.
func RegisterProductRoutes(v1 fiber.Router, h *cataloghdl.ProductHandler) {
	routes := []struct {
		method  string
		path    string
		handler fiber.Handler
	}{
		{fiber.MethodPost, "/add", h.CreateProduct},
		{fiber.MethodPost, "/all", h.ReplaceAllProducts},
		{fiber.MethodGet, "/", h.ListProducts},
		{fiber.MethodGet, "/show", h.ListShowingProducts},
		{fiber.MethodGet, "/store", h.ListStoreProducts},
		{fiber.MethodGet, "/product/:slug", h.GetProductBySlug},
		{fiber.MethodPatch, "/update/many", h.UpdateManyProducts},
		{fiber.MethodPut, "/status/:id", h.UpdateStatus},
		{fiber.MethodPatch, "/delete/many", h.DeleteManyProducts},

		{fiber.MethodPost, "/:id", h.GetProductByID},
		{fiber.MethodGet, "/:id", h.GetProductByID},
		{fiber.MethodPut, "/:id", h.UpdateProduct},
		{fiber.MethodDelete, "/:id", h.DeleteProduct},
	}

	for _, route := range routes {
		apirouter.RegisterRouteWithMiddleware(v1, productsPrefix, route.method, route.path, nil, route.handler)
	}
}
