package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "catalog_commerce/internal/api/base/handler"
)

// ============================================================================
// LƯU Ý: ĐĂNG KÝ MIDDLEWARE THEO ROUTE TRONG FIBER V3
// ============================================================================
//
// Không truyền middleware trực tiếp vào router.Get(path, middleware, handler),
// middleware sẽ không được gọi. Dùng RegisterRouteWithMiddleware: middleware
// được gắn qua .Use() của group.
//
// ============================================================================

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route dưới prefix, middleware (nếu có) được gắn qua .Use() của group.
// Ví dụ:
//
//	RegisterRouteWithMiddleware(v1, "/products", "PATCH", "/update/many", nil, h.UpdateManyProducts)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodPatch:
		routeGroup.Patch(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	default:
		panic(fmt.Sprintf("unsupported route method %q", method))
	}
}

// registerSystemRoutes đăng ký các route hệ thống (health check)
func registerSystemRoutes(v1 fiber.Router) {
	systemHandler := basehdl.NewSystemHandler()
	RegisterRouteWithMiddleware(v1, "/system", fiber.MethodGet, "/health", nil, systemHandler.HandleHealth)
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)

	registerSystemRoutes(v1)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
