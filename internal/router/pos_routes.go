package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/handler"
	"github.com/iliyamo/hotel-pms/internal/middleware"
	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// RegisterPOS registers the point-of-sale endpoints under /v1/pos.
// Beyond the usual auth and tenant checks, every route requires the
// hotel's plan to enable the "pos" module.
func RegisterPOS(e *echo.Echo, jwtSecret string, hotels *repository.HotelRepo, rateLimit echo.MiddlewareFunc, s *handler.SaleHandler) {
	g := e.Group(
		"/v1/pos",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleManager, model.RoleReceptionist),
		middleware.TenantScope(hotels),
		middleware.RequireModule(hotels, "pos"),
		rateLimit,
	)

	g.POST("/sales", s.Create)
	g.GET("/sales", s.List)
	g.GET("/sales/:id", s.Get)
	g.PATCH("/sales/:id/status", s.UpdateStatus)
}
