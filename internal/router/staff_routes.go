package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/handler"
	"github.com/iliyamo/hotel-pms/internal/middleware"
	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// StaffHandlers groups the handlers mounted on the tenant-scoped staff
// API.
type StaffHandlers struct {
	Auth         *handler.AuthHandler
	FrontDesk    *handler.FrontDeskHandler
	Reservations *handler.ReservationHandler
	Invoices     *handler.InvoiceHandler
	Guests       *handler.GuestHandler
	Rooms        *handler.RoomHandler
	Methods      *handler.PaymentMethodHandler
	Settings     *handler.SettingsHandler
}

// RegisterStaff registers all tenant-scoped endpoints under /v1.
// Every route requires a valid access token, a staff role and an
// X-Hotel-Id header naming a hotel the caller belongs to.  Manager-only
// administration (inventory, pricing, payment channels) sits in a
// nested group with a stricter role check.  rateLimit applies to the
// whole group; cache is attached only to the read-heavy dashboard and
// availability endpoints.
func RegisterStaff(e *echo.Echo, jwtSecret string, hotels *repository.HotelRepo, rateLimit, cache echo.MiddlewareFunc, h StaffHandlers) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleManager, model.RoleReceptionist),
		middleware.TenantScope(hotels),
		rateLimit,
	)

	g.GET("/me", h.Auth.Me)
	g.GET("/settings/hotel", h.Settings.GetHotel)

	// Front desk.
	g.GET("/frontdesk/dashboard", h.FrontDesk.Dashboard, cache)
	g.POST("/frontdesk/checkin/:id", h.FrontDesk.CheckIn)
	g.POST("/frontdesk/checkout/:id", h.FrontDesk.CheckOut)

	// Reservations.
	g.POST("/reservations", h.Reservations.Create)
	g.GET("/reservations", h.Reservations.List)
	g.GET("/reservations/availability", h.Reservations.Availability, cache)
	g.GET("/reservations/:id", h.Reservations.Get)
	g.POST("/reservations/:id/confirm", h.Reservations.Confirm)
	g.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	g.GET("/reservations/code/:code", h.Reservations.GetByCode)
	g.GET("/reservations/code/:code/payment-status", h.Invoices.PaymentStatus)

	// Invoices and payments.
	g.POST("/invoices", h.Invoices.Create)
	g.GET("/invoices", h.Invoices.List)
	g.GET("/invoices/:id", h.Invoices.Get)
	g.POST("/invoices/:id/payments", h.Invoices.RecordPayment)

	// Guests.
	g.POST("/guests", h.Guests.Create)
	g.GET("/guests", h.Guests.List)
	g.GET("/guests/:id", h.Guests.Get)
	g.PUT("/guests/:id", h.Guests.Update)
	g.DELETE("/guests/:id", h.Guests.Delete)

	// Rooms: browsing and housekeeping status are front-desk work.
	g.GET("/rooms", h.Rooms.ListRooms)
	g.GET("/rooms/:id", h.Rooms.GetRoom)
	g.PATCH("/rooms/:id/status", h.Rooms.UpdateRoomStatus)
	g.GET("/room-types", h.Rooms.ListRoomTypes)
	g.GET("/payment-methods", h.Methods.List)

	// Back-office administration, managers only.
	admin := g.Group("", middleware.RequireRole(model.RoleManager))
	admin.POST("/rooms", h.Rooms.CreateRoom)
	admin.PUT("/rooms/:id", h.Rooms.UpdateRoom)
	admin.DELETE("/rooms/:id", h.Rooms.DeleteRoom)
	admin.POST("/room-types", h.Rooms.CreateRoomType)
	admin.PUT("/room-types/:id", h.Rooms.UpdateRoomType)
	admin.DELETE("/room-types/:id", h.Rooms.DeleteRoomType)
	admin.POST("/payment-methods", h.Methods.Create)
	admin.PATCH("/payment-methods/:id/status", h.Methods.UpdateStatus)
}
