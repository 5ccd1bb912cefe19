package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/config"
	"github.com/iliyamo/hotel-pms/internal/database"
	"github.com/iliyamo/hotel-pms/internal/handler"
	"github.com/iliyamo/hotel-pms/internal/middleware"
	"github.com/iliyamo/hotel-pms/internal/queue"
	"github.com/iliyamo/hotel-pms/internal/repository"
	"github.com/iliyamo/hotel-pms/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Nil Redis disables rate limiting and caching; the API still works.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	hotels := repository.NewHotelRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	guests := repository.NewGuestRepo(db)
	roomTypes := repository.NewRoomTypeRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	invoices := repository.NewInvoiceRepo(db)
	methods := repository.NewPaymentMethodRepo(db)
	sales := repository.NewSaleRepo(db)

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	auth := handler.NewAuthHandler(cfg, users, tokens, hotels)
	staff := router.StaffHandlers{
		Auth:         auth,
		FrontDesk:    handler.NewFrontDeskHandler(hotels, reservations, rooms, invoices),
		Reservations: handler.NewReservationHandler(reservations, guests, rooms, roomTypes),
		Invoices:     handler.NewInvoiceHandler(hotels, invoices, methods, reservations),
		Guests:       handler.NewGuestHandler(guests),
		Rooms:        handler.NewRoomHandler(rooms, roomTypes),
		Methods:      handler.NewPaymentMethodHandler(methods),
		Settings:     handler.NewSettingsHandler(hotels),
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth)
	router.RegisterStaff(e, cfg.JWTSecret, hotels, rateLimit, cache, staff)
	router.RegisterPOS(e, cfg.JWTSecret, hotels, rateLimit, handler.NewSaleHandler(sales, guests))

	// Background consumer appending payment events to logs/payments.log.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
