package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"courtbook/internal/config"
	"courtbook/internal/database"
	"courtbook/internal/middleware"
	"courtbook/internal/modules/availability"
	"courtbook/internal/modules/booking"
	"courtbook/internal/modules/catalog"
	"courtbook/internal/modules/schedule"
	"courtbook/internal/modules/voucher"
	jwtpkg "courtbook/internal/pkg/jwt"
	"courtbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	facilityRepo := repository.NewFacilityRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	priceSlotRepo := repository.NewPriceSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	productRepo := repository.NewProductRepository(db)

	tokens := jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)

	scheduleService := schedule.NewService(priceSlotRepo)

	catalogService := catalog.NewService(facilityRepo, courtRepo, productRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	availabilityService := availability.NewService(courtRepo, bookingRepo, scheduleService)
	availabilityHandler := availability.NewHandler(availabilityService)

	voucherService := voucher.NewService(voucherRepo)
	voucherHandler := voucher.NewHandler(voucherService)

	bookingService := booking.NewService(bookingRepo, courtRepo, scheduleService, voucherService, booking.Config{
		CancellationBuffer: cfg.CancellationBuffer,
		ServiceFee:         cfg.ServiceFee,
	})
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(tokens))
		{
			bookingHandler.RegisterRoutes(protected)
			voucherHandler.RegisterRoutes(protected)

			staff := protected.Group("/")
			staff.Use(middleware.StaffOnly())
			{
				bookingHandler.RegisterStaffRoutes(staff)
			}
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
