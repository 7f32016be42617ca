package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"courtbook/internal/config"
	"courtbook/internal/database"
	"courtbook/internal/domain"
	jwtpkg "courtbook/internal/pkg/jwt"
	"courtbook/internal/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed: ", err)
	}

	// Wipe in FK-safe order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM order_details")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM voucher_usages")
	db.Exec("DELETE FROM vouchers")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM price_slots")
	db.Exec("DELETE FROM courts")
	db.Exec("DELETE FROM facilities")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM users")

	users := seedUsers(db)
	facilities := seedFacilities(db)
	seedPriceSchedules(db, facilities)
	seedVouchers(db)
	seedProducts(db)

	tokens := jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	for _, u := range users {
		token, err := tokens.Issue(u.ID, u.Role)
		if err != nil {
			log.Fatal("token issue failed: ", err)
		}
		log.Printf("sample token role=%s email=%s\n  %s", u.Role, u.Email, token)
	}

	log.Println("Seed complete.")
}

func mustCreate(db *gorm.DB, v any) {
	if fields := validator.Validate(v); fields != nil {
		log.Fatalf("invalid fixture %T: %v", v, fields)
	}
	if err := db.Create(v).Error; err != nil {
		log.Fatalf("failed to create %T: %v", v, err)
	}
}

func seedUsers(db *gorm.DB) []domain.User {
	log.Println("Creating users...")

	mkUser := func(email, name, password string, role domain.Role) domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("bcrypt failed: ", err)
		}
		u := domain.User{Email: email, Name: name, PasswordHash: string(hash), Role: role}
		mustCreate(db, &u)
		return u
	}

	return []domain.User{
		mkUser("admin@courtbook.id", "Admin", "admin123", domain.RoleAdmin),
		mkUser("frontdesk@courtbook.id", "Front Desk", "staff123", domain.RoleStaff),
		mkUser("budi@example.com", "Budi Santoso", "customer123", domain.RoleCustomer),
		mkUser("sari@example.com", "Sari Dewi", "customer123", domain.RoleCustomer),
	}
}

func seedFacilities(db *gorm.DB) []domain.Facility {
	log.Println("Creating facilities and courts...")

	facilities := []domain.Facility{
		{
			Name:     "GOR Senayan Badminton Hall",
			Address:  "Jl. Pintu Satu Senayan",
			City:     "Jakarta",
			Phone:    "+62-21-555-0101",
			OpenMin:  6 * 60,
			CloseMin: 22 * 60,
			IsActive: true,
		},
		{
			Name:     "Bintang Sport Center",
			Address:  "Jl. Margonda Raya 88",
			City:     "Depok",
			Phone:    "+62-21-555-0202",
			OpenMin:  7 * 60,
			CloseMin: 23 * 60,
			IsActive: true,
		},
	}
	for i := range facilities {
		mustCreate(db, &facilities[i])
	}

	courts := []domain.Court{
		{FacilityID: facilities[0].ID, Name: "Court 1", CourtType: "Standard", Status: domain.CourtAvailable},
		{FacilityID: facilities[0].ID, Name: "Court 2", CourtType: "Standard", Status: domain.CourtAvailable},
		{FacilityID: facilities[0].ID, Name: "Court 3", CourtType: "Premium", Status: domain.CourtAvailable},
		{FacilityID: facilities[0].ID, Name: "Court 4", CourtType: "Premium", Status: domain.CourtMaintenance},
		{FacilityID: facilities[1].ID, Name: "Lapangan A", CourtType: "Standard", Status: domain.CourtAvailable},
		{FacilityID: facilities[1].ID, Name: "Lapangan B", CourtType: "Standard", Status: domain.CourtAvailable},
	}
	for i := range courts {
		mustCreate(db, &courts[i])
	}

	return facilities
}

// seedPriceSchedules writes hourly flat-rate buckets covering the full opening
// window of each facility, with a peak premium from 17:00.
func seedPriceSchedules(db *gorm.DB, facilities []domain.Facility) {
	log.Println("Creating price schedules...")

	base := map[string]float64{"Standard": 50000, "Premium": 80000}
	for _, f := range facilities {
		for courtType, offPeak := range base {
			for h := int(f.OpenMin) / 60; h < int(f.CloseMin)/60; h++ {
				price := offPeak
				peak := h >= 17
				if peak {
					price = offPeak * 2
				}
				slot := domain.PriceSlot{
					FacilityID: f.ID,
					CourtType:  courtType,
					StartMin:   domain.TimeOfDay(h * 60),
					EndMin:     domain.TimeOfDay((h + 1) * 60),
					Price:      price,
					IsPeakHour: peak,
					IsActive:   true,
				}
				mustCreate(db, &slot)
			}
		}
	}

	// Weekend premium on Standard courts at the first facility: Saturday and
	// Sunday mornings cost more than the everyday bucket.
	for _, day := range []int{0, 6} {
		d := day
		slot := domain.PriceSlot{
			FacilityID: facilities[0].ID,
			CourtType:  "Standard",
			DayOfWeek:  &d,
			StartMin:   8 * 60,
			EndMin:     12 * 60,
			Price:      20000,
			IsActive:   true,
		}
		mustCreate(db, &slot)
	}
}

func seedVouchers(db *gorm.DB) {
	log.Println("Creating vouchers...")

	now := time.Now().UTC()
	minOrder := 100000.0
	maxDiscount := 30000.0
	globalLimit := 100

	vouchers := []domain.Voucher{
		{
			Code:              "SMASH10",
			Name:              "10% off any booking",
			DiscountType:      domain.DiscountPercentage,
			DiscountValue:     10,
			MaxDiscount:       &maxDiscount,
			ApplicableFor:     domain.VoucherScopeBooking,
			StartDate:         now.AddDate(0, 0, -1),
			EndDate:           now.AddDate(0, 1, 0),
			UsageLimit:        &globalLimit,
			UsageLimitPerUser: 1,
			IsActive:          true,
		},
		{
			Code:              "WELCOME25K",
			Name:              "Rp25.000 off your first order",
			DiscountType:      domain.DiscountFixed,
			DiscountValue:     25000,
			MinOrderAmount:    &minOrder,
			ApplicableFor:     domain.VoucherScopeAll,
			StartDate:         now.AddDate(0, 0, -1),
			EndDate:           now.AddDate(0, 3, 0),
			UsageLimitPerUser: 1,
			IsActive:          true,
		},
	}
	for i := range vouchers {
		mustCreate(db, &vouchers[i])
	}
}

func seedProducts(db *gorm.DB) {
	log.Println("Creating products...")

	products := []domain.Product{
		{Name: "Shuttlecock tube (12)", Category: "equipment", Price: 90000, Stock: 40, IsActive: true},
		{Name: "Grip tape", Category: "equipment", Price: 15000, Stock: 120, IsActive: true},
		{Name: "Isotonic drink", Category: "drinks", Price: 12000, Stock: 200, IsActive: true},
		{Name: "Mineral water", Category: "drinks", Price: 6000, Stock: 300, IsActive: true},
		{Name: "Racket rental (2h)", Category: "rental", Price: 25000, Stock: 15, IsActive: true},
	}
	for i := range products {
		mustCreate(db, &products[i])
	}
}
