package database

import (
	"log"
	"strings"

	"courtbook/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On Postgres it additionally installs an
// exclusion constraint so overlapping non-cancelled bookings for the same
// court/date cannot be inserted even if two transactions race past the
// application-level check.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Facility{},
		&domain.Court{},
		&domain.PriceSlot{},
		&domain.Booking{},
		&domain.Voucher{},
		&domain.VoucherUsage{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderDetail{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
			return err
		}
		err := db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
EXCLUDE USING gist (
	court_id WITH =,
	booking_date WITH =,
	int4range(start_min, end_min) WITH &&
) WHERE (status <> 'cancelled')
`).Error
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			return err
		}
	}
	return nil
}
