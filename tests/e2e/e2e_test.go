package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtbook/internal/database"
	"courtbook/internal/domain"
	"courtbook/internal/middleware"
	"courtbook/internal/modules/availability"
	"courtbook/internal/modules/booking"
	"courtbook/internal/modules/catalog"
	"courtbook/internal/modules/schedule"
	"courtbook/internal/modules/voucher"
	jwtpkg "courtbook/internal/pkg/jwt"
	"courtbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type suite struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *jwtpkg.Manager

	court    domain.Court
	customer domain.User
	staff    domain.User
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.Migrate(db))

	s := &suite{db: db, tokens: jwtpkg.NewManager("e2e-secret", time.Hour)}
	s.seed(t)

	facilityRepo := repository.NewFacilityRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	priceSlotRepo := repository.NewPriceSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	productRepo := repository.NewProductRepository(db)

	scheduleService := schedule.NewService(priceSlotRepo)
	catalogHandler := catalog.NewHandler(catalog.NewService(facilityRepo, courtRepo, productRepo))
	availabilityHandler := availability.NewHandler(availability.NewService(courtRepo, bookingRepo, scheduleService))
	voucherService := voucher.NewService(voucherRepo)
	voucherHandler := voucher.NewHandler(voucherService)
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, courtRepo, scheduleService, voucherService, booking.Config{
		CancellationBuffer: 2 * time.Hour,
	}))

	r := gin.New()
	v1 := r.Group("/api/v1")
	catalogHandler.RegisterRoutes(v1)
	availabilityHandler.RegisterRoutes(v1)
	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth(s.tokens))
	bookingHandler.RegisterRoutes(protected)
	voucherHandler.RegisterRoutes(protected)
	staffGrp := protected.Group("/")
	staffGrp.Use(middleware.StaffOnly())
	bookingHandler.RegisterStaffRoutes(staffGrp)

	s.router = r
	return s
}

func (s *suite) seed(t *testing.T) {
	t.Helper()

	s.customer = domain.User{Email: "player@example.com", Role: domain.RoleCustomer}
	s.staff = domain.User{Email: "desk@example.com", Role: domain.RoleStaff}
	require.NoError(t, s.db.Create(&s.customer).Error)
	require.NoError(t, s.db.Create(&s.staff).Error)

	f := domain.Facility{Name: "E2E Hall", City: "Jakarta", OpenMin: 6 * 60, CloseMin: 22 * 60, IsActive: true}
	require.NoError(t, s.db.Create(&f).Error)

	s.court = domain.Court{FacilityID: f.ID, Name: "Court 1", CourtType: "Standard", Status: domain.CourtAvailable}
	require.NoError(t, s.db.Create(&s.court).Error)

	// One peak bucket 17:00-18:00 at 100000, plus surrounding hours at 50000.
	for h := 6; h < 22; h++ {
		price, peak := 50000.0, false
		if h == 17 {
			price, peak = 100000, true
		}
		slot := domain.PriceSlot{
			FacilityID: f.ID, CourtType: "Standard",
			StartMin: domain.TimeOfDay(h * 60), EndMin: domain.TimeOfDay((h + 1) * 60),
			Price: price, IsPeakHour: peak, IsActive: true,
		}
		require.NoError(t, s.db.Create(&slot).Error)
	}
}

func (s *suite) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "non-envelope body: %s", w.Body.String())
	return w, out
}

func (s *suite) availabilityFor(t *testing.T, date string) availability.DayAvailability {
	t.Helper()
	path := fmt.Sprintf("/api/v1/facilities/%d/courts/%d/availability?date=%s", s.court.FacilityID, s.court.ID, date)
	w, resp := s.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var day availability.DayAvailability
	require.NoError(t, json.Unmarshal(resp.Data, &day))
	return day
}

func slotAt(day availability.DayAvailability, start string) *availability.SlotAvailability {
	for i := range day.Slots {
		if day.Slots[i].Start == start {
			return &day.Slots[i]
		}
	}
	return nil
}

func TestBookingFlow(t *testing.T) {
	s := setupSuite(t)
	token, err := s.tokens.Issue(s.customer.ID, s.customer.Role)
	require.NoError(t, err)
	staffToken, err := s.tokens.Issue(s.staff.ID, s.staff.Role)
	require.NoError(t, err)

	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	// Peak slot starts out free at its flat rate.
	day := s.availabilityFor(t, date)
	peak := slotAt(day, "17:00")
	require.NotNil(t, peak)
	assert.True(t, peak.IsAvailable)
	assert.Equal(t, 100000.0, peak.Price)
	assert.True(t, peak.IsPeakHour)

	// Book it.
	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", token, booking.CreateBookingRequest{
		CourtID: s.court.ID, Date: date, StartTime: "17:00", EndTime: "18:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, "create booking failed: %v", resp.Error)
	var created booking.BookingResponse
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, 100000.0, created.TotalPrice)
	assert.Equal(t, "confirmed", created.Status)

	// The slot flips to unavailable; neighbours stay free.
	day = s.availabilityFor(t, date)
	assert.False(t, slotAt(day, "17:00").IsAvailable)
	assert.True(t, slotAt(day, "16:00").IsAvailable)
	assert.True(t, slotAt(day, "18:00").IsAvailable)

	// A second identical request loses.
	w, resp = s.request(t, http.MethodPost, "/api/v1/bookings", token, booking.CreateBookingRequest{
		CourtID: s.court.ID, Date: date, StartTime: "17:00", EndTime: "18:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SLOT_NO_LONGER_AVAILABLE", resp.Error.Code)

	// So does a partially overlapping one.
	w, resp = s.request(t, http.MethodPost, "/api/v1/bookings", token, booking.CreateBookingRequest{
		CourtID: s.court.ID, Date: date, StartTime: "16:30", EndTime: "17:30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Staff check the player in and out.
	w, resp = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/check-in", created.ID), staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code, "check-in failed: %v", resp.Error)
	w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/check-out", created.ID), staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A completed booking cannot be cancelled.
	w, resp = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/cancel", created.ID), token,
		booking.CancelBookingRequest{Reason: "changed my mind"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", resp.Error.Code)
}

func TestCancellationFreesSlot(t *testing.T) {
	s := setupSuite(t)
	token, err := s.tokens.Issue(s.customer.ID, s.customer.Role)
	require.NoError(t, err)

	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", token, booking.CreateBookingRequest{
		CourtID: s.court.ID, Date: date, StartTime: "10:00", EndTime: "12:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, "create booking failed: %v", resp.Error)
	var created booking.BookingResponse
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, 100000.0, created.TotalPrice) // two off-peak hours

	// Staff routes reject customers.
	w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/check-in", created.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Cancel a week out, well before the buffer.
	w, resp = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/cancel", created.ID), token,
		booking.CancelBookingRequest{Reason: "rain check"})
	require.Equal(t, http.StatusOK, w.Code, "cancel failed: %v", resp.Error)
	var cancelled booking.BookingResponse
	require.NoError(t, json.Unmarshal(resp.Data, &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)

	// The range is bookable again.
	day := s.availabilityFor(t, date)
	assert.True(t, slotAt(day, "10:00").IsAvailable)
	assert.True(t, slotAt(day, "11:00").IsAvailable)

	w, _ = s.request(t, http.MethodPost, "/api/v1/bookings", token, booking.CreateBookingRequest{
		CourtID: s.court.ID, Date: date, StartTime: "10:00", EndTime: "12:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUnauthenticatedBookingRejected(t *testing.T) {
	s := setupSuite(t)
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", "", booking.CreateBookingRequest{
		CourtID: s.court.ID, Date: date, StartTime: "17:00", EndTime: "18:00",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}
