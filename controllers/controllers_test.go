package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stayhub/models"
	"stayhub/pms"
	"stayhub/services"
	"stayhub/services/logger"
)

func setupControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.PMS{}, &models.Property{}, &models.PmsDataProperty{},
		&models.RoomType{}, &models.Availability{},
		&models.Reservation{}, &models.ReservationRoom{},
		&models.Voucher{}, &models.VoucherRedemption{}, &models.DiscountCoupon{},
	))
	return db
}

// setupQuoteRouter dựng router tối thiểu cho endpoint báo giá và
// validate mã, không dùng Redis trong test
func setupQuoteRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewDefaultLogger(logger.ErrorLevel)
	store := services.NewAvailabilityStore(db)
	syncService := services.NewSyncService(db, pms.NewFactory(), store, log)
	pricingService := services.NewPricingService(db, syncService, store, log)

	propertyController := NewPropertyController(db, nil, pricingService, syncService, log)
	voucherController := NewVoucherController(db)

	r := gin.New()
	r.GET("/api/v1/properties/availability", propertyController.GetAvailability)
	r.GET("/api/v1/vouchers/validate/:code", voucherController.ValidateCode)
	return r
}

func TestGetAvailabilityEndpoint(t *testing.T) {
	db := setupControllerDB(t)
	router := setupQuoteRouter(t, db)

	property := models.Property{OwnerID: 1, Name: "Hotel Centro", Active: true}
	require.NoError(t, db.Create(&property).Error)
	roomType := models.RoomType{PropertyID: &property.ID, ExternalID: "DLX", Name: "Deluxe"}
	require.NoError(t, db.Create(&roomType).Error)

	rates, err := models.SerializeRates([]models.RatePlan{
		{RateID: 1, Prices: []models.OccupancyPrice{{Occupancy: 2, Price: 100}}},
	})
	require.NoError(t, err)
	for _, day := range []string{"2025-01-01", "2025-01-02"} {
		require.NoError(t, db.Create(&models.Availability{
			PropertyID: property.ID, RoomTypeID: roomType.ID,
			Date: mustDate(t, day), Availability: 5, Rates: rates,
		}).Error)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/properties/availability?propertyId=%d&checkIn=2025-01-01&checkOut=2025-01-03&guests=2", property.ID), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Deluxe-guests:2")
	require.Contains(t, w.Body.String(), "200")
}

func TestGetAvailabilityEndpointBadDates(t *testing.T) {
	db := setupControllerDB(t)
	router := setupQuoteRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/properties/availability?checkIn=bogus&checkOut=2025-01-03", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "\"code\"")
}

func TestValidateCodeEndpoint(t *testing.T) {
	db := setupControllerDB(t)
	router := setupQuoteRouter(t, db)

	require.NoError(t, db.Create(&models.Voucher{Code: "V100", Amount: 100, RemainingAmount: 60, Active: true}).Error)
	require.NoError(t, db.Create(&models.DiscountCoupon{Code: "TEN", DiscountPercent: 10, Active: true}).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/vouchers/validate/V100", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\"voucher\"")
	require.Contains(t, w.Body.String(), "60")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/vouchers/validate/TEN", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\"coupon\"")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/vouchers/validate/NOPE", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "\"code\":300")
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
