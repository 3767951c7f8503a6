package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stayhub/dto"
	"stayhub/models"
	"stayhub/services/logger"
)

// setupTestDB mở một sqlite in-memory riêng cho từng test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.PMS{}, &models.Property{}, &models.PmsDataProperty{},
		&models.RoomType{}, &models.Room{}, &models.Availability{},
		&models.Reservation{}, &models.ReservationRoom{},
		&models.Voucher{}, &models.VoucherRedemption{}, &models.DiscountCoupon{},
		&models.PaymentNotificationLog{},
	))
	return db
}

func testLogger() logger.Logger {
	return logger.NewDefaultLogger(logger.ErrorLevel)
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

// seedProperty tạo một property active kèm room type "Deluxe"
func seedProperty(t *testing.T, db *gorm.DB) (*models.Property, *models.RoomType) {
	t.Helper()
	property := models.Property{OwnerID: 1, Name: "Hotel Centro", Active: true}
	require.NoError(t, db.Create(&property).Error)

	roomType := models.RoomType{PropertyID: &property.ID, ExternalID: "DLX", Name: "Deluxe"}
	require.NoError(t, db.Create(&roomType).Error)
	return &property, &roomType
}

// seedAvailability tạo ô lịch cho mỗi ngày trong [from, to) với một
// rate plan duy nhất giá price cho occupancy 2
func seedAvailability(t *testing.T, db *gorm.DB, property *models.Property, roomType *models.RoomType, from, to string, count int, price float64) {
	t.Helper()
	rates, err := models.SerializeRates([]models.RatePlan{
		{RateID: 1, Prices: []models.OccupancyPrice{{Occupancy: 2, Price: price}}},
	})
	require.NoError(t, err)

	for d := date(t, from); d.Before(date(t, to)); d = d.AddDate(0, 0, 1) {
		require.NoError(t, db.Create(&models.Availability{
			PropertyID:   property.ID,
			RoomTypeID:   roomType.ID,
			Date:         d,
			Availability: count,
			Rates:        rates,
		}).Error)
	}
}

// fakeGateway là PaymentGateway giả cho test, đếm số lần gọi
type fakeGateway struct {
	prepareCalls int
	prepareErr   error
	notifyErr    error
	payload      map[string]interface{}
	orderID      string
}

func (g *fakeGateway) PrepareGroupPayment(reservations []*models.Reservation, totalAmount float64, orderID, description string) (*dto.PaymentRedirect, error) {
	g.prepareCalls++
	if g.prepareErr != nil {
		return nil, g.prepareErr
	}
	return &dto.PaymentRedirect{
		Endpoint:           "https://gateway.test/pay",
		SignatureVersion:   "HMAC_SHA256_V1",
		MerchantParameters: "params",
		Signature:          "sig",
	}, nil
}

func (g *fakeGateway) ProcessNotification(merchantParameters, signature string) (map[string]interface{}, string, error) {
	if g.notifyErr != nil {
		return nil, g.orderID, g.notifyErr
	}
	return g.payload, g.orderID, nil
}

func batchItem(property *models.Property, roomType *models.RoomType, checkIn, checkOut string, price float64) dto.ReservationItemRequest {
	return dto.ReservationItemRequest{
		PropertyID: property.ID,
		RoomTypeID: roomType.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     2,
		Price:      price,
		GuestName:  "Ana Garcia",
		GuestEmail: "ana@example.com",
	}
}
