package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stayhub/constants"
	apperrors "stayhub/errors"
)

func setupModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Reservation{}, &ReservationRoom{},
		&Voucher{}, &VoucherRedemption{}, &DiscountCoupon{},
	))
	return db
}

func TestApplyCouponMath(t *testing.T) {
	db := setupModelDB(t)

	reservation := Reservation{TotalPrice: 100, Status: constants.ReservationStatusPending}
	require.NoError(t, db.Create(&reservation).Error)
	coupon := DiscountCoupon{Code: "TEN", DiscountPercent: 10, Active: true}
	require.NoError(t, db.Create(&coupon).Error)

	require.NoError(t, reservation.ApplyCoupon(db, &coupon))

	require.InDelta(t, 90, reservation.TotalPrice, 1e-9)
	require.NotNil(t, reservation.OriginalPrice)
	require.InDelta(t, 100, *reservation.OriginalPrice, 1e-9)
	require.InDelta(t, 10, reservation.DiscountAmount, 1e-9)

	var stored Reservation
	require.NoError(t, db.First(&stored, reservation.ID).Error)
	require.InDelta(t, 90, stored.TotalPrice, 1e-9)
	require.InDelta(t, 10, stored.DiscountAmount, 1e-9)
}

func TestOriginalPriceSetOnce(t *testing.T) {
	db := setupModelDB(t)

	reservation := Reservation{TotalPrice: 100, Status: constants.ReservationStatusPending}
	require.NoError(t, db.Create(&reservation).Error)
	coupon := DiscountCoupon{Code: "TEN", DiscountPercent: 10, Active: true}
	require.NoError(t, db.Create(&coupon).Error)
	voucher := Voucher{Code: "V100", Amount: 100, RemainingAmount: 100, Active: true}
	require.NoError(t, db.Create(&voucher).Error)

	require.NoError(t, reservation.ApplyCoupon(db, &coupon))
	require.NoError(t, reservation.ApplyVoucher(db, &voucher, 10))

	// Snapshot giữ giá trước mã đầu tiên, mã thứ hai không ghi đè
	require.NotNil(t, reservation.OriginalPrice)
	require.InDelta(t, 100, *reservation.OriginalPrice, 1e-9)
	require.InDelta(t, 80, reservation.TotalPrice, 1e-9)
	require.InDelta(t, 20, reservation.DiscountAmount, 1e-9)
}

func TestApplyVoucherFullPayoffConfirms(t *testing.T) {
	db := setupModelDB(t)

	reservation := Reservation{TotalPrice: 50, Status: constants.ReservationStatusPending, PaymentStatus: constants.PaymentStatusPending}
	require.NoError(t, db.Create(&reservation).Error)
	voucher := Voucher{Code: "V50", Amount: 50, RemainingAmount: 50, Active: true}
	require.NoError(t, db.Create(&voucher).Error)

	require.NoError(t, reservation.ApplyVoucher(db, &voucher, 50))

	require.InDelta(t, 0, reservation.TotalPrice, 1e-9)
	require.Equal(t, constants.ReservationStatusConfirmed, reservation.Status)
	require.Equal(t, constants.PaymentStatusPaid, reservation.PaymentStatus)
	require.NotNil(t, reservation.PaymentDate)
}

func TestCancelGuards(t *testing.T) {
	db := setupModelDB(t)

	// Khách đã nhận phòng thì không huỷ được
	checkedIn := Reservation{
		Status:  constants.ReservationStatusOk,
		CheckIn: time.Now().AddDate(0, 0, -2),
	}
	require.NoError(t, db.Create(&checkedIn).Error)
	err := checkedIn.Cancel(db)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.ErrCodeCancelNotAllowed, appErr.Code)

	// Reservation pending trong tương lai huỷ được
	future := Reservation{
		Status:  constants.ReservationStatusPending,
		CheckIn: time.Now().AddDate(0, 0, 5),
	}
	require.NoError(t, db.Create(&future).Error)
	require.NoError(t, future.Cancel(db))
	require.Equal(t, constants.ReservationStatusPendingRefund, future.Status)
	require.NotNil(t, future.CancellationDate)

	// Huỷ lần hai là lỗi, không phải no-op
	err = future.Cancel(db)
	require.Error(t, err)
}

func TestMarkRefundedRequiresPendingRefund(t *testing.T) {
	db := setupModelDB(t)

	reservation := Reservation{Status: constants.ReservationStatusPending}
	require.NoError(t, db.Create(&reservation).Error)

	err := reservation.MarkRefunded(db)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.ErrCodeRefundNotAllowed, appErr.Code)

	reservation.Status = constants.ReservationStatusPendingRefund
	require.NoError(t, db.Model(&reservation).Update("status", reservation.Status).Error)
	require.NoError(t, reservation.MarkRefunded(db))
	require.Equal(t, constants.ReservationStatusRefunded, reservation.Status)
}

func TestVoucherRedeemConservation(t *testing.T) {
	db := setupModelDB(t)

	voucher := Voucher{Code: "V100", Amount: 100, RemainingAmount: 100, Active: true}
	require.NoError(t, db.Create(&voucher).Error)

	require.NoError(t, voucher.Redeem(db, 60, nil))
	require.NoError(t, voucher.Redeem(db, 40, nil))

	require.InDelta(t, 0, voucher.RemainingAmount, 1e-9)
	require.False(t, voucher.Active)

	var redemptions []VoucherRedemption
	require.NoError(t, db.Find(&redemptions).Error)
	require.Len(t, redemptions, 2)
	sum := 0.0
	for _, r := range redemptions {
		sum += r.Amount
	}
	require.InDelta(t, voucher.Amount, sum, 1e-9)

	// Vượt số dư là lỗi
	err := voucher.Redeem(db, 1, nil)
	require.Error(t, err)
}

func TestVoucherRedeemRejectsNonPositive(t *testing.T) {
	db := setupModelDB(t)

	voucher := Voucher{Code: "V10", Amount: 10, RemainingAmount: 10, Active: true}
	require.NoError(t, db.Create(&voucher).Error)

	require.Error(t, voucher.Redeem(db, 0, nil))
	require.Error(t, voucher.Redeem(db, -5, nil))
	require.InDelta(t, 10, voucher.RemainingAmount, 1e-9)
}

func TestSerializeRatesRoundTrip(t *testing.T) {
	rates := []RatePlan{
		{RateID: 1, Prices: []OccupancyPrice{{Occupancy: 2, Price: 100}}},
		{RateID: 2, Prices: []OccupancyPrice{{Occupancy: 1, Price: 80}, {Occupancy: 2, Price: 120}}},
	}
	serialized, err := SerializeRates(rates)
	require.NoError(t, err)

	parsed, err := ParseRates(serialized)
	require.NoError(t, err)
	require.Equal(t, rates, parsed)

	// Chuỗi serialize ổn định để so sánh idempotence bằng equality
	again, err := SerializeRates(parsed)
	require.NoError(t, err)
	require.Equal(t, serialized, again)
}
