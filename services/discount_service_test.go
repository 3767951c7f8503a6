package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stayhub/constants"
	"stayhub/models"
)

func seedPennyReservations(t *testing.T, service *DiscountService, count int, price float64) []*models.Reservation {
	t.Helper()
	reservations := make([]*models.Reservation, 0, count)
	for i := 0; i < count; i++ {
		r := &models.Reservation{
			Status:        constants.ReservationStatusPending,
			PaymentStatus: constants.PaymentStatusPending,
			TotalPrice:    price,
		}
		require.NoError(t, service.DB.Create(r).Error)
		reservations = append(reservations, r)
	}
	return reservations
}

// Phần dư làm tròn dồn về reservation cuối không bao giờ được vượt giá
// của chính nó: giá còn lại luôn >= 0 và voucher giữ phần không phân
// bổ được
func TestApplyVoucherToBatchShareNeverExceedsPrice(t *testing.T) {
	db := setupTestDB(t)
	service := NewDiscountService(db)

	voucher := models.Voucher{Code: "VPENNY", Amount: 1, RemainingAmount: 0.29, Active: true}
	require.NoError(t, db.Create(&voucher).Error)
	reservations := seedPennyReservations(t, service, 20, 0.03)

	allocated, err := service.ApplyVoucherToBatch(db, &voucher, reservations)
	require.NoError(t, err)

	discounted := 0.0
	for _, r := range reservations {
		require.GreaterOrEqual(t, r.TotalPrice, 0.0)
		discounted += 0.03 - r.TotalPrice
	}
	// Bảo toàn: tổng giảm trên batch đúng bằng số tiền đã redeem
	require.InDelta(t, allocated, discounted, 1e-9)
	require.InDelta(t, 0.29-allocated, voucher.RemainingAmount, 1e-9)
	require.GreaterOrEqual(t, voucher.RemainingAmount, 0.0)

	var redemptions []models.VoucherRedemption
	require.NoError(t, db.Find(&redemptions).Error)
	redeemed := 0.0
	for _, row := range redemptions {
		redeemed += row.Amount
	}
	require.InDelta(t, allocated, redeemed, 1e-9)
}

// Voucher dư sức phủ cả batch: từng reservation về 0, không âm, phần
// còn lại nằm nguyên trên voucher
func TestApplyVoucherToBatchCapsAtBatchTotal(t *testing.T) {
	db := setupTestDB(t)
	service := NewDiscountService(db)

	voucher := models.Voucher{Code: "VWIDE", Amount: 500, RemainingAmount: 500, Active: true}
	require.NoError(t, db.Create(&voucher).Error)
	reservations := seedPennyReservations(t, service, 3, 10)

	allocated, err := service.ApplyVoucherToBatch(db, &voucher, reservations)
	require.NoError(t, err)
	require.InDelta(t, 30, allocated, 1e-9)
	for _, r := range reservations {
		require.InDelta(t, 0, r.TotalPrice, 1e-9)
		require.Equal(t, constants.ReservationStatusConfirmed, r.Status)
	}
	require.InDelta(t, 470, voucher.RemainingAmount, 1e-9)
}
