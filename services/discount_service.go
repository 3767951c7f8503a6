package services

import (
	"math"
	"net/http"

	"gorm.io/gorm"

	"stayhub/errors"
	"stayhub/models"
)

// DiscountService resolve và áp mã giảm giá: voucher (stored-value,
// tiêu hao dần) được thử trước, sau đó mới tới coupon (phần trăm)
type DiscountService struct {
	DB *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{DB: db}
}

// ResolveCode tìm mã trong transaction tx: tối đa một trong hai loại.
// Voucher được lock row ngay khi tìm thấy để chặn redeem song song.
func (s *DiscountService) ResolveCode(tx *gorm.DB, code string) (*models.Voucher, *models.DiscountCoupon, error) {
	if code == "" {
		return nil, nil, nil
	}

	var voucher models.Voucher
	err := lockForUpdate(tx).Where("code = ? AND active = ?", code, true).First(&voucher).Error
	if err == nil {
		return &voucher, nil, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	var coupon models.DiscountCoupon
	err = tx.Where("code = ? AND active = ?", code, true).First(&coupon).Error
	if err == nil {
		return nil, &coupon, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	return nil, nil, errors.WrapAppError(errors.ErrCodeCodeNotFound,
		"Discount code not found", http.StatusNotFound, errors.ErrCodeInvalid)
}

// ApplyCouponToBatch áp coupon độc lập và đầy đủ lên từng reservation
func (s *DiscountService) ApplyCouponToBatch(tx *gorm.DB, coupon *models.DiscountCoupon, reservations []*models.Reservation) error {
	for _, r := range reservations {
		if err := r.ApplyCoupon(tx, coupon); err != nil {
			return err
		}
	}
	return nil
}

// ApplyVoucherToBatch redeem min(số dư, tổng batch) và chia theo tỷ lệ
// giá từng reservation. Reservation cuối hấp thụ phần dư làm tròn,
// nhưng mỗi share (kể cả share cuối) không bao giờ vượt quá giá hiện
// tại của reservation nên TotalPrice không thể âm; phần không phân bổ
// được giữ lại trên voucher. Trả về tổng tiền đã redeem thực tế.
func (s *DiscountService) ApplyVoucherToBatch(tx *gorm.DB, voucher *models.Voucher, reservations []*models.Reservation) (float64, error) {
	batchTotal := 0.0
	for _, r := range reservations {
		batchTotal += r.TotalPrice
	}
	if batchTotal <= 0 {
		return 0, nil
	}

	// Floor về cent để không bao giờ redeem quá số dư voucher
	redemption := math.Floor(math.Min(voucher.RemainingAmount, batchTotal)*100) / 100
	if redemption <= 0 {
		return 0, errors.WrapAppError(errors.ErrCodeVoucherExhausted,
			"Voucher has no remaining amount", http.StatusBadRequest, errors.ErrVoucherExhausted)
	}

	allocated := 0.0
	for i, r := range reservations {
		remaining := math.Round((redemption-allocated)*100) / 100
		if remaining <= 0 {
			break
		}
		var share float64
		if i == len(reservations)-1 {
			share = remaining
		} else {
			share = math.Round(redemption*r.TotalPrice/batchTotal*100) / 100
		}
		share = math.Min(share, r.TotalPrice)
		share = math.Min(share, remaining)
		if share <= 0 {
			continue
		}
		if err := r.ApplyVoucher(tx, voucher, share); err != nil {
			return 0, err
		}
		allocated = math.Round((allocated+share)*100) / 100
	}
	return allocated, nil
}
