package models

import (
	"time"

	"gorm.io/gorm"

	"stayhub/errors"
)

// Voucher là mã giảm giá dạng stored-value, redeem được nhiều lần
// cho tới khi hết số dư
type Voucher struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Code            string    `json:"code" gorm:"unique;size:20"`
	Amount          float64   `json:"amount"`          // Giá trị gốc
	RemainingAmount float64   `json:"remainingAmount"` // Số dư, chỉ giảm dần
	CreatedByID     uint      `json:"createdById"`
	Active          bool      `json:"active" gorm:"default:true"` // Tự tắt khi số dư về 0
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Redemptions []VoucherRedemption `json:"redemptions,omitempty" gorm:"foreignKey:VoucherID;constraint:OnDelete:CASCADE"`
}

func (Voucher) TableName() string { return "vouchers" }

// Redeem trừ amount khỏi số dư và ghi một dòng audit bất biến.
// Caller phải giữ row lock trên voucher trong cùng transaction.
func (v *Voucher) Redeem(tx *gorm.DB, amount float64, reservationID *uint) error {
	if amount <= 0 {
		return errors.WrapAppError(errors.ErrCodeInvalidRedemption,
			"Redemption amount must be positive", 400, errors.ErrRedemptionTooLarge)
	}
	if amount > v.RemainingAmount {
		return errors.WrapAppError(errors.ErrCodeInvalidRedemption,
			"Redemption exceeds remaining amount", 400, errors.ErrRedemptionTooLarge)
	}

	v.RemainingAmount = round2(v.RemainingAmount - amount)
	if v.RemainingAmount == 0 {
		v.Active = false
	}
	if err := tx.Model(v).Updates(map[string]interface{}{
		"remaining_amount": v.RemainingAmount,
		"active":           v.Active,
	}).Error; err != nil {
		return err
	}

	redemption := VoucherRedemption{
		VoucherID:     v.ID,
		ReservationID: reservationID,
		Amount:        amount,
	}
	return tx.Create(&redemption).Error
}

// VoucherRedemption là audit trail bất biến của mỗi lần redeem.
// ReservationID để SET NULL khi xoá reservation nhằm giữ lại lịch sử.
type VoucherRedemption struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	VoucherID     uint         `json:"voucherId" gorm:"index"`
	ReservationID *uint        `json:"reservationId" gorm:"index"`
	Reservation   *Reservation `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Amount        float64      `json:"amount"`
	RedeemedAt    time.Time    `gorm:"autoCreateTime" json:"redeemedAt"`
}

func (VoucherRedemption) TableName() string { return "voucher_redemptions" }

// DiscountCoupon là mã giảm giá phần trăm, không tiêu hao, dùng lại được
type DiscountCoupon struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Code            string    `json:"code" gorm:"unique;size:20"`
	Name            string    `json:"name" gorm:"size:50"`
	DiscountPercent float64   `json:"discountPercent"`
	CreatedByID     uint      `json:"createdById"`
	Active          bool      `json:"active" gorm:"default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (DiscountCoupon) TableName() string { return "discount_coupons" }
