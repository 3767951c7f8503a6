package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stayhub/constants"
	"stayhub/errors"
)

type Reservation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID *uint     `json:"propertyId" gorm:"index"`
	Property   *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	UserID     *uint     `json:"userId" gorm:"index"`
	Status     string    `json:"status" gorm:"default:pending"`

	// Thông tin liên hệ của khách
	GuestCorporate  string `json:"guestCorporate,omitempty"`
	GuestName       string `json:"guestName,omitempty"`
	GuestEmail      string `json:"guestEmail,omitempty"`
	GuestPhone      string `json:"guestPhone,omitempty"`
	GuestAddress    string `json:"guestAddress,omitempty"`
	GuestCity       string `json:"guestCity,omitempty"`
	GuestRegion     string `json:"guestRegion,omitempty"`
	GuestCountry    string `json:"guestCountry,omitempty"`
	GuestCountryISO string `json:"guestCountryIso,omitempty" gorm:"default:US"`
	GuestCP         string `json:"guestCp,omitempty"`
	GuestRemarks    string `json:"guestRemarks,omitempty"`

	Channel   string `json:"channel,omitempty"`
	ChannelID *uint  `json:"channelId,omitempty"`

	CheckIn  time.Time `json:"checkIn" gorm:"type:date"`
	CheckOut time.Time `json:"checkOut" gorm:"type:date"`
	PaxCount int       `json:"paxCount" gorm:"default:1"`
	Currency string    `json:"currency" gorm:"default:EUR"`

	TotalPrice   float64 `json:"totalPrice"`
	PaidOnline   float64 `json:"paidOnline"`
	PayOnArrival float64 `json:"payOnArrival"`

	// Snapshot giá trước giảm, chỉ set một lần; DiscountAmount cộng dồn
	OriginalPrice    *float64        `json:"originalPrice,omitempty"`
	DiscountAmount   float64         `json:"discountAmount"`
	DiscountCouponID *uint           `json:"discountCouponId,omitempty"`
	DiscountCoupon   *DiscountCoupon `json:"discountCoupon,omitempty" gorm:"foreignKey:DiscountCouponID"`

	// Thanh toán qua gateway: một payment_order chia sẻ cho cả batch
	PaymentOrder     string         `json:"paymentOrder,omitempty" gorm:"size:12;index"`
	PaymentAmount    int            `json:"paymentAmount,omitempty"` // Tính bằng cent
	PaymentSignature string         `json:"-" gorm:"size:256"`
	PaymentResponse  datatypes.JSON `json:"paymentResponse,omitempty"`
	PaymentStatus    string         `json:"paymentStatus" gorm:"default:pending"`
	PaymentDate      *time.Time     `json:"paymentDate,omitempty"`

	CancellationDate *time.Time `json:"cancellationDate,omitempty"`
	ModificationDate *time.Time `json:"modificationDate,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Rooms []ReservationRoom `json:"rooms,omitempty" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
}

func (Reservation) TableName() string { return "reservations" }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// snapshotOriginalPrice giữ giá trước giảm, chỉ lần áp mã đầu tiên
func (r *Reservation) snapshotOriginalPrice() {
	if r.OriginalPrice == nil {
		original := r.TotalPrice
		r.OriginalPrice = &original
	}
}

// ApplyCoupon áp coupon phần trăm lên giá hiện tại của reservation
func (r *Reservation) ApplyCoupon(tx *gorm.DB, coupon *DiscountCoupon) error {
	r.snapshotOriginalPrice()

	discount := round2(r.TotalPrice * coupon.DiscountPercent / 100)
	r.TotalPrice = round2(r.TotalPrice - discount)
	r.DiscountAmount = round2(r.DiscountAmount + discount)
	r.DiscountCouponID = &coupon.ID
	r.DiscountCoupon = coupon

	return tx.Model(r).Updates(map[string]interface{}{
		"total_price":        r.TotalPrice,
		"original_price":     r.OriginalPrice,
		"discount_amount":    r.DiscountAmount,
		"discount_coupon_id": r.DiscountCouponID,
	}).Error
}

// ApplyVoucher trừ amount vào giá reservation và redeem voucher tương ứng.
// Reservation về đúng 0 được auto-confirm và đánh dấu đã thanh toán.
func (r *Reservation) ApplyVoucher(tx *gorm.DB, voucher *Voucher, amount float64) error {
	r.snapshotOriginalPrice()

	if err := voucher.Redeem(tx, amount, &r.ID); err != nil {
		return err
	}

	r.TotalPrice = round2(r.TotalPrice - amount)
	r.DiscountAmount = round2(r.DiscountAmount + amount)

	updates := map[string]interface{}{
		"total_price":     r.TotalPrice,
		"original_price":  r.OriginalPrice,
		"discount_amount": r.DiscountAmount,
	}
	if r.TotalPrice == 0 {
		now := time.Now()
		r.Status = constants.ReservationStatusConfirmed
		r.PaymentStatus = constants.PaymentStatusPaid
		r.PaymentDate = &now
		updates["status"] = r.Status
		updates["payment_status"] = r.PaymentStatus
		updates["payment_date"] = r.PaymentDate
	}

	return tx.Model(r).Updates(updates).Error
}

// IsTerminal cho biết reservation đã ở trạng thái kết thúc
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case constants.ReservationStatusCancelled,
		constants.ReservationStatusRefunded,
		constants.ReservationStatusPendingRefund:
		return true
	}
	return false
}

// Cancel chuyển reservation sang pending_refund. Bị chặn khi đã ở trạng
// thái kết thúc hoặc khách đã nhận phòng (status ok / check-in đã qua).
func (r *Reservation) Cancel(tx *gorm.DB) error {
	if r.IsTerminal() {
		return errors.WrapAppError(errors.ErrCodeCancelNotAllowed,
			"Reservation already cancelled or refunded", 400, errors.ErrCancelNotAllowed)
	}
	if r.Status == constants.ReservationStatusOk {
		return errors.WrapAppError(errors.ErrCodeCancelNotAllowed,
			"Reservation already checked in", 400, errors.ErrCancelNotAllowed)
	}
	today := time.Now().Truncate(24 * time.Hour)
	if !r.CheckIn.IsZero() && r.CheckIn.Before(today) {
		return errors.WrapAppError(errors.ErrCodeCancelNotAllowed,
			"Stay has already started", 400, errors.ErrCancelNotAllowed)
	}

	now := time.Now()
	r.Status = constants.ReservationStatusPendingRefund
	r.CancellationDate = &now
	return tx.Model(r).Updates(map[string]interface{}{
		"status":            r.Status,
		"cancellation_date": r.CancellationDate,
	}).Error
}

// MarkRefunded yêu cầu trạng thái pending_refund trước đó
func (r *Reservation) MarkRefunded(tx *gorm.DB) error {
	if r.Status != constants.ReservationStatusPendingRefund {
		return errors.WrapAppError(errors.ErrCodeRefundNotAllowed,
			"Reservation is not pending refund", 400, errors.ErrRefundNotAllowed)
	}
	r.Status = constants.ReservationStatusRefunded
	return tx.Model(r).Update("status", r.Status).Error
}
