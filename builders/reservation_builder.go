package builders

import (
	"time"

	"stayhub/models"
	"stayhub/pms"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới của ReservationBuilder
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{},
	}
}

// WithProperty thêm property
func (b *ReservationBuilder) WithProperty(propertyID uint) *ReservationBuilder {
	b.reservation.PropertyID = &propertyID
	return b
}

// WithUser thêm thông tin user
func (b *ReservationBuilder) WithUser(userID *uint) *ReservationBuilder {
	b.reservation.UserID = userID
	return b
}

// WithStatus thêm trạng thái
func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

// WithStay thêm khoảng lưu trú và số khách
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time, paxCount int) *ReservationBuilder {
	b.reservation.CheckIn = checkIn
	b.reservation.CheckOut = checkOut
	if paxCount < 1 {
		paxCount = 1
	}
	b.reservation.PaxCount = paxCount
	return b
}

// WithPricing thêm các thành phần giá
func (b *ReservationBuilder) WithPricing(totalPrice, paidOnline, payOnArrival float64) *ReservationBuilder {
	b.reservation.TotalPrice = totalPrice
	b.reservation.PaidOnline = paidOnline
	b.reservation.PayOnArrival = payOnArrival
	return b
}

// WithChannel thêm kênh bán
func (b *ReservationBuilder) WithChannel(channel string) *ReservationBuilder {
	b.reservation.Channel = channel
	return b
}

// WithGuestContact copy toàn bộ thông tin liên hệ từ booking vendor
func (b *ReservationBuilder) WithGuestContact(booking *pms.BookingData) *ReservationBuilder {
	b.reservation.GuestName = booking.GuestName
	b.reservation.GuestCorporate = booking.GuestCorporate
	b.reservation.GuestEmail = booking.GuestEmail
	b.reservation.GuestPhone = booking.GuestPhone
	b.reservation.GuestAddress = booking.GuestAddress
	b.reservation.GuestCity = booking.GuestCity
	b.reservation.GuestRegion = booking.GuestRegion
	b.reservation.GuestCountry = booking.GuestCountry
	b.reservation.GuestCountryISO = booking.GuestCountryISO
	b.reservation.GuestCP = booking.GuestCP
	b.reservation.GuestRemarks = booking.GuestRemarks
	return b
}

// WithVendorDates thêm ngày huỷ/sửa phía vendor
func (b *ReservationBuilder) WithVendorDates(cancellation, modification *time.Time) *ReservationBuilder {
	b.reservation.CancellationDate = cancellation
	b.reservation.ModificationDate = modification
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
