package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
)

// lockForUpdate thêm row lock khi dialect hỗ trợ SELECT FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// ReservationService là core giao dịch đặt phòng: check tồn kho, trừ
// tồn kho, tạo reservation + room line, áp mã giảm giá và gọi gateway.
// Toàn bộ batch là một transaction all-or-nothing.
type ReservationService struct {
	DB       *gorm.DB
	Sync     *SyncService
	Store    *AvailabilityStore
	Discount *DiscountService
	Gateway  PaymentGateway
	Log      logger.Logger
}

func NewReservationService(db *gorm.DB, sync *SyncService, store *AvailabilityStore, discount *DiscountService, gateway PaymentGateway, log logger.Logger) *ReservationService {
	return &ReservationService{DB: db, Sync: sync, Store: store, Discount: discount, Gateway: gateway, Log: log}
}

type parsedItem struct {
	req      dto.ReservationItemRequest
	property models.Property
	roomType models.RoomType
	checkIn  time.Time
	checkOut time.Time
}

// CreateBatch tạo một batch reservation trong một transaction duy nhất.
// Refresh PMS chạy trước khi vào transaction để không giữ row lock
// trong lúc chờ network vendor.
func (s *ReservationService) CreateBatch(ctx context.Context, req dto.CreateReservationBatchRequest, userID *uint) (*dto.CreateReservationBatchResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField,
			"Reservation batch is empty", http.StatusBadRequest)
	}

	items, err := s.resolveItems(req.Items)
	if err != nil {
		return nil, err
	}

	// Best-effort refresh tồn kho từ PMS, lỗi vendor không chặn đặt phòng
	for i := range items {
		item := &items[i]
		if item.property.HasPMS() {
			s.Sync.SyncRatesAndAvailability(ctx, &item.property, &item.checkIn, &item.checkOut)
		}
	}

	orderID := GenerateNumericOrder()
	var reservations []*models.Reservation
	var payment *dto.PaymentRedirect
	payableAmount := 0.0

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		voucher, coupon, err := s.Discount.ResolveCode(tx, req.DiscountCode)
		if err != nil {
			return err
		}

		for i := range items {
			reservation, err := s.createItem(tx, &items[i], orderID, userID)
			if err != nil {
				return err
			}
			reservations = append(reservations, reservation)
		}

		if coupon != nil {
			if err := s.Discount.ApplyCouponToBatch(tx, coupon, reservations); err != nil {
				return err
			}
		}
		if voucher != nil {
			if _, err := s.Discount.ApplyVoucherToBatch(tx, voucher, reservations); err != nil {
				return err
			}
		}

		// Chia payable vs đã thanh toán đủ (voucher phủ hết giá)
		for _, r := range reservations {
			if r.TotalPrice > 0 {
				payableAmount += r.TotalPrice
			}
		}
		payableAmount = math.Round(payableAmount*100) / 100
		if payableAmount == 0 {
			return nil
		}

		for _, r := range reservations {
			if r.TotalPrice <= 0 {
				continue
			}
			if err := tx.Model(r).Update("payment_amount", int(r.TotalPrice*100+0.5)).Error; err != nil {
				return err
			}
		}
		payment, err = s.Gateway.PrepareGroupPayment(reservations, payableAmount, orderID,
			fmt.Sprintf("Reservation batch %s", orderID))
		if err != nil {
			return errors.WrapAppError(errors.ErrCodePaymentFailed,
				"Could not prepare payment request", http.StatusBadGateway, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := &dto.CreateReservationBatchResponse{
		PayableAmount: payableAmount,
		PaymentOrder:  orderID,
		Payment:       payment,
	}
	for _, r := range reservations {
		response.Reservations = append(response.Reservations, toSummary(r))
	}
	return response, nil
}

// resolveItems parse ngày và load property/room type cho từng item
// trước khi vào transaction
func (s *ReservationService) resolveItems(requests []dto.ReservationItemRequest) ([]parsedItem, error) {
	var items []parsedItem
	for _, req := range requests {
		checkIn, err := time.Parse("2006-01-02", req.CheckIn)
		if err != nil {
			return nil, errors.WrapAppError(errors.ErrCodeInvalidDates,
				fmt.Sprintf("Invalid check-in date %q", req.CheckIn), http.StatusBadRequest, err)
		}
		checkOut, err := time.Parse("2006-01-02", req.CheckOut)
		if err != nil {
			return nil, errors.WrapAppError(errors.ErrCodeInvalidDates,
				fmt.Sprintf("Invalid check-out date %q", req.CheckOut), http.StatusBadRequest, err)
		}
		if !checkIn.Before(checkOut) {
			return nil, errors.WrapAppError(errors.ErrCodeInvalidDates,
				"Check-in date must be before check-out date", http.StatusBadRequest, errors.ErrInvalidDates)
		}

		var property models.Property
		if err := s.DB.Preload("PMS").Preload("PmsData").First(&property, req.PropertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.NewAppError(errors.ErrCodePropertyNotFound,
					"Property not found", http.StatusNotFound)
			}
			return nil, err
		}
		var roomType models.RoomType
		if err := s.DB.First(&roomType, req.RoomTypeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.NewAppError(errors.ErrCodeRoomTypeNotFound,
					"Room type not found", http.StatusNotFound)
			}
			return nil, err
		}

		items = append(items, parsedItem{
			req:      req,
			property: property,
			roomType: roomType,
			checkIn:  checkIn,
			checkOut: checkOut,
		})
	}
	return items, nil
}

// createItem xử lý một item: hai lượt trên cùng các row đã lock, lượt
// check xác nhận đủ tồn kho cho mọi đêm trước rồi lượt trừ mới chạy,
// nên không bao giờ trừ dở dang rồi mới phát hiện thiếu
func (s *ReservationService) createItem(tx *gorm.DB, item *parsedItem, orderID string, userID *uint) (*models.Reservation, error) {
	dates := DatesInRange(item.checkIn, item.checkOut)

	// Lượt 1: lock theo thứ tự ngày tăng dần để tránh deadlock giữa
	// các batch chạm khoảng ngày chồng nhau
	lockedIDs := make([]uint, 0, len(dates))
	for _, date := range dates {
		var cell models.Availability
		err := lockForUpdate(tx).
			Where("property_id = ? AND room_type_id = ? AND date = ?",
				item.property.ID, item.roomType.ID, date).
			First(&cell).Error
		if err == gorm.ErrRecordNotFound || (err == nil && cell.Availability < 1) {
			return nil, errors.WrapAppError(errors.ErrCodeNoAvailability,
				fmt.Sprintf("No availability on %s", date.Format("2006-01-02")),
				http.StatusBadRequest, errors.ErrNoAvailability)
		}
		if err != nil {
			return nil, err
		}
		lockedIDs = append(lockedIDs, cell.ID)
	}

	// Lượt 2: trừ tồn kho trên chính các row đã lock
	for _, id := range lockedIDs {
		if err := tx.Model(&models.Availability{}).Where("id = ?", id).
			UpdateColumn("availability", gorm.Expr("availability - ?", 1)).Error; err != nil {
			return nil, err
		}
	}

	guests := item.req.Guests
	if guests < 1 {
		guests = 1
	}
	reservation := models.Reservation{
		PropertyID:    &item.property.ID,
		UserID:        userID,
		Status:        constants.ReservationStatusPending,
		CheckIn:       item.checkIn,
		CheckOut:      item.checkOut,
		PaxCount:      guests,
		Currency:      constants.DefaultCurrency,
		TotalPrice:    item.req.Price,
		PaymentOrder:  orderID,
		PaymentStatus: constants.PaymentStatusPending,
		GuestName:     item.req.GuestName,
		GuestEmail:    item.req.GuestEmail,
		GuestPhone:    item.req.GuestPhone,
		GuestAddress:  item.req.GuestAddress,
		GuestCity:     item.req.GuestCity,
		GuestCountry:  item.req.GuestCountry,
		GuestRemarks:  item.req.GuestRemarks,
	}
	if err := tx.Create(&reservation).Error; err != nil {
		return nil, err
	}

	line := models.ReservationRoom{
		ReservationID: reservation.ID,
		RoomTypeID:    &item.roomType.ID,
		Price:         item.req.Price,
		Guests:        guests,
		RateID:        item.req.RateID,
	}
	if err := tx.Create(&line).Error; err != nil {
		return nil, err
	}
	reservation.Rooms = []models.ReservationRoom{line}
	return &reservation, nil
}

// Cancel chuyển reservation sang pending_refund theo guard của model
func (s *ReservationService) Cancel(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound,
				"Reservation not found", http.StatusNotFound)
		}
		return nil, err
	}
	if err := reservation.Cancel(s.DB); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// MarkRefunded đánh dấu một reservation pending_refund là đã hoàn tiền
func (s *ReservationService) MarkRefunded(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound,
				"Reservation not found", http.StatusNotFound)
		}
		return nil, err
	}
	if err := reservation.MarkRefunded(s.DB); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func toSummary(r *models.Reservation) dto.ReservationSummary {
	return dto.ReservationSummary{
		ID:             r.ID,
		PropertyID:     r.PropertyID,
		Status:         r.Status,
		CheckIn:        r.CheckIn.Format("2006-01-02"),
		CheckOut:       r.CheckOut.Format("2006-01-02"),
		TotalPrice:     r.TotalPrice,
		OriginalPrice:  r.OriginalPrice,
		DiscountAmount: r.DiscountAmount,
		PaymentOrder:   r.PaymentOrder,
		PaymentStatus:  r.PaymentStatus,
	}
}
