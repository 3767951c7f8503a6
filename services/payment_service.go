package services

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stayhub/constants"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
)

// PaymentService đối soát notification từ gateway: ghi audit log cho
// mọi callback, verify chữ ký rồi chuyển batch reservation sang confirmed
type PaymentService struct {
	DB      *gorm.DB
	Gateway PaymentGateway
	Email   EmailSender
	Log     logger.Logger
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway, email EmailSender, log logger.Logger) *PaymentService {
	return &PaymentService{DB: db, Gateway: gateway, Email: email, Log: log}
}

// HandleNotification xử lý một callback từ gateway. Log audit luôn được
// ghi trước, kể cả với input hỏng; chữ ký sai thì từ chối không đổi
// state; notification trùng (order đã confirmed) là no-op an toàn.
func (s *PaymentService) HandleNotification(merchantParameters, signature string) (string, error) {
	auditLog := models.PaymentNotificationLog{
		RawParameters: merchantParameters,
		Signature:     signature,
	}

	payload, orderID, err := s.Gateway.ProcessNotification(merchantParameters, signature)
	auditLog.OrderID = orderID
	if err != nil {
		auditLog.IsValid = false
		auditLog.Message = err.Error()
		s.appendAuditLog(&auditLog)
		return orderID, err
	}
	outcome, err := notificationOutcome(payload)
	if err != nil {
		auditLog.IsValid = false
		auditLog.Message = err.Error()
		s.appendAuditLog(&auditLog)
		return orderID, err
	}
	auditLog.IsValid = true
	auditLog.Message = "ok"
	s.appendAuditLog(&auditLog)

	var reservations []models.Reservation
	if err := s.DB.Preload("Property").Where("payment_order = ?", orderID).Find(&reservations).Error; err != nil {
		return orderID, err
	}
	if len(reservations) == 0 {
		return orderID, errors.WrapAppError(errors.ErrCodeNotFound,
			"No reservations found for payment order", http.StatusNotFound, errors.ErrOrderNotFound)
	}

	rawResponse, err := json.Marshal(payload)
	if err != nil {
		rawResponse = []byte("{}")
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range reservations {
			r := &reservations[i]
			switch outcome {
			case outcomeRefund:
				// Chỉ reservation đang chờ hoàn tiền mới chuyển sang refunded
				result := tx.Model(&models.Reservation{}).
					Where("id = ? AND status = ?", r.ID, constants.ReservationStatusPendingRefund).
					Updates(map[string]interface{}{
						"payment_response": datatypes.JSON(rawResponse),
						"status":           constants.ReservationStatusRefunded,
					})
				if result.Error != nil {
					return result.Error
				}
			case outcomeFailed:
				result := tx.Model(&models.Reservation{}).
					Where("id = ? AND payment_status <> ?", r.ID, constants.PaymentStatusPaid).
					Updates(map[string]interface{}{
						"payment_response": datatypes.JSON(rawResponse),
						"payment_status":   constants.PaymentStatusFailed,
					})
				if result.Error != nil {
					return result.Error
				}
			default:
				// Guard idempotent: notification gửi lại không đổi state
				// và không gửi lại email
				if r.PaymentStatus == constants.PaymentStatusPaid && r.Status == constants.ReservationStatusConfirmed {
					continue
				}
				result := tx.Model(&models.Reservation{}).
					Where("id = ? AND payment_status <> ?", r.ID, constants.PaymentStatusPaid).
					Updates(map[string]interface{}{
						"payment_response": datatypes.JSON(rawResponse),
						"payment_date":     now,
						"payment_status":   constants.PaymentStatusPaid,
						"status":           constants.ReservationStatusConfirmed,
					})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					continue // Reconciler khác đã xử lý trước
				}
				r.Status = constants.ReservationStatusConfirmed
				r.PaymentStatus = constants.PaymentStatusPaid
				s.notifyConfirmed(r)
			}
		}
		return nil
	})
	return orderID, err
}

const (
	outcomePaid   = "paid"
	outcomeRefund = "refund"
	outcomeFailed = "failed"
)

// notificationOutcome phân loại Ds_Response: 0..99 là thanh toán được
// authorize, 900 là xác nhận hoàn tiền, còn lại (9915 user huỷ, lỗi
// thẻ...) là thất bại. Notification thiếu field hoặc không parse được
// bị từ chối, không đổi state.
func notificationOutcome(payload map[string]interface{}) (string, error) {
	raw, _ := payload["Ds_Response"].(string)
	if raw == "" {
		raw, _ = payload["DS_RESPONSE"].(string)
	}
	if raw == "" {
		return "", errors.WrapAppError(errors.ErrCodePaymentFailed,
			"Notification carries no response code", http.StatusBadRequest, errors.ErrInvalidNotification)
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		return "", errors.WrapAppError(errors.ErrCodePaymentFailed,
			"Notification response code is not numeric", http.StatusBadRequest, errors.ErrInvalidNotification)
	}
	switch {
	case code >= 0 && code <= 99:
		return outcomePaid, nil
	case code == 900:
		return outcomeRefund, nil
	default:
		return outcomeFailed, nil
	}
}

func (s *PaymentService) appendAuditLog(entry *models.PaymentNotificationLog) {
	if err := s.DB.Create(entry).Error; err != nil {
		s.Log.Error("Ghi payment notification log: %v", err)
	}
}

// notifyConfirmed gửi email best-effort, lỗi gửi không chặn transaction
func (s *PaymentService) notifyConfirmed(r *models.Reservation) {
	if s.Email == nil || r.GuestEmail == "" {
		return
	}
	if err := s.Email.SendReservationConfirmed(r.GuestEmail, r.GuestName, r.PaymentOrder); err != nil {
		s.Log.Error("Gửi email xác nhận reservation %d: %v", r.ID, err)
	}
}
