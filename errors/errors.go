package errors

import (
	"errors"
	"fmt"
)

// ErrorCode là mã lỗi số ổn định, trả nguyên văn cho API client
type ErrorCode int

const (
	// Reservation errors (100 - 199)
	ErrCodeUnknown          ErrorCode = 100
	ErrCodeNoAvailability   ErrorCode = 101
	ErrCodeInvalidDates     ErrorCode = 102
	ErrCodePaymentFailed    ErrorCode = 103
	ErrCodeNotFound         ErrorCode = 104
	ErrCodeCancelNotAllowed ErrorCode = 105
	ErrCodeRefundNotAllowed ErrorCode = 106

	// Property errors (200 - 299)
	ErrCodeInvalidCheckinDate   ErrorCode = 200
	ErrCodeCheckinAfterCheckout ErrorCode = 201
	ErrCodePropertyNotFound     ErrorCode = 202
	ErrCodeRatesParseError      ErrorCode = 203
	ErrCodePriceNotFound        ErrorCode = 204
	ErrCodePropertyNoAvail      ErrorCode = 205
	ErrCodeRoomTypeNotFound     ErrorCode = 206
	ErrCodePropertyExists       ErrorCode = 207
	ErrCodeUnsupportedPMS       ErrorCode = 208

	// Voucher errors (300 - 399)
	ErrCodeCodeNotFound      ErrorCode = 300
	ErrCodeVoucherExhausted  ErrorCode = 301
	ErrCodeInvalidRedemption ErrorCode = 302

	// Security errors (400 - 499)
	ErrCodeAccessDenied ErrorCode = 400
	ErrCodeInvalidToken ErrorCode = 401

	// Validation errors (500 - 599)
	ErrCodeValidation    ErrorCode = 500
	ErrCodeRequiredField ErrorCode = 501
	ErrCodeInvalidFormat ErrorCode = 502
)

// AppError là lỗi của ứng dụng, mang mã lỗi số + HTTP status
type AppError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WrapAppError tạo AppError bọc một lỗi gốc
func WrapAppError(code ErrorCode, message string, statusCode int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// GetAppError lấy AppError từ error, nil nếu không phải
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// Reservation errors
	ErrNoAvailability   = errors.New("no availability for the selected dates")
	ErrInvalidDates     = errors.New("check-in date must be before check-out date")
	ErrReservationFound = errors.New("reservation not found")
	ErrCancelNotAllowed = errors.New("reservation cannot be cancelled")
	ErrRefundNotAllowed = errors.New("reservation is not pending refund")

	// Voucher errors
	ErrCodeInvalid        = errors.New("code not found")
	ErrVoucherExhausted   = errors.New("voucher has no remaining amount")
	ErrRedemptionTooLarge = errors.New("redemption exceeds remaining amount")

	// PMS errors
	ErrUnsupportedPMS = errors.New("no adapter registered for PMS key")
	ErrNoPMSLinked    = errors.New("property has no PMS associated")

	// Payment errors
	ErrInvalidSignature    = errors.New("payment notification signature is invalid")
	ErrOrderNotFound       = errors.New("no reservations found for payment order")
	ErrInvalidNotification = errors.New("payment notification carries no response code")
)
