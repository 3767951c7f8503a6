package validator

import (
	"net/http"
	"regexp"
	"time"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateReservationItem validate một item trong batch đặt phòng
func ValidateReservationItem(item *dto.ReservationItemRequest) error {
	if item.PropertyID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Property không được để trống", http.StatusBadRequest)
	}
	if item.RoomTypeID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Loại phòng không được để trống", http.StatusBadRequest)
	}
	if item.GuestName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách không được để trống", http.StatusBadRequest)
	}
	if item.GuestEmail == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email khách không được để trống", http.StatusBadRequest)
	}
	if !emailRegex.MatchString(item.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Email khách không hợp lệ", http.StatusBadRequest)
	}
	if item.Price < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá không được âm", http.StatusBadRequest)
	}
	if err := validateDatePair(item.CheckIn, item.CheckOut); err != nil {
		return err
	}
	return nil
}

// ValidateReservationBatch validate toàn bộ batch
func ValidateReservationBatch(req *dto.CreateReservationBatchRequest) error {
	if len(req.Items) == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Batch không được để trống", http.StatusBadRequest)
	}
	for i := range req.Items {
		if err := ValidateReservationItem(&req.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVoucher validate voucher trước khi tạo
func ValidateVoucher(voucher *models.Voucher) error {
	if voucher.Amount <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá trị voucher phải dương", http.StatusBadRequest)
	}
	if len(voucher.Code) > 20 {
		return errors.NewAppError(errors.ErrCodeValidation, "Code voucher tối đa 20 ký tự", http.StatusBadRequest)
	}
	return nil
}

// ValidateCoupon validate coupon trước khi tạo
func ValidateCoupon(coupon *models.DiscountCoupon) error {
	if coupon.Code == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Code coupon không được để trống", http.StatusBadRequest)
	}
	if coupon.DiscountPercent <= 0 || coupon.DiscountPercent > 100 {
		return errors.NewAppError(errors.ErrCodeValidation, "Phần trăm giảm giá phải trong khoảng (0, 100]", http.StatusBadRequest)
	}
	return nil
}

// ValidateProperty validate property trước khi tạo/cập nhật
func ValidateProperty(property *models.Property) error {
	if property.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên property không được để trống", http.StatusBadRequest)
	}
	if property.Latitude < -90 || property.Latitude > 90 {
		return errors.NewAppError(errors.ErrCodeValidation, "Latitude không hợp lệ", http.StatusBadRequest)
	}
	if property.Longitude < -180 || property.Longitude > 180 {
		return errors.NewAppError(errors.ErrCodeValidation, "Longitude không hợp lệ", http.StatusBadRequest)
	}
	return nil
}

// validateDatePair kiểm tra cặp ngày YYYY-MM-DD và thứ tự check-in < check-out
func validateDatePair(checkIn, checkOut string) error {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return errors.WrapAppError(errors.ErrCodeInvalidDates, "Ngày check-in không hợp lệ", http.StatusBadRequest, err)
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return errors.WrapAppError(errors.ErrCodeInvalidDates, "Ngày check-out không hợp lệ", http.StatusBadRequest, err)
	}
	if !in.Before(out) {
		return errors.WrapAppError(errors.ErrCodeInvalidDates, "Check-in phải trước check-out", http.StatusBadRequest, errors.ErrInvalidDates)
	}
	return nil
}
