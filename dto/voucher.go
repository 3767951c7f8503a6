package dto

// CreateVoucherRequest là DTO tạo voucher, code để trống sẽ tự sinh
type CreateVoucherRequest struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount" binding:"required"`
}

// CreateCouponRequest là DTO tạo coupon phần trăm
type CreateCouponRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name"`
	DiscountPercent float64 `json:"discountPercent" binding:"required"`
}

// VoucherResponse là DTO response voucher
type VoucherResponse struct {
	ID              uint    `json:"id"`
	Code            string  `json:"code"`
	Amount          float64 `json:"amount"`
	RemainingAmount float64 `json:"remainingAmount"`
	Active          bool    `json:"active"`
}

// CodeValidationResponse là kết quả validate một mã giảm giá
type CodeValidationResponse struct {
	Code            string  `json:"code"`
	Type            string  `json:"type"` // "voucher" hoặc "coupon"
	RemainingAmount float64 `json:"remainingAmount,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	Active          bool    `json:"active"`
}
