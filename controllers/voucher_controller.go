package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/response"
	"stayhub/validator"
)

// VoucherController quản lý voucher/coupon và endpoint validate mã
// public cho client kiểm tra trước khi đặt
type VoucherController struct {
	DB *gorm.DB
}

func NewVoucherController(db *gorm.DB) *VoucherController {
	return &VoucherController{DB: db}
}

// generateVoucherCode sinh code ngắn từ uuid, bỏ dấu gạch cho dễ nhập
func generateVoucherCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:12])
}

// ValidateCode kiểm tra một mã giảm giá: voucher được thử trước coupon,
// trùng với thứ tự resolve lúc đặt phòng
func (ctrl *VoucherController) ValidateCode(c *gin.Context) {
	code := c.Param("code")

	var voucher models.Voucher
	err := ctrl.DB.Where("code = ? AND active = ?", code, true).First(&voucher).Error
	if err == nil {
		response.Success(c, dto.CodeValidationResponse{
			Code:            voucher.Code,
			Type:            "voucher",
			RemainingAmount: voucher.RemainingAmount,
			Active:          voucher.Active,
		})
		return
	}
	if err != gorm.ErrRecordNotFound {
		response.ServerError(c)
		return
	}

	var coupon models.DiscountCoupon
	err = ctrl.DB.Where("code = ? AND active = ?", code, true).First(&coupon).Error
	if err == nil {
		response.Success(c, dto.CodeValidationResponse{
			Code:            coupon.Code,
			Type:            "coupon",
			DiscountPercent: coupon.DiscountPercent,
			Active:          coupon.Active,
		})
		return
	}
	if err != gorm.ErrRecordNotFound {
		response.ServerError(c)
		return
	}
	response.Error(c, http.StatusNotFound, errors.ErrCodeCodeNotFound, "Discount code not found")
}

// CreateVoucher tạo voucher mới (staff); code để trống sẽ tự sinh
func (ctrl *VoucherController) CreateVoucher(c *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	code := req.Code
	if code == "" {
		code = generateVoucherCode()
	}
	userID, _ := c.Get("userID")
	createdBy, _ := userID.(uint)

	voucher := models.Voucher{
		Code:            code,
		Amount:          req.Amount,
		RemainingAmount: req.Amount,
		CreatedByID:     createdBy,
		Active:          true,
	}
	if err := validator.ValidateVoucher(&voucher); err != nil {
		response.AppError(c, err)
		return
	}
	if err := ctrl.DB.Create(&voucher).Error; err != nil {
		response.BadRequest(c, "Không tạo được voucher, code có thể đã tồn tại")
		return
	}
	response.Success(c, dto.VoucherResponse{
		ID:              voucher.ID,
		Code:            voucher.Code,
		Amount:          voucher.Amount,
		RemainingAmount: voucher.RemainingAmount,
		Active:          voucher.Active,
	})
}

// GetVouchers liệt kê voucher kèm lịch sử redeem (staff)
func (ctrl *VoucherController) GetVouchers(c *gin.Context) {
	var vouchers []models.Voucher
	if err := ctrl.DB.Preload("Redemptions").Order("created_at desc").Find(&vouchers).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, vouchers)
}

// CreateCoupon tạo coupon phần trăm mới (staff)
func (ctrl *VoucherController) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, _ := c.Get("userID")
	createdBy, _ := userID.(uint)

	coupon := models.DiscountCoupon{
		Code:            req.Code,
		Name:            req.Name,
		DiscountPercent: req.DiscountPercent,
		CreatedByID:     createdBy,
		Active:          true,
	}
	if err := validator.ValidateCoupon(&coupon); err != nil {
		response.AppError(c, err)
		return
	}
	if err := ctrl.DB.Create(&coupon).Error; err != nil {
		response.BadRequest(c, "Không tạo được coupon, code có thể đã tồn tại")
		return
	}
	response.Success(c, coupon)
}

// GetCoupons liệt kê coupon (staff)
func (ctrl *VoucherController) GetCoupons(c *gin.Context) {
	var coupons []models.DiscountCoupon
	if err := ctrl.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, coupons)
}

// DeactivateCoupon tắt một coupon (staff)
func (ctrl *VoucherController) DeactivateCoupon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	result := ctrl.DB.Model(&models.DiscountCoupon{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c, "Coupon not found")
		return
	}
	response.Message(c, "Đã tắt coupon")
}
