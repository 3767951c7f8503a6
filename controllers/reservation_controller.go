package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/models"
	"stayhub/response"
	"stayhub/services"
	"stayhub/services/logger"
	"stayhub/validator"
)

// ReservationController xử lý tạo batch đặt phòng, tra cứu, huỷ,
// hoàn tiền và webhook notification từ gateway
type ReservationController struct {
	DB          *gorm.DB
	Reservation *services.ReservationService
	Payment     *services.PaymentService
	Log         logger.Logger
}

func NewReservationController(db *gorm.DB, reservation *services.ReservationService, payment *services.PaymentService, log logger.Logger) *ReservationController {
	return &ReservationController{DB: db, Reservation: reservation, Payment: payment, Log: log}
}

// CreateBatch tạo một batch reservation; body là danh sách item theo
// room type kèm mã giảm giá tuỳ chọn
func (ctrl *ReservationController) CreateBatch(c *gin.Context) {
	var req dto.CreateReservationBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validator.ValidateReservationBatch(&req); err != nil {
		response.AppError(c, err)
		return
	}

	var userID *uint
	if id, exists := c.Get("userID"); exists {
		if uid, ok := id.(uint); ok {
			userID = &uid
		}
	}

	result, err := ctrl.Reservation.CreateBatch(c.Request.Context(), req, userID)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, result)
}

// GetReservations liệt kê reservation có phân trang; user thường chỉ
// thấy reservation của mình, staff thấy tất cả
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	var pagination dto.PaginationQuery
	if err := c.ShouldBindQuery(&pagination); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}

	query := ctrl.DB.Model(&models.Reservation{}).Preload("Rooms").Preload("Rooms.RoomType")

	role, _ := c.Get("userRole")
	if roleInt, ok := role.(int); !ok || roleInt < constants.RoleStaff {
		userID, exists := c.Get("userID")
		if !exists {
			response.Unauthorized(c)
			return
		}
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if propertyID := c.Query("propertyId"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var reservations []models.Reservation
	if err := query.Order("created_at desc").
		Offset(pagination.Page * pagination.Limit).Limit(pagination.Limit).
		Find(&reservations).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithPagination(c, reservations, pagination.Page, pagination.Limit, int(total))
}

// GetReservationDetail trả về chi tiết một reservation
func (ctrl *ReservationController) GetReservationDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var reservation models.Reservation
	if err := ctrl.DB.Preload("Rooms").Preload("Rooms.RoomType").Preload("Property").
		First(&reservation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "Reservation not found")
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, reservation)
}

// Cancel huỷ một reservation, guard trạng thái nằm trong model
func (ctrl *ReservationController) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	reservation, err := ctrl.Reservation.Cancel(uint(id))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, reservation)
}

// Refund đánh dấu một reservation pending_refund là đã hoàn tiền (staff)
func (ctrl *ReservationController) Refund(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	reservation, err := ctrl.Reservation.MarkRefunded(uint(id))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, reservation)
}

// RedsysNotify là webhook không xác thực từ gateway; an toàn dựa trên
// verify chữ ký, mọi callback đều được ghi audit log
func (ctrl *ReservationController) RedsysNotify(c *gin.Context) {
	merchantParameters := c.PostForm("Ds_MerchantParameters")
	signature := c.PostForm("Ds_Signature")
	if merchantParameters == "" || signature == "" {
		response.BadRequest(c, "Thiếu Ds_MerchantParameters hoặc Ds_Signature")
		return
	}

	orderID, err := ctrl.Payment.HandleNotification(merchantParameters, signature)
	if err != nil {
		ctrl.Log.Error("Notification order %q bị từ chối: %v", orderID, err)
		response.AppError(c, err)
		return
	}
	c.String(http.StatusOK, "OK")
}
