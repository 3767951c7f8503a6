package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stayhub/config"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/response"
	"stayhub/services"
	"stayhub/services/logger"
	"stayhub/validator"
)

const (
	propertyListCacheKey = "properties:all"
	propertyCachePattern = "properties:*"
)

// PropertyController xử lý CRUD property, báo giá availability và
// trigger sync PMS thủ công
type PropertyController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Pricing *services.PricingService
	Sync    *services.SyncService
	Log     logger.Logger
}

func NewPropertyController(db *gorm.DB, rdb *redis.Client, pricing *services.PricingService, sync *services.SyncService, log logger.Logger) *PropertyController {
	return &PropertyController{DB: db, Redis: rdb, Pricing: pricing, Sync: sync, Log: log}
}

// GetProperties trả về danh sách property active, cache 10 phút
func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	var properties []models.Property

	if ctrl.Redis != nil {
		if err := services.GetFromRedis(config.Ctx, ctrl.Redis, propertyListCacheKey, &properties); err == nil && len(properties) > 0 {
			response.Success(c, toPropertyResponses(properties))
			return
		}
	}

	if err := ctrl.DB.Preload("PMS").Where("active = ?", true).Find(&properties).Error; err != nil {
		response.ServerError(c)
		return
	}

	if ctrl.Redis != nil {
		if err := services.SetToRedis(config.Ctx, ctrl.Redis, propertyListCacheKey, properties, 10*time.Minute); err != nil {
			ctrl.Log.Error("Lưu cache danh sách property: %v", err)
		}
	}
	response.Success(c, toPropertyResponses(properties))
}

// GetPropertyDetail trả về chi tiết một property kèm room types
func (ctrl *PropertyController) GetPropertyDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var property models.Property
	if err := ctrl.DB.Preload("PMS").Preload("PmsData").Preload("RoomTypes").First(&property, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, errors.ErrCodePropertyNotFound, "Property not found")
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, property)
}

// CreateProperty tạo property mới
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, _ := c.Get("userID")
	ownerID, _ := userID.(uint)

	property := models.Property{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Zone:        req.Zone,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
		Active:      true,
		PMSID:       req.PMSID,
	}
	if err := validator.ValidateProperty(&property); err != nil {
		response.AppError(c, err)
		return
	}
	if err := ctrl.DB.Create(&property).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateListCache()
	response.Success(c, property)
}

// UpdateProperty cập nhật các field được truyền, field nil giữ nguyên
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var property models.Property
	if err := ctrl.DB.First(&property, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, errors.ErrCodePropertyNotFound, "Property not found")
			return
		}
		response.ServerError(c)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Zone != nil {
		updates["zone"] = *req.Zone
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.PMSID != nil {
		updates["pms_id"] = *req.PMSID
	}
	if req.UsePmsInformation != nil {
		updates["use_pms_information"] = *req.UsePmsInformation
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(&property).Updates(updates).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	ctrl.invalidateListCache()
	response.Success(c, property)
}

// DeleteProperty xoá một property và toàn bộ dữ liệu cascade của nó
func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.DB.Delete(&models.Property{}, id).Error; err != nil {
		response.ServerError(c)
		return
	}
	ctrl.invalidateListCache()
	response.Message(c, "Đã xoá property")
}

// UpdatePmsData cập nhật credentials PMS của property
func (ctrl *PropertyController) UpdatePmsData(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.PmsDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var property models.Property
	if err := ctrl.DB.First(&property, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, errors.ErrCodePropertyNotFound, "Property not found")
			return
		}
		response.ServerError(c)
		return
	}

	var pmsData models.PmsDataProperty
	if err := ctrl.DB.Where("property_id = ?", property.ID).
		FirstOrCreate(&pmsData, models.PmsDataProperty{PropertyID: property.ID}).Error; err != nil {
		response.ServerError(c)
		return
	}
	if err := ctrl.DB.Model(&pmsData).Updates(map[string]interface{}{
		"base_url":             req.BaseURL,
		"pms_token":            req.PmsToken,
		"pms_username":         req.PmsUsername,
		"pms_password":         req.PmsPassword,
		"pms_hotel_identifier": req.PmsHotelIdentifier,
	}).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Message(c, "Đã cập nhật thông tin PMS")
}

// GetAvailability là endpoint báo giá public: parse query rồi uỷ quyền
// cho PricingService
func (ctrl *PropertyController) GetAvailability(c *gin.Context) {
	var req dto.AvailabilityQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		response.Error(c, http.StatusBadRequest, errors.ErrCodeInvalidCheckinDate, "Ngày check-in không hợp lệ")
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		response.Error(c, http.StatusBadRequest, errors.ErrCodeInvalidCheckinDate, "Ngày check-out không hợp lệ")
		return
	}

	quote, err := ctrl.Pricing.Quote(c.Request.Context(), req.PropertyID, req.RoomTypeID, checkIn, checkOut, req.Guests)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, quote)
}

// SyncProperty trigger full sync pipeline cho một property (staff)
func (ctrl *PropertyController) SyncProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var property models.Property
	if err := ctrl.DB.Preload("PMS").Preload("PmsData").First(&property, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, errors.ErrCodePropertyNotFound, "Property not found")
			return
		}
		response.ServerError(c)
		return
	}
	if !property.HasPMS() {
		response.Error(c, http.StatusBadRequest, errors.ErrCodeUnsupportedPMS, "Property has no PMS associated")
		return
	}

	ctrl.Sync.SyncPropertyWithPMS(c.Request.Context(), &property)
	ctrl.invalidateListCache()
	response.Message(c, fmt.Sprintf("Đã sync property %d", property.ID))
}

// invalidateListCache xoá mọi key cache property sau khi dữ liệu đổi
// (CRUD hoặc sync), không chỉ riêng key danh sách
func (ctrl *PropertyController) invalidateListCache() {
	if ctrl.Redis == nil {
		return
	}
	if err := services.DeleteKeysByPattern(config.Ctx, ctrl.Redis, propertyCachePattern); err != nil {
		ctrl.Log.Error("Xoá cache property: %v", err)
	}
}

func toPropertyResponses(properties []models.Property) []dto.PropertyResponse {
	responses := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		item := dto.PropertyResponse{
			ID:                p.ID,
			Name:              p.Name,
			Description:       p.Description,
			Address:           p.Address,
			Zone:              p.Zone,
			Longitude:         p.Longitude,
			Latitude:          p.Latitude,
			Active:            p.Active,
			PMSID:             p.PMSID,
			UsePmsInformation: p.UsePmsInformation,
		}
		if p.PMS != nil {
			item.PMSName = p.PMS.Name
		}
		responses = append(responses, item)
	}
	return responses
}
