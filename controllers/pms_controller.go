package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stayhub/config"
	"stayhub/models"
	"stayhub/pms"
	"stayhub/response"
	"stayhub/services"
	"stayhub/services/logger"
)

const pmsListCacheKey = "pms:list"

// PmsController expose danh sách PMS đang tích hợp
type PmsController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Factory *pms.Factory
	Log     logger.Logger
}

func NewPmsController(db *gorm.DB, rdb *redis.Client, factory *pms.Factory, log logger.Logger) *PmsController {
	return &PmsController{DB: db, Redis: rdb, Factory: factory, Log: log}
}

// GetPMSList trả về các PMS active; has_integration phản ánh adapter
// có thật trong registry lúc runtime, không chỉ cờ trong DB
func (ctrl *PmsController) GetPMSList(c *gin.Context) {
	var list []models.PMS

	if ctrl.Redis != nil {
		if err := services.GetFromRedis(config.Ctx, ctrl.Redis, pmsListCacheKey, &list); err == nil && len(list) > 0 {
			response.Success(c, list)
			return
		}
	}

	if err := ctrl.DB.Where("active = ?", true).Order("name asc").Find(&list).Error; err != nil {
		response.ServerError(c)
		return
	}
	for i := range list {
		list[i].HasIntegration = ctrl.Factory.Has(list[i].PmsKey)
	}

	if ctrl.Redis != nil {
		if err := services.SetToRedis(config.Ctx, ctrl.Redis, pmsListCacheKey, list, 30*time.Minute); err != nil {
			ctrl.Log.Error("Lưu cache danh sách PMS: %v", err)
		}
	}
	response.Success(c, list)
}
