package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stayhub/constants"
	"stayhub/controllers"
	middlewares "stayhub/middleware"
	"stayhub/pms"
	"stayhub/services"
	"stayhub/services/logger"
)

// Deps gom các collaborator dùng chung cho mọi controller
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Factory *pms.Factory
	Gateway services.PaymentGateway
	Email   services.EmailSender
	Log     logger.Logger
}

// SetupRoutes dựng service graph và đăng ký toàn bộ endpoint
func SetupRoutes(router *gin.Engine, deps Deps) {
	store := services.NewAvailabilityStore(deps.DB)
	syncService := services.NewSyncService(deps.DB, deps.Factory, store, deps.Log)
	pricingService := services.NewPricingService(deps.DB, syncService, store, deps.Log)
	discountService := services.NewDiscountService(deps.DB)
	paymentService := services.NewPaymentService(deps.DB, deps.Gateway, deps.Email, deps.Log)
	reservationService := services.NewReservationService(deps.DB, syncService, store, discountService, deps.Gateway, deps.Log)

	propertyController := controllers.NewPropertyController(deps.DB, deps.Redis, pricingService, syncService, deps.Log)
	reservationController := controllers.NewReservationController(deps.DB, reservationService, paymentService, deps.Log)
	voucherController := controllers.NewVoucherController(deps.DB)
	pmsController := controllers.NewPmsController(deps.DB, deps.Redis, deps.Factory, deps.Log)

	staff := middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin)

	v1 := router.Group("/api/v1")

	v1.GET("/properties", propertyController.GetProperties)
	v1.GET("/properties/availability", propertyController.GetAvailability)
	v1.GET("/properties/:id", propertyController.GetPropertyDetail)
	v1.POST("/properties", staff, propertyController.CreateProperty)
	v1.PUT("/properties/:id", staff, propertyController.UpdateProperty)
	v1.DELETE("/properties/:id", staff, propertyController.DeleteProperty)
	v1.PUT("/properties/:id/pms-data", staff, propertyController.UpdatePmsData)
	v1.POST("/properties/:id/sync", staff, propertyController.SyncProperty)

	v1.POST("/reservations", middlewares.OptionalAuthMiddleware(), reservationController.CreateBatch)
	v1.GET("/reservations", middlewares.AuthMiddleware(), reservationController.GetReservations)
	v1.GET("/reservations/:id", middlewares.AuthMiddleware(), reservationController.GetReservationDetail)
	v1.POST("/reservations/:id/cancel", middlewares.AuthMiddleware(), reservationController.Cancel)
	v1.POST("/reservations/:id/refund", staff, reservationController.Refund)
	// Webhook gateway: không auth, an toàn dựa trên verify chữ ký
	v1.POST("/reservations/redsys/notify", reservationController.RedsysNotify)

	v1.GET("/vouchers/validate/:code", voucherController.ValidateCode)
	v1.POST("/vouchers", staff, voucherController.CreateVoucher)
	v1.GET("/vouchers", staff, voucherController.GetVouchers)
	v1.POST("/coupons", staff, voucherController.CreateCoupon)
	v1.GET("/coupons", staff, voucherController.GetCoupons)
	v1.PUT("/coupons/:id/deactivate", staff, voucherController.DeactivateCoupon)

	v1.GET("/pms", pmsController.GetPMSList)
}
