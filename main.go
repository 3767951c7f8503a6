package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayhub/config"
	"stayhub/jobs"
	"stayhub/models"
	"stayhub/pms"
	"stayhub/routes"
	"stayhub/services"
	"stayhub/services/logger"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(
		&models.PMS{}, &models.Property{}, &models.PmsDataProperty{},
		&models.RoomType{}, &models.Room{}, &models.Availability{},
		&models.Reservation{}, &models.ReservationRoom{},
		&models.Voucher{}, &models.VoucherRedemption{}, &models.DiscountCoupon{},
		&models.PaymentNotificationLog{},
	); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)
	emailSender := services.NewLogEmailSender(appLogger)
	gateway := services.NewRedsysGatewayFromEnv()

	// Registry adapter điền tường minh lúc khởi động; thêm tích hợp
	// mới bằng một dòng Register ở đây
	factory := pms.NewFactory()

	store := services.NewAvailabilityStore(config.DB)
	syncService := services.NewSyncService(config.DB, factory, store, appLogger)
	reminderService := services.NewReminderService(config.DB, emailSender, appLogger)
	jobs.SetPropertySyncer(syncService)
	jobs.SetCheckInReminder(reminderService)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	routes.SetupRoutes(router, routes.Deps{
		DB:      config.DB,
		Redis:   config.RedisClient,
		Factory: factory,
		Gateway: gateway,
		Email:   emailSender,
		Log:     appLogger,
	})

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
