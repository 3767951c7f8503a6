package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"stayhub/utils"
)

// PropertySyncer định nghĩa interface cho job sync toàn bộ property
type PropertySyncer interface {
	SyncAllProperties(ctx context.Context)
}

// CheckInReminder định nghĩa interface cho job nhắc check-in
type CheckInReminder interface {
	SendCheckInReminders(ctx context.Context, daysAhead int)
}

var (
	propertySyncer  PropertySyncer
	checkInReminder CheckInReminder
)

// SetPropertySyncer thiết lập implementation cho PropertySyncer
func SetPropertySyncer(syncer PropertySyncer) {
	propertySyncer = syncer
}

// SetCheckInReminder thiết lập implementation cho CheckInReminder
func SetCheckInReminder(reminder CheckInReminder) {
	checkInReminder = reminder
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Sync PMS toàn bộ property lúc 3h sáng mỗi ngày
	_, err := c.AddFunc("0 3 * * *", func() {
		if propertySyncer == nil {
			utils.LogError("PropertySyncer chưa được thiết lập")
			return
		}
		utils.LogInfo("Bắt đầu sync PMS cho toàn bộ property")
		propertySyncer.SyncAllProperties(context.Background())
		utils.LogInfo("Sync PMS toàn bộ property hoàn tất")
	})
	if err != nil {
		return err
	}

	// Nhắc check-in trước 7 ngày và 1 ngày, chạy lúc 9h sáng
	_, err = c.AddFunc("0 9 * * *", func() {
		if checkInReminder == nil {
			utils.LogError("CheckInReminder chưa được thiết lập")
			return
		}
		utils.LogInfo("Bắt đầu gửi nhắc check-in")
		checkInReminder.SendCheckInReminders(context.Background(), 7)
		checkInReminder.SendCheckInReminders(context.Background(), 1)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
