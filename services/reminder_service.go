package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/constants"
	"stayhub/models"
	"stayhub/services/logger"
)

// ReminderService gửi email nhắc check-in cho các reservation đã
// confirmed sắp tới ngày nhận phòng
type ReminderService struct {
	DB    *gorm.DB
	Email EmailSender
	Log   logger.Logger
}

func NewReminderService(db *gorm.DB, email EmailSender, log logger.Logger) *ReminderService {
	return &ReminderService{DB: db, Email: email, Log: log}
}

// SendCheckInReminders gửi nhắc nhở cho reservation có check-in đúng
// daysAhead ngày nữa; lỗi gửi từng email chỉ log, không dừng vòng lặp
func (s *ReminderService) SendCheckInReminders(ctx context.Context, daysAhead int) {
	now := time.Now().AddDate(0, 0, daysAhead)
	target := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var reservations []models.Reservation
	if err := s.DB.WithContext(ctx).
		Where("check_in = ? AND status = ?", target, constants.ReservationStatusConfirmed).
		Find(&reservations).Error; err != nil {
		s.Log.Error("Load reservation nhắc check-in: %v", err)
		return
	}

	for _, r := range reservations {
		if r.GuestEmail == "" {
			continue
		}
		if err := s.Email.SendCheckInReminder(r.GuestEmail, r.GuestName, daysAhead); err != nil {
			s.Log.Error("Gửi nhắc check-in reservation %d: %v", r.ID, err)
		}
	}
}
