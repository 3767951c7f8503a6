package services

import "stayhub/services/logger"

// EmailSender gửi thông báo cho khách, kết quả gửi không ảnh hưởng giao dịch
type EmailSender interface {
	SendReservationConfirmed(email, name, order string) error
	SendCheckInReminder(email, name string, daysLeft int) error
}

// LogEmailSender ghi email ra log thay vì gửi thật, dùng khi chưa cấu hình SMTP
type LogEmailSender struct {
	Logger logger.Logger
}

func NewLogEmailSender(log logger.Logger) *LogEmailSender {
	return &LogEmailSender{Logger: log}
}

func (s *LogEmailSender) SendReservationConfirmed(email, name, order string) error {
	s.Logger.Info("Email xác nhận đặt phòng tới %s (%s), order %s", email, name, order)
	return nil
}

func (s *LogEmailSender) SendCheckInReminder(email, name string, daysLeft int) error {
	s.Logger.Info("Email nhắc check-in tới %s (%s), còn %d ngày", email, name, daysLeft)
	return nil
}
