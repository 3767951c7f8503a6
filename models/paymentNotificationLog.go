package models

import "time"

// PaymentNotificationLog ghi lại mọi callback từ gateway, kể cả khi
// payload hỏng hoặc chữ ký sai. Append-only, không bao giờ update.
type PaymentNotificationLog struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReceivedAt    time.Time `gorm:"autoCreateTime" json:"receivedAt"`
	RawParameters string    `json:"rawParameters" gorm:"type:text"`
	Signature     string    `json:"signature" gorm:"size:512"`
	OrderID       string    `json:"orderId" gorm:"size:64;index"`
	IsValid       bool      `json:"isValid"`
	Message       string    `json:"message" gorm:"type:text"`
}

func (PaymentNotificationLog) TableName() string { return "payment_notification_logs" }
