package models

import (
	"encoding/json"
	"time"
)

// OccupancyPrice là giá cho một mức occupancy trong rate plan
type OccupancyPrice struct {
	Occupancy int     `json:"occupancy"`
	Price     float64 `json:"price"`
}

// RatePlan là một gói giá theo occupancy cho một loại phòng trong một ngày
type RatePlan struct {
	RateID       int              `json:"rate_id"`
	Prices       []OccupancyPrice `json:"prices"`
	Restrictions map[string]any   `json:"restrictions,omitempty"`
}

// Availability là một ô lịch tồn kho: (property, room_type, date) duy nhất.
// Rates được lưu dạng JSON serialize để so sánh thay đổi bằng chuỗi.
type Availability struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PropertyID   uint      `json:"propertyId" gorm:"uniqueIndex:idx_availability_cell"`
	RoomTypeID   uint      `json:"roomTypeId" gorm:"uniqueIndex:idx_availability_cell"`
	RoomType     *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
	Date         time.Time `json:"date" gorm:"uniqueIndex:idx_availability_cell;type:date"`
	Availability int       `json:"availability"` // Số phòng còn trống, >= 0
	Rates        string    `json:"rates"`        // []RatePlan serialize
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Availability) TableName() string { return "availabilities" }

// SerializeRates chuyển danh sách rate plan thành chuỗi lưu trong DB
func SerializeRates(rates []RatePlan) (string, error) {
	data, err := json.Marshal(rates)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseRates đọc lại danh sách rate plan từ chuỗi đã lưu
func ParseRates(raw string) ([]RatePlan, error) {
	if raw == "" {
		return nil, nil
	}
	var rates []RatePlan
	if err := json.Unmarshal([]byte(raw), &rates); err != nil {
		return nil, err
	}
	return rates, nil
}
