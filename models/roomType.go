package models

import "time"

// RoomType là loại phòng; PropertyID có thể null khi loại phòng
// được chia sẻ qua một mapping PMS
type RoomType struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID *uint     `json:"propertyId" gorm:"uniqueIndex:idx_room_type_mapping"`
	ExternalID string    `json:"externalId" gorm:"uniqueIndex:idx_room_type_mapping"` // Key loại phòng phía vendor
	Name       string    `json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (RoomType) TableName() string { return "room_types" }
