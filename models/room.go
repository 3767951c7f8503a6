package models

import "time"

// Room là phòng vật lý sync từ vendor; description là field duy nhất
// được update tự do, các field còn lại là khóa nhận dạng phía vendor
type Room struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	PropertyID           uint      `json:"propertyId" gorm:"index"`
	RoomTypeID           *uint     `json:"roomTypeId"`
	RoomType             *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Pax                  int       `json:"pax" gorm:"default:1"` // Sức chứa, parse từ tên loại phòng
	ExternalID           string    `json:"externalId"`
	ExternalRoomTypeID   string    `json:"externalRoomTypeId"`
	ExternalRoomTypeName string    `json:"externalRoomTypeName"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }
