package models

// ReservationRoom là line item theo loại phòng của một reservation
type ReservationRoom struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReservationID uint      `json:"reservationId" gorm:"uniqueIndex:idx_reservation_room_type"`
	RoomTypeID    *uint     `json:"roomTypeId" gorm:"uniqueIndex:idx_reservation_room_type"`
	RoomType      *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
	Price         float64   `json:"price"`
	Guests        int       `json:"guests" gorm:"default:1"` // Số khách của line này
	RateID        *int      `json:"rateId"`                  // Rate plan đã chọn khi đặt
}

func (ReservationRoom) TableName() string { return "reservation_rooms" }
