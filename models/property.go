package models

import "time"

type Property struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	OwnerID           uint      `json:"ownerId" gorm:"index"` // ID người dùng sở hữu
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	Zone              string    `json:"zone"`
	Longitude         float64   `json:"longitude"`
	Latitude          float64   `json:"latitude"`
	Active            bool      `json:"active" gorm:"default:true"`
	PMSID             *uint     `json:"pmsId"` // PMS liên kết, có thể null
	PMS               *PMS      `json:"pms" gorm:"foreignKey:PMSID"`
	UsePmsInformation bool      `json:"usePmsInformation"` // Ưu tiên dữ liệu PMS khi hiển thị
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	PmsData        *PmsDataProperty `json:"pmsData,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	RoomTypes      []RoomType       `json:"roomTypes,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Availabilities []Availability   `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Reservations   []Reservation    `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

func (Property) TableName() string { return "properties" }

// HasPMS cho biết property có PMS liên kết hay không
func (p *Property) HasPMS() bool {
	return p.PMSID != nil
}
