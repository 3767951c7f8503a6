package models

import "time"

// PMS là hệ thống quản lý khách sạn bên thứ ba được tích hợp
type PMS struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"unique"`          // Tên PMS
	PmsKey         string    `json:"pmsKey" gorm:"unique"`        // Key chọn adapter
	PmsExternalID  string    `json:"pmsExternalId"`               // ID phía vendor
	Active         bool      `json:"active" gorm:"default:true"`  // Còn hoạt động
	HasIntegration bool      `json:"hasIntegration"`              // Đã có adapter
	Description    string    `json:"description"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PMS) TableName() string { return "pms" }

// PmsDataProperty lưu metadata + credentials của property phía vendor,
// mỗi property có tối đa một bản ghi
type PmsDataProperty struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	PropertyID uint `json:"propertyId" gorm:"uniqueIndex"`

	PmsPropertyID         string  `json:"pmsPropertyId"`
	PmsPropertyName       string  `json:"pmsPropertyName"`
	PmsPropertyAddress    string  `json:"pmsPropertyAddress"`
	PmsPropertyCity       string  `json:"pmsPropertyCity"`
	PmsPropertyProvince   string  `json:"pmsPropertyProvince"`
	PmsPropertyPostalCode string  `json:"pmsPropertyPostalCode"`
	PmsPropertyCountry    string  `json:"pmsPropertyCountry"`
	PmsPropertyLatitude   float64 `json:"pmsPropertyLatitude"`
	PmsPropertyLongitude  float64 `json:"pmsPropertyLongitude"`
	PmsPropertyPhone      string  `json:"pmsPropertyPhone"`
	PmsPropertyCategory   string  `json:"pmsPropertyCategory"`

	// Credentials để adapter gọi API vendor
	BaseURL            string `json:"baseUrl"`
	PmsToken           string `json:"-"`
	PmsUsername        string `json:"-"`
	PmsPassword        string `json:"-"`
	PmsHotelIdentifier string `json:"pmsHotelIdentifier"`

	FirstSync bool      `json:"firstSync" gorm:"default:true"` // Chưa sync lần nào
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PmsDataProperty) TableName() string { return "pms_data_properties" }
