package dto

// CreatePropertyRequest là DTO cho request tạo property
type CreatePropertyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Zone        string  `json:"zone"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	PMSID       *uint   `json:"pmsId"`
}

// UpdatePropertyRequest là DTO cho request cập nhật property
type UpdatePropertyRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Address           *string  `json:"address"`
	Zone              *string  `json:"zone"`
	Longitude         *float64 `json:"longitude"`
	Latitude          *float64 `json:"latitude"`
	Active            *bool    `json:"active"`
	PMSID             *uint    `json:"pmsId"`
	UsePmsInformation *bool    `json:"usePmsInformation"`
}

// PmsDataRequest là DTO cập nhật credentials PMS của property
type PmsDataRequest struct {
	BaseURL            string `json:"baseUrl"`
	PmsToken           string `json:"pmsToken"`
	PmsUsername        string `json:"pmsUsername"`
	PmsPassword        string `json:"pmsPassword"`
	PmsHotelIdentifier string `json:"pmsHotelIdentifier"`
}

// PropertyResponse là DTO cho response property
type PropertyResponse struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Address           string  `json:"address"`
	Zone              string  `json:"zone"`
	Longitude         float64 `json:"longitude"`
	Latitude          float64 `json:"latitude"`
	Active            bool    `json:"active"`
	PMSID             *uint   `json:"pmsId"`
	PMSName           string  `json:"pmsName,omitempty"`
	UsePmsInformation bool    `json:"usePmsInformation"`
}
