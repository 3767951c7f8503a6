package pms

import (
	"context"
	"time"

	"stayhub/models"
)

// PropertyDetail là metadata property phía vendor. Field rỗng nghĩa là
// vendor không trả về, caller giữ nguyên giá trị local (field-level fallback).
type PropertyDetail struct {
	PmsPropertyID         string  `json:"pms_property_id"`
	PmsPropertyName       string  `json:"pms_property_name"`
	PmsPropertyAddress    string  `json:"pms_property_address"`
	PmsPropertyCity       string  `json:"pms_property_city"`
	PmsPropertyProvince   string  `json:"pms_property_province"`
	PmsPropertyPostalCode string  `json:"pms_property_postal_code"`
	PmsPropertyCountry    string  `json:"pms_property_country"`
	PmsPropertyLatitude   float64 `json:"pms_property_latitude"`
	PmsPropertyLongitude  float64 `json:"pms_property_longitude"`
	PmsPropertyPhone      string  `json:"pms_property_phone"`
	PmsPropertyCategory   string  `json:"pms_property_category"`
}

// RoomData là một phòng trong danh sách phòng vendor trả về
type RoomData struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	ExternalID           string `json:"external_id"`
	ExternalRoomTypeID   string `json:"external_room_type_id"`
	ExternalRoomTypeName string `json:"external_room_type_name"`
}

// BookingRoomData là một line phòng trong booking vendor
type BookingRoomData struct {
	RoomTypeID string `json:"room_type_id"`
	Occupancy  int    `json:"occupancy"`
}

// BookingData là một booking vendor trả về
type BookingData struct {
	CheckIn          string            `json:"check_in"`  // YYYY-MM-DD
	CheckOut         string            `json:"check_out"` // YYYY-MM-DD
	TotalPrice       float64           `json:"total_price"`
	PaidOnline       float64           `json:"paid_online"`
	PayOnArrival     float64           `json:"pay_on_arrival"`
	Channel          string            `json:"channel"`
	Status           string            `json:"status"`
	GuestName        string            `json:"guest_name"`
	GuestCorporate   string            `json:"guest_corporate"`
	GuestEmail       string            `json:"guest_email"`
	GuestPhone       string            `json:"guest_phone"`
	GuestAddress     string            `json:"guest_address"`
	GuestCity        string            `json:"guest_city"`
	GuestRegion      string            `json:"guest_region"`
	GuestCountry     string            `json:"guest_country"`
	GuestCountryISO  string            `json:"guest_country_iso"`
	GuestCP          string            `json:"guest_cp"`
	GuestRemarks     string            `json:"guest_remarks"`
	CancellationDate *time.Time        `json:"cancellation_date"`
	ModificationDate *time.Time        `json:"modification_date"`
	Rooms            []BookingRoomData `json:"rooms"`
}

// RateCell là một ô date×room-type trong lịch rate/availability vendor
type RateCell struct {
	RoomType     string            `json:"room_type"` // external_id loại phòng
	Date         string            `json:"date"`      // YYYY-MM-DD
	Availability int               `json:"availability"`
	Rates        []models.RatePlan `json:"rates"`
}

// Adapter là contract thống nhất cho mọi tích hợp PMS, bất kể vendor.
// "Không có dữ liệu" là giá trị trả về bình thường (nil, nil), không
// phải error; error chỉ dành cho lỗi transport/parse.
type Adapter interface {
	DownloadPropertyDetails(ctx context.Context, prop *models.Property) (*PropertyDetail, error)
	DownloadRoomList(ctx context.Context, prop *models.Property) (map[string][]RoomData, error)
	DownloadReservations(ctx context.Context, prop *models.Property, checkin, checkout *time.Time) ([]BookingData, error)
	DownloadRatesAndAvailability(ctx context.Context, prop *models.Property, checkin, checkout *time.Time) ([]RateCell, error)
}
