package dto

// AvailabilityQuoteRequest là query cho endpoint báo giá availability.
// PropertyID trống thì tính trên toàn bộ property đang active.
type AvailabilityQuoteRequest struct {
	PropertyID *uint  `form:"propertyId"`
	RoomTypeID *uint  `form:"roomTypeId"`
	CheckIn    string `form:"checkIn" binding:"required"`  // YYYY-MM-DD
	CheckOut   string `form:"checkOut" binding:"required"` // YYYY-MM-DD
	Guests     int    `form:"guests,default=1"`
}

// RoomAvailability là một ô date×room-type hiển thị cho client
type RoomAvailability struct {
	PropertyID   uint       `json:"propertyId"`
	RoomTypeID   uint       `json:"roomTypeId"`
	RoomTypeName string     `json:"roomTypeName"`
	Date         string     `json:"date"`
	Availability int        `json:"availability"`
	Rates        []RateLine `json:"rates"`
}

// RateLine là giá của một rate plan cho mức occupancy đã yêu cầu
type RateLine struct {
	RateID int     `json:"rate_id"`
	Price  float64 `json:"price"`
}

// RateTotal là tổng giá một rate plan trên cả khoảng ngày
type RateTotal struct {
	RateID     int     `json:"rate_id"`
	TotalPrice float64 `json:"total_price"`
}

// QuoteResponse là kết quả báo giá: danh sách ô hiển thị + tổng giá
// theo từng room type, key dạng "<tên room type>-guests:N"
type QuoteResponse struct {
	Rooms                 []RoomAvailability     `json:"rooms"`
	TotalPricePerRoomType map[string][]RateTotal `json:"total_price_per_room_type"`
}
