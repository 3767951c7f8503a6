package dto

// ReservationItemRequest là một item trong batch đặt phòng,
// mỗi item tương ứng một reservation + một line room type
type ReservationItemRequest struct {
	PropertyID uint    `json:"propertyId" binding:"required"`
	RoomTypeID uint    `json:"roomTypeId" binding:"required"`
	CheckIn    string  `json:"checkIn" binding:"required"`  // YYYY-MM-DD
	CheckOut   string  `json:"checkOut" binding:"required"` // YYYY-MM-DD
	Guests     int     `json:"guests"`
	RateID     *int    `json:"rateId"`
	Price      float64 `json:"price" binding:"required"`

	GuestName    string `json:"guestName" binding:"required"`
	GuestEmail   string `json:"guestEmail" binding:"required"`
	GuestPhone   string `json:"guestPhone"`
	GuestAddress string `json:"guestAddress"`
	GuestCity    string `json:"guestCity"`
	GuestCountry string `json:"guestCountry"`
	GuestRemarks string `json:"guestRemarks"`
}

// CreateReservationBatchRequest là body của POST /reservations
type CreateReservationBatchRequest struct {
	Items        []ReservationItemRequest `json:"items" binding:"required"`
	DiscountCode string                   `json:"discountCode"`
}

// PaymentRedirect là payload redirect sang gateway thanh toán
type PaymentRedirect struct {
	Endpoint           string `json:"endpoint"`
	SignatureVersion   string `json:"signatureVersion"`
	MerchantParameters string `json:"merchantParameters"`
	Signature          string `json:"signature"`
}

// ReservationSummary là DTO rút gọn của một reservation sau khi tạo
type ReservationSummary struct {
	ID             uint     `json:"id"`
	PropertyID     *uint    `json:"propertyId"`
	Status         string   `json:"status"`
	CheckIn        string   `json:"checkIn"`
	CheckOut       string   `json:"checkOut"`
	TotalPrice     float64  `json:"totalPrice"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	DiscountAmount float64  `json:"discountAmount"`
	PaymentOrder   string   `json:"paymentOrder"`
	PaymentStatus  string   `json:"paymentStatus"`
}

// CreateReservationBatchResponse là kết quả tạo batch
type CreateReservationBatchResponse struct {
	Reservations  []ReservationSummary `json:"reservations"`
	PayableAmount float64              `json:"payableAmount"`
	PaymentOrder  string               `json:"paymentOrder"`
	Payment       *PaymentRedirect     `json:"payment"`
}
