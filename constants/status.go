package constants

// Reservation status
const (
	ReservationStatusPending       = "pending"
	ReservationStatusConfirmed     = "confirmed"
	ReservationStatusPendingRefund = "pending_refund"
	ReservationStatusCancelled     = "cancelled"
	ReservationStatusRefunded      = "refunded"
	ReservationStatusOk            = "ok"
)

// Payment status
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// User role
const (
	RoleGuest = 0
	RoleStaff = 1
	RoleAdmin = 2
)

// Currency mặc định cho các reservation
const DefaultCurrency = "EUR"
