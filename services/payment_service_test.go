package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stayhub/constants"
	apperrors "stayhub/errors"
	"stayhub/models"
)

// recordingEmail đếm email gửi đi để kiểm tra best-effort notify
type recordingEmail struct {
	confirmed int
	reminders int
}

func (e *recordingEmail) SendReservationConfirmed(email, name, order string) error {
	e.confirmed++
	return nil
}

func (e *recordingEmail) SendCheckInReminder(email, name string, daysLeft int) error {
	e.reminders++
	return nil
}

func seedOrderReservations(t *testing.T, service *PaymentService, orderID string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, service.DB.Create(&models.Reservation{
			Status:        constants.ReservationStatusPending,
			PaymentOrder:  orderID,
			PaymentStatus: constants.PaymentStatusPending,
			TotalPrice:    100,
			GuestName:     "Ana Garcia",
			GuestEmail:    "ana@example.com",
		}).Error)
	}
}

func TestHandleNotificationConfirmsWholeBatch(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		payload: map[string]interface{}{"Ds_Order": "000000000001", "Ds_Response": "0000"},
		orderID: "000000000001",
	}
	email := &recordingEmail{}
	service := NewPaymentService(db, gateway, email, testLogger())
	seedOrderReservations(t, service, "000000000001", 2)

	orderID, err := service.HandleNotification("params", "sig")
	require.NoError(t, err)
	require.Equal(t, "000000000001", orderID)

	var reservations []models.Reservation
	require.NoError(t, db.Find(&reservations).Error)
	for _, r := range reservations {
		require.Equal(t, constants.ReservationStatusConfirmed, r.Status)
		require.Equal(t, constants.PaymentStatusPaid, r.PaymentStatus)
		require.NotNil(t, r.PaymentDate)
		require.NotEmpty(t, r.PaymentResponse)
	}
	require.Equal(t, 2, email.confirmed)

	// Mọi callback đều để lại một dòng audit
	var logs []models.PaymentNotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.True(t, logs[0].IsValid)
	require.Equal(t, "000000000001", logs[0].OrderID)
}

func TestHandleNotificationIdempotent(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		payload: map[string]interface{}{"Ds_Order": "000000000002", "Ds_Response": "0000"},
		orderID: "000000000002",
	}
	email := &recordingEmail{}
	service := NewPaymentService(db, gateway, email, testLogger())
	seedOrderReservations(t, service, "000000000002", 1)

	_, err := service.HandleNotification("params", "sig")
	require.NoError(t, err)
	// Gateway gửi lại cùng notification: không đổi state, không gửi
	// lại email
	_, err = service.HandleNotification("params", "sig")
	require.NoError(t, err)
	require.Equal(t, 1, email.confirmed)

	var logs []models.PaymentNotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 2) // Audit vẫn ghi đủ từng lần nhận
}

func TestHandleNotificationInvalidSignature(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		orderID:   "000000000003",
		notifyErr: apperrors.ErrInvalidSignature,
	}
	email := &recordingEmail{}
	service := NewPaymentService(db, gateway, email, testLogger())
	seedOrderReservations(t, service, "000000000003", 1)

	_, err := service.HandleNotification("params", "bad-sig")
	require.Error(t, err)

	// Không có state change nào được phép
	var reservation models.Reservation
	require.NoError(t, db.First(&reservation).Error)
	require.Equal(t, constants.ReservationStatusPending, reservation.Status)
	require.Equal(t, constants.PaymentStatusPending, reservation.PaymentStatus)
	require.Zero(t, email.confirmed)

	var logs []models.PaymentNotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.False(t, logs[0].IsValid)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		payload: map[string]interface{}{"Ds_Order": "999999999999"},
		orderID: "999999999999",
	}
	service := NewPaymentService(db, gateway, &recordingEmail{}, testLogger())

	_, err := service.HandleNotification("params", "sig")
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestHandleNotificationDeclinedMarksFailed(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		payload: map[string]interface{}{"Ds_Order": "000000000004", "Ds_Response": "9915"},
		orderID: "000000000004",
	}
	email := &recordingEmail{}
	service := NewPaymentService(db, gateway, email, testLogger())
	seedOrderReservations(t, service, "000000000004", 1)

	_, err := service.HandleNotification("params", "sig")
	require.NoError(t, err)

	var r models.Reservation
	require.NoError(t, db.First(&r).Error)
	require.Equal(t, constants.PaymentStatusFailed, r.PaymentStatus)
	require.Equal(t, constants.ReservationStatusPending, r.Status)
	require.Equal(t, 0, email.confirmed)
}

func TestHandleNotificationRefundConfirmation(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		payload: map[string]interface{}{"Ds_Order": "000000000005", "Ds_Response": "900"},
		orderID: "000000000005",
	}
	service := NewPaymentService(db, gateway, &recordingEmail{}, testLogger())

	require.NoError(t, db.Create(&models.Reservation{
		Status:        constants.ReservationStatusPendingRefund,
		PaymentOrder:  "000000000005",
		PaymentStatus: constants.PaymentStatusPaid,
		TotalPrice:    100,
	}).Error)
	// Reservation chưa xin hoàn tiền thì 900 không được đụng vào
	require.NoError(t, db.Create(&models.Reservation{
		Status:        constants.ReservationStatusConfirmed,
		PaymentOrder:  "000000000005",
		PaymentStatus: constants.PaymentStatusPaid,
		TotalPrice:    50,
	}).Error)

	_, err := service.HandleNotification("params", "sig")
	require.NoError(t, err)

	var reservations []models.Reservation
	require.NoError(t, db.Order("id").Find(&reservations).Error)
	require.Equal(t, constants.ReservationStatusRefunded, reservations[0].Status)
	require.Equal(t, constants.ReservationStatusConfirmed, reservations[1].Status)
}

func TestHandleNotificationMissingResponseCodeRejected(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{
		payload: map[string]interface{}{"Ds_Order": "000000000099"},
		orderID: "000000000099",
	}
	email := &recordingEmail{}
	service := NewPaymentService(db, gateway, email, testLogger())
	seedOrderReservations(t, service, "000000000099", 1)

	_, err := service.HandleNotification("params", "sig")
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrInvalidNotification)

	// Không có Ds_Response thì không được chuyển state
	var r models.Reservation
	require.NoError(t, db.First(&r).Error)
	require.Equal(t, constants.ReservationStatusPending, r.Status)
	require.Equal(t, constants.PaymentStatusPending, r.PaymentStatus)
	require.Equal(t, 0, email.confirmed)

	var logs []models.PaymentNotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.False(t, logs[0].IsValid)
}
