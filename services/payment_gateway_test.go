package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "stayhub/errors"
)

func testRedsysGateway() *RedsysGateway {
	return &RedsysGateway{
		MerchantCode: "999008881",
		Terminal:     "001",
		SecretKey:    base64.StdEncoding.EncodeToString([]byte("123456789012345678901234")),
		Endpoint:     "https://sis-t.redsys.es:25443/sis/realizarPago",
		NotifyURL:    "https://example.com/api/v1/reservations/redsys/notify",
	}
}

func TestPrepareGroupPaymentEncodesAmountInCents(t *testing.T) {
	gateway := testRedsysGateway()

	redirect, err := gateway.PrepareGroupPayment(nil, 200.50, "000000000001", "")
	require.NoError(t, err)
	require.Equal(t, gateway.Endpoint, redirect.Endpoint)
	require.Equal(t, "HMAC_SHA256_V1", redirect.SignatureVersion)
	require.NotEmpty(t, redirect.Signature)

	raw, err := base64.StdEncoding.DecodeString(redirect.MerchantParameters)
	require.NoError(t, err)
	var params map[string]string
	require.NoError(t, json.Unmarshal(raw, &params))
	require.Equal(t, "20050", params["DS_MERCHANT_AMOUNT"])
	require.Equal(t, "000000000001", params["DS_MERCHANT_ORDER"])
	require.Equal(t, "978", params["DS_MERCHANT_CURRENCY"])
}

func TestProcessNotificationRoundTrip(t *testing.T) {
	gateway := testRedsysGateway()
	orderID := "000000000042"

	payload := map[string]string{"Ds_Order": orderID, "Ds_Response": "0000"}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	encoded := base64.URLEncoding.EncodeToString(raw)

	signature, err := gateway.sign(encoded, orderID, base64.URLEncoding)
	require.NoError(t, err)

	decoded, gotOrder, err := gateway.ProcessNotification(encoded, signature)
	require.NoError(t, err)
	require.Equal(t, orderID, gotOrder)
	require.Equal(t, "0000", decoded["Ds_Response"])
}

func TestProcessNotificationRejectsTamperedSignature(t *testing.T) {
	gateway := testRedsysGateway()
	orderID := "000000000042"

	raw, err := json.Marshal(map[string]string{"Ds_Order": orderID})
	require.NoError(t, err)
	encoded := base64.URLEncoding.EncodeToString(raw)

	_, gotOrder, err := gateway.ProcessNotification(encoded, "dGFtcGVyZWQ=")
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrInvalidSignature))
	require.Equal(t, orderID, gotOrder)
}

func TestGenerateNumericOrderFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		order := GenerateNumericOrder()
		require.Len(t, order, 12)
		for _, ch := range order {
			require.True(t, ch >= '0' && ch <= '9')
		}
	}
}
