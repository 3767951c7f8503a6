package services

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"stayhub/config"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
)

// PaymentGateway là collaborator thanh toán: tạo payload redirect cho
// một payment order và verify notification bất đồng bộ từ gateway
type PaymentGateway interface {
	PrepareGroupPayment(reservations []*models.Reservation, totalAmount float64, orderID, description string) (*dto.PaymentRedirect, error)
	ProcessNotification(merchantParameters, signature string) (map[string]interface{}, string, error)
}

// GenerateNumericOrder sinh order 12 chữ số cho gateway, chia sẻ cho
// cả batch reservation thanh toán cùng nhau
func GenerateNumericOrder() string {
	return fmt.Sprintf("%04d%08d", time.Now().Unix()%10000, rand.Intn(100000000))
}

// RedsysGateway ký request theo giao thức Redsys: HMAC-SHA256 với key
// dẫn xuất bằng 3DES từ secret của merchant và order của giao dịch
type RedsysGateway struct {
	MerchantCode string
	Terminal     string
	SecretKey    string // Base64
	Endpoint     string
	NotifyURL    string
	ReturnOKURL  string
	ReturnKOURL  string
}

func NewRedsysGatewayFromEnv() *RedsysGateway {
	return &RedsysGateway{
		MerchantCode: config.GetEnv("REDSYS_MERCHANT_CODE"),
		Terminal:     config.GetEnvDefault("REDSYS_TERMINAL", "001"),
		SecretKey:    config.GetEnv("REDSYS_SECRET_KEY"),
		Endpoint:     config.GetEnvDefault("REDSYS_ENDPOINT", "https://sis-t.redsys.es:25443/sis/realizarPago"),
		NotifyURL:    config.GetEnv("REDSYS_NOTIFY_URL"),
		ReturnOKURL:  config.GetEnv("REDSYS_RETURN_OK_URL"),
		ReturnKOURL:  config.GetEnv("REDSYS_RETURN_KO_URL"),
	}
}

// PrepareGroupPayment đóng gói merchant parameters cho tổng tiền của
// batch và ký bằng order key. Amount gửi đi tính bằng cent.
func (g *RedsysGateway) PrepareGroupPayment(reservations []*models.Reservation, totalAmount float64, orderID, description string) (*dto.PaymentRedirect, error) {
	if description == "" {
		description = fmt.Sprintf("Reservation payment %s", orderID)
	}
	params := map[string]string{
		"DS_MERCHANT_AMOUNT":             fmt.Sprintf("%d", int(totalAmount*100+0.5)),
		"DS_MERCHANT_ORDER":              orderID,
		"DS_MERCHANT_MERCHANTCODE":       g.MerchantCode,
		"DS_MERCHANT_CURRENCY":           "978", // EUR
		"DS_MERCHANT_TRANSACTIONTYPE":    "0",
		"DS_MERCHANT_TERMINAL":           g.Terminal,
		"DS_MERCHANT_MERCHANTURL":        g.NotifyURL,
		"DS_MERCHANT_URLOK":              g.ReturnOKURL,
		"DS_MERCHANT_URLKO":              g.ReturnKOURL,
		"DS_MERCHANT_PRODUCTDESCRIPTION": description,
	}
	encoded, err := encodeMerchantParameters(params)
	if err != nil {
		return nil, err
	}
	signature, err := g.sign(encoded, orderID, base64.StdEncoding)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentRedirect{
		Endpoint:           g.Endpoint,
		SignatureVersion:   "HMAC_SHA256_V1",
		MerchantParameters: encoded,
		Signature:          signature,
	}, nil
}

// ProcessNotification verify chữ ký notification và trả về payload đã
// decode cùng order id. Chữ ký sai trả về ErrInvalidSignature, không
// có state change nào được phép xảy ra phía caller.
func (g *RedsysGateway) ProcessNotification(merchantParameters, signature string) (map[string]interface{}, string, error) {
	raw, err := base64.URLEncoding.DecodeString(merchantParameters)
	if err != nil {
		raw, err = base64.StdEncoding.DecodeString(merchantParameters)
		if err != nil {
			return nil, "", errors.WrapAppError(errors.ErrCodePaymentFailed,
				"Merchant parameters are not valid base64", http.StatusBadRequest, err)
		}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "", errors.WrapAppError(errors.ErrCodePaymentFailed,
			"Merchant parameters are not valid JSON", http.StatusBadRequest, err)
	}

	orderID, _ := payload["Ds_Order"].(string)
	if orderID == "" {
		orderID, _ = payload["DS_ORDER"].(string)
	}
	if orderID == "" {
		return nil, "", errors.WrapAppError(errors.ErrCodePaymentFailed,
			"Notification carries no order id", http.StatusBadRequest, errors.ErrOrderNotFound)
	}

	// Notification dùng base64 url-safe cho chữ ký
	expected, err := g.sign(merchantParameters, orderID, base64.URLEncoding)
	if err != nil {
		return nil, orderID, err
	}
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, orderID, errors.WrapAppError(errors.ErrCodePaymentFailed,
			"Payment notification signature is invalid", http.StatusBadRequest, errors.ErrInvalidSignature)
	}
	return payload, orderID, nil
}

func encodeMerchantParameters(params map[string]string) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// sign dẫn xuất order key bằng 3DES-CBC(secret, order) rồi HMAC-SHA256
// trên chuỗi merchant parameters đã encode
func (g *RedsysGateway) sign(encodedParams, orderID string, encoding *base64.Encoding) (string, error) {
	secret, err := base64.StdEncoding.DecodeString(g.SecretKey)
	if err != nil {
		return "", fmt.Errorf("decode secret key: %w", err)
	}

	orderKey, err := encrypt3DES(secret, orderID)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, orderKey)
	mac.Write([]byte(encodedParams))
	return encoding.EncodeToString(mac.Sum(nil)), nil
}

// encrypt3DES mã hoá order bằng 3DES-CBC, IV zero, pad zero tới bội 8
func encrypt3DES(key []byte, order string) ([]byte, error) {
	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, fmt.Errorf("3des cipher: %w", err)
	}

	plaintext := []byte(order)
	if padding := len(plaintext) % des.BlockSize; padding != 0 {
		plaintext = append(plaintext, bytes.Repeat([]byte{0}, des.BlockSize-padding)...)
	}

	iv := make([]byte, des.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)
	return ciphertext, nil
}
