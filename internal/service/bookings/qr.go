package bookings

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	qrPrefix      = "RIVERRUN"
	qrSeparator   = "|"
	defaultQRSize = 256
	maxQRSize     = 1024
)

// QRCodec подписывает и проверяет содержимое входного QR-кода: RIVERRUN|<bookingId>|<hmac>
type QRCodec struct {
	secret []byte
}

// NewQRCodec создает кодек с секретом подписи
func NewQRCodec(secret string) *QRCodec {
	return &QRCodec{secret: []byte(secret)}
}

// Sign возвращает подписанное содержимое QR-кода для бронирования
func (c *QRCodec) Sign(bookingID string) string {
	data := qrPrefix + qrSeparator + bookingID
	return data + qrSeparator + c.signature(data)
}

// Verify проверяет подпись и возвращает id бронирования
func (c *QRCodec) Verify(payload string) (string, error) {
	parts := strings.Split(strings.TrimSpace(payload), qrSeparator)
	if len(parts) != 3 || parts[0] != qrPrefix || parts[1] == "" {
		return "", fmt.Errorf("%w: malformed payload", ErrInvalidQRPayload)
	}

	data := parts[0] + qrSeparator + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(c.signature(data))) {
		return "", fmt.Errorf("%w: signature mismatch", ErrInvalidQRPayload)
	}

	return parts[1], nil
}

func (c *QRCodec) signature(data string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// RenderPNG рисует QR-код. size <= 0 означает размер по умолчанию.
func RenderPNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
