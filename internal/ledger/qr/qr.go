package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"

	"ms-booking/internal/models"
)

// Generator renders booking confirmations as QR codes. The booking payload
// is AES-encrypted so the code can only be verified by a holder of the
// shared secret.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	// Normalize the secret to a 32-byte AES key.
	hashed := sha256.Sum256([]byte(secret))
	return &Generator{secret: hashed[:]}
}

// ConfirmationQR returns a PNG QR code for the booking.
func (g *Generator) ConfirmationQR(booking models.Booking) ([]byte, error) {
	data, err := json.Marshal(booking)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking %s: %w", booking.ID, err)
	}

	block, err := aes.NewCipher(g.secret)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	payload := base64.URLEncoding.EncodeToString(ciphertext)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
