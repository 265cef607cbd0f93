package qr_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/ledger/qr"
	"ms-booking/internal/models"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestConfirmationQR_ProducesPNG(t *testing.T) {
	g := qr.NewGenerator("test-secret")

	booking := models.Booking{
		ID:          "booking-1",
		EventID:     "1",
		UserID:      "client-1",
		UserName:    "Client User",
		UserEmail:   "client@example.com",
		BookingDate: time.Now().UTC(),
		Status:      models.BookingConfirmed,
	}

	png, err := g.ConfirmationQR(booking)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG image")
}

func TestConfirmationQR_PayloadVariesPerCall(t *testing.T) {
	g := qr.NewGenerator("test-secret")
	booking := models.Booking{ID: "booking-1", EventID: "1", Status: models.BookingConfirmed}

	first, err := g.ConfirmationQR(booking)
	require.NoError(t, err)
	second, err := g.ConfirmationQR(booking)
	require.NoError(t, err)

	// The random IV makes each encrypted payload unique.
	assert.NotEqual(t, first, second)
}
