package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/auth"
	"ms-booking/internal/ledger"
	"ms-booking/internal/ledger/qr"
	"ms-booking/internal/utils"
)

type Handler struct {
	Ledger *ledger.Ledger
	QR     *qr.Generator
}

// CreateBooking reserves a slot on behalf of the authenticated user. A
// capacity-gate rejection surfaces as 409, not as a server error.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("not authenticated", ""))
		return
	}

	var req struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if req.EventID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("eventId is required", ""))
		return
	}

	id, ok := h.Ledger.CreateBooking(req.EventID, user.ID, user.Name, user.Email)
	if !ok {
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("event is sold out or does not exist", req.EventID))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("booking created", map[string]string{"id": id}))
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	booking := h.Ledger.GetBooking(bookingID)
	if booking == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("booking not found", bookingID))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("booking", booking))
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	if !h.Ledger.CancelBooking(bookingID) {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("booking not found", bookingID))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("booking cancelled", nil))
}

// UserBookings lists the authenticated user's bookings.
func (h *Handler) UserBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("not authenticated", ""))
		return
	}
	bookings := h.Ledger.GetUserBookings(user.ID)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("bookings", bookings))
}

// EventBookings lists all bookings for an event (admin view).
func (h *Handler) EventBookings(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	bookings := h.Ledger.GetEventBookings(eventID)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("bookings", bookings))
}

// BookingQR serves the booking confirmation as a PNG QR code.
func (h *Handler) BookingQR(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	booking := h.Ledger.GetBooking(bookingID)
	if booking == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("booking not found", bookingID))
		return
	}

	png, err := h.QR.ConfirmationQR(*booking)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("failed to generate QR", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
