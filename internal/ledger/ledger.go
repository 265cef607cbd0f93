package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/storage"
)

// CapacityAdjuster is the slice of the catalog the ledger is allowed to
// touch. The ledger never mutates event fields directly.
type CapacityAdjuster interface {
	DecreaseCapacity(id string) bool
	IncreaseCapacity(id string) bool
}

// Publisher streams booking lifecycle events. Publish failures are logged
// and never fail the booking operation.
type Publisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishBookingCancelled(booking models.Booking) error
}

// Ledger owns the booking collection. Create and cancel are two-step:
// the catalog capacity adjustment runs first, then the ledger mutates its
// own state. There is no rollback across the two stores; the capacity gate
// is authoritative for creation and cancellation is best-effort.
type Ledger struct {
	mu       sync.RWMutex
	bookings []models.Booking
	catalog  CapacityAdjuster
	store    storage.Store
	events   Publisher
	log      *logger.Logger
}

func New(catalog CapacityAdjuster, store storage.Store, events Publisher, log *logger.Logger) *Ledger {
	return &Ledger{catalog: catalog, store: store, events: events, log: log}
}

// LoadSnapshot restores the collection from the snapshot store.
func (l *Ledger) LoadSnapshot(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	data, err := l.store.Load(ctx, storage.BookingKey)
	if err != nil {
		return fmt.Errorf("failed to load booking snapshot: %w", err)
	}
	if data == nil {
		return nil
	}

	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return fmt.Errorf("failed to decode booking snapshot: %w", err)
	}

	l.mu.Lock()
	l.bookings = bookings
	l.mu.Unlock()
	return nil
}

// persist must be called with the write lock held.
func (l *Ledger) persist() {
	if l.store == nil {
		return
	}
	data, err := json.Marshal(l.bookings)
	if err != nil {
		if l.log != nil {
			l.log.Error("BOOKING", fmt.Sprintf("Failed to encode booking snapshot: %v", err))
		}
		return
	}
	if err := l.store.Save(context.Background(), storage.BookingKey, data); err != nil {
		if l.log != nil {
			l.log.LogStorage("SAVE", storage.BookingKey, fmt.Sprintf("save failed: %v", err))
		}
	}
}

// find must be called with the lock held. Returns -1 when absent.
func (l *Ledger) find(id string) int {
	for i := range l.bookings {
		if l.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// GetBooking returns a copy of the booking, or nil if it does not exist.
func (l *Ledger) GetBooking(id string) *models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.find(id)
	if i < 0 {
		return nil
	}
	booking := l.bookings[i]
	return &booking
}

// GetUserBookings returns the user's bookings in insertion order.
func (l *Ledger) GetUserBookings(userID string) []models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bookings := []models.Booking{}
	for _, b := range l.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

// GetEventBookings returns the event's bookings in insertion order.
func (l *Ledger) GetEventBookings(eventID string) []models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bookings := []models.Booking{}
	for _, b := range l.bookings {
		if b.EventID == eventID {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

// CreateBooking reserves one slot on the event and records a confirmed
// booking for the given user snapshot. The capacity gate runs first: when
// DecreaseCapacity fails (unknown event or sold out), no booking is written
// and ok is false.
func (l *Ledger) CreateBooking(eventID, userID, userName, userEmail string) (string, bool) {
	if !l.catalog.DecreaseCapacity(eventID) {
		if l.log != nil {
			l.log.LogBooking("REJECT", eventID, "no remaining slots or unknown event")
		}
		return "", false
	}

	booking := models.Booking{
		ID:          uuid.NewString(),
		EventID:     eventID,
		UserID:      userID,
		UserName:    userName,
		UserEmail:   userEmail,
		BookingDate: time.Now().UTC(),
		Status:      models.BookingConfirmed,
	}

	l.mu.Lock()
	l.bookings = append(l.bookings, booking)
	l.persist()
	l.mu.Unlock()

	if l.log != nil {
		l.log.LogBooking("CREATE", booking.ID, fmt.Sprintf("event=%s user=%s", eventID, userID))
	}
	if l.events != nil {
		if err := l.events.PublishBookingCreated(booking); err != nil && l.log != nil {
			l.log.LogKafka("PUBLISH", "booking-created", fmt.Sprintf("publish failed: %v", err))
		}
	}
	return booking.ID, true
}

// CancelBooking releases the booking's slot and flips its status to
// cancelled. It fails only when the booking does not exist. The capacity
// release result is ignored, and there is no guard on the current status:
// cancelling an already-cancelled booking succeeds again and releases
// another slot.
func (l *Ledger) CancelBooking(id string) bool {
	l.mu.Lock()

	i := l.find(id)
	if i < 0 {
		l.mu.Unlock()
		return false
	}

	l.catalog.IncreaseCapacity(l.bookings[i].EventID)
	l.bookings[i].Status = models.BookingCancelled
	booking := l.bookings[i]
	l.persist()
	l.mu.Unlock()

	if l.log != nil {
		l.log.LogBooking("CANCEL", id, fmt.Sprintf("event=%s", booking.EventID))
	}
	if l.events != nil {
		if err := l.events.PublishBookingCancelled(booking); err != nil && l.log != nil {
			l.log.LogKafka("PUBLISH", "booking-cancelled", fmt.Sprintf("publish failed: %v", err))
		}
	}
	return true
}

// Count returns the number of bookings in the ledger.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bookings)
}
