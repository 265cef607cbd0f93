package catalog

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

// Catalog owns the event collection and its capacity counters. Events are
// kept in insertion order; all mutations run under the write lock, which
// also serializes the capacity adjustments against each other.
//
// Every successful mutation persists the whole collection through the
// snapshot store. A failed save is logged and the in-memory mutation
// stands; the next save writes the full state again.
type Catalog struct {
	mu     sync.RWMutex
	events []models.Event
	store  storage.Store
	log    *logger.Logger
}

func New(store storage.Store, log *logger.Logger) *Catalog {
	return &Catalog{store: store, log: log}
}

// LoadSnapshot restores the collection from the snapshot store. A missing
// snapshot leaves the catalog empty.
func (c *Catalog) LoadSnapshot(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	data, err := c.store.Load(ctx, storage.EventKey)
	if err != nil {
		return fmt.Errorf("failed to load event snapshot: %w", err)
	}
	if data == nil {
		return nil
	}

	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to decode event snapshot: %w", err)
	}

	c.mu.Lock()
	c.events = events
	c.mu.Unlock()
	return nil
}

// persist must be called with the write lock held.
func (c *Catalog) persist() {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(c.events)
	if err != nil {
		if c.log != nil {
			c.log.Error("CATALOG", fmt.Sprintf("Failed to encode event snapshot: %v", err))
		}
		return
	}
	if err := c.store.Save(context.Background(), storage.EventKey, data); err != nil {
		if c.log != nil {
			c.log.LogStorage("SAVE", storage.EventKey, fmt.Sprintf("save failed: %v", err))
		}
	}
}

// find must be called with the lock held. Returns -1 when absent.
func (c *Catalog) find(id string) int {
	for i := range c.events {
		if c.events[i].ID == id {
			return i
		}
	}
	return -1
}

// GetEvent returns a copy of the event, or nil if it does not exist.
func (c *Catalog) GetEvent(id string) *models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.find(id)
	if i < 0 {
		return nil
	}
	event := c.events[i]
	return &event
}

// AddEvent appends a new event with a generated ID and a full remaining-slot
// counter, and returns the ID. Validation is the caller's concern.
func (c *Catalog) AddEvent(input models.EventInput) string {
	now := time.Now().UTC()
	event := models.Event{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Description:    input.Description,
		Date:           input.Date,
		Time:           input.Time,
		Location:       input.Location,
		Capacity:       input.Capacity,
		RemainingSlots: input.Capacity,
		Image:          input.Image,
		Category:       input.Category,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)
	c.persist()

	if c.log != nil {
		c.log.LogCatalog("ADD", event.ID, fmt.Sprintf("%q capacity=%d", event.Title, event.Capacity))
	}
	return event.ID
}

// UpdateEvent merges the non-nil patch fields into the event. When the
// capacity changes, the remaining-slot counter is rebased so that already
// consumed slots stay consumed:
//
//	remaining = newCapacity - (oldCapacity - oldRemaining)
//
// The result is intentionally not clamped; shrinking capacity below the
// booked count drives the counter negative.
func (c *Catalog) UpdateEvent(id string, patch models.EventPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id)
	if i < 0 {
		return false
	}
	event := &c.events[i]

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Time != nil {
		event.Time = *patch.Time
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Image != nil {
		event.Image = *patch.Image
	}
	if patch.Category != nil {
		event.Category = *patch.Category
	}
	if patch.Capacity != nil {
		consumed := event.Capacity - event.RemainingSlots
		event.Capacity = *patch.Capacity
		event.RemainingSlots = *patch.Capacity - consumed
	}
	event.UpdatedAt = time.Now().UTC()

	c.persist()

	if c.log != nil {
		c.log.LogCatalog("UPDATE", id, fmt.Sprintf("capacity=%d remaining=%d", event.Capacity, event.RemainingSlots))
	}
	return true
}

// DeleteEvent removes the event. Bookings referencing it are left in place
// and surface as "event not found" at read time.
func (c *Catalog) DeleteEvent(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id)
	if i < 0 {
		return false
	}
	c.events = append(c.events[:i], c.events[i+1:]...)
	c.persist()

	if c.log != nil {
		c.log.LogCatalog("DELETE", id, "event removed")
	}
	return true
}

// DecreaseCapacity is the reservation primitive and the sole gate against
// overbooking. It fails without mutation when the event is missing or has
// no remaining slots.
func (c *Catalog) DecreaseCapacity(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id)
	if i < 0 || c.events[i].RemainingSlots <= 0 {
		return false
	}
	c.events[i].RemainingSlots--
	c.events[i].UpdatedAt = time.Now().UTC()
	c.persist()
	return true
}

// IncreaseCapacity is the release primitive used on cancellation. It fails
// without mutation when the event is missing or already at full capacity.
func (c *Catalog) IncreaseCapacity(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id)
	if i < 0 || c.events[i].RemainingSlots >= c.events[i].Capacity {
		return false
	}
	c.events[i].RemainingSlots++
	c.events[i].UpdatedAt = time.Now().UTC()
	c.persist()
	return true
}

// Snapshot returns a copy of the collection in catalog order.
func (c *Catalog) Snapshot() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]models.Event, len(c.events))
	copy(events, c.events)
	return events
}

// Count returns the number of events in the catalog.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
