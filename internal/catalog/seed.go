package catalog

import (
	"time"

	"ms-booking/internal/models"
)

// SampleEvents returns the demo catalog installed on first run.
func SampleEvents() []models.Event {
	now := time.Now().UTC()
	return []models.Event{
		{
			ID:             "1",
			Title:          "Tech Conference 2025",
			Description:    "Join us for the biggest tech conference of the year with speakers from around the world.",
			Date:           "2025-03-15",
			Time:           "09:00",
			Location:       "San Francisco Convention Center",
			Capacity:       500,
			RemainingSlots: 375,
			Image:          "https://images.pexels.com/photos/2774556/pexels-photo-2774556.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:       "Technology",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "2",
			Title:          "Art Exhibition Opening",
			Description:    "Featuring works from contemporary artists exploring themes of nature and technology.",
			Date:           "2025-04-10",
			Time:           "18:00",
			Location:       "Modern Art Gallery",
			Capacity:       200,
			RemainingSlots: 125,
			Image:          "https://images.pexels.com/photos/1509534/pexels-photo-1509534.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:       "Art",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "3",
			Title:          "Music Festival",
			Description:    "Three days of amazing music across multiple stages with food and camping.",
			Date:           "2025-07-20",
			Time:           "12:00",
			Location:       "Riverside Park",
			Capacity:       3000,
			RemainingSlots: 1500,
			Image:          "https://images.pexels.com/photos/1105666/pexels-photo-1105666.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:       "Music",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "4",
			Title:          "Cooking Workshop",
			Description:    "Learn to cook authentic Italian dishes with our expert chef.",
			Date:           "2025-05-05",
			Time:           "16:00",
			Location:       "Culinary Institute",
			Capacity:       30,
			RemainingSlots: 12,
			Image:          "https://images.pexels.com/photos/5907591/pexels-photo-5907591.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:       "Food",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

// SeedIfEmpty installs the sample events when no snapshot was restored.
func (c *Catalog) SeedIfEmpty() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.events) > 0 {
		return
	}
	c.events = SampleEvents()
	c.persist()

	if c.log != nil {
		c.log.Info("CATALOG", "Seeded catalog with sample events")
	}
}
