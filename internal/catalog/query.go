package catalog

import (
	"sort"
	"strings"

	"ms-booking/internal/models"
)

const (
	SortByDate  = "date"
	SortByTitle = "title"
)

// GetFilteredEvents derives a filtered, sorted view over a snapshot copy of
// the catalog; it never mutates catalog state.
//
// A non-empty searchTerm matches case-insensitively as a substring of the
// title, description or location (any one suffices). A non-empty category
// must match exactly. Both filters compose with AND. sortBy "date" or
// "title" sorts ascending lexicographically (dates sort chronologically
// because they are stored zero-padded); anything else keeps catalog order.
func (c *Catalog) GetFilteredEvents(searchTerm, category, sortBy string) []models.Event {
	events := c.Snapshot()

	if searchTerm != "" {
		search := strings.ToLower(searchTerm)
		filtered := events[:0]
		for _, event := range events {
			if strings.Contains(strings.ToLower(event.Title), search) ||
				strings.Contains(strings.ToLower(event.Description), search) ||
				strings.Contains(strings.ToLower(event.Location), search) {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	if category != "" {
		filtered := events[:0]
		for _, event := range events {
			if event.Category == category {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	switch sortBy {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Date < events[j].Date
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Title < events[j].Title
		})
	}

	return events
}
