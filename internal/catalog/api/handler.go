package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/catalog"
	"ms-booking/internal/models"
	"ms-booking/internal/utils"
)

type Handler struct {
	Catalog *catalog.Catalog
}

// ListEvents returns the catalog filtered by the search, category and
// sortBy query parameters. With no parameters it is a pass-through of the
// whole catalog in original order.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events := h.Catalog.GetFilteredEvents(q.Get("search"), q.Get("category"), q.Get("sortBy"))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("events", events))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	event := h.Catalog.GetEvent(eventID)
	if event == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("event not found", eventID))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event", event))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input models.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	id := h.Catalog.AddEvent(input)
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("event created", map[string]string{"id": id}))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var patch models.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	if !h.Catalog.UpdateEvent(eventID, patch) {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("event not found", eventID))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event updated", nil))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if !h.Catalog.DeleteEvent(eventID) {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("event not found", eventID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
