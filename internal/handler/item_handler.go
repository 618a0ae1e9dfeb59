package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"items-api/internal/model"
	"items-api/internal/service"

	"github.com/rs/zerolog"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "item").Logger(),
	}
}

// List handles GET /items requests with skip/limit pagination.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, ok := h.queryInt(w, r, "skip", 0)
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, r, "limit", 10)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to retrieve items", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /items/{id} requests.
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to retrieve item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /items requests.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /items/{id} requests. Only fields present in the
// body are applied.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /items/{id} requests.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "failed to delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /items/stats requests.
func (h *ItemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to compute item stats", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// writeServiceError maps service errors onto HTTP status codes.
func (h *ItemHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *model.ValidationError
	switch {
	case errors.Is(err, model.ErrItemNotFound):
		writeError(w, r, http.StatusNotFound, "item not found", h.logger)
	case errors.As(err, &validationErr):
		writeError(w, r, http.StatusUnprocessableEntity, validationErr.Message, h.logger)
	default:
		writeError(w, r, http.StatusInternalServerError, fallback, h.logger)
	}
}

// pathID extracts the integer id from /items/{id}. A malformed id is a
// schema violation, reported as 422 like any other validation failure.
func (h *ItemHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/items/")
	raw = strings.TrimSuffix(raw, "/")

	if raw == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "item id is required", h.logger)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "item id must be an integer", h.logger)
		return 0, false
	}

	return id, true
}

// queryInt parses an optional integer query parameter.
func (h *ItemHandler) queryInt(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid "+name+" parameter", h.logger)
		return 0, false
	}

	return value, true
}
