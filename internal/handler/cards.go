package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rudenman/Bank-REST/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type topUpRequest struct {
	Amount int64 `json:"amount"`
}

type transferRequest struct {
	FromCardID int64 `json:"from_card_id"`
	ToCardID   int64 `json:"to_card_id"`
	Amount     int64 `json:"amount"`
}

// CreateCard issues a new card for the caller.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	card, err := h.cards.Create(r.Context(), principal.Username)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// ListCards returns a page of the caller's cards.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", defaultPageSize)
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	if page < 0 {
		page = 0
	}

	cards, err := h.cards.List(r.Context(), principal.Username, size, page*size)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// GetCard returns one of the caller's cards.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	cardID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	card, err := h.cards.Get(r.Context(), cardID, principal.Username)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// TopUpCard credits one of the caller's cards.
func (h *Handler) TopUpCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	cardID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req topUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: invalid request body", models.ErrInvalidArgument))
		return
	}

	if err := h.cards.TopUp(r.Context(), cardID, principal.Username, req.Amount); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "card topped up successfully"})
}

// Transfer moves funds between two of the caller's cards.
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: invalid request body", models.ErrInvalidArgument))
		return
	}

	if err := h.transfers.Transfer(r.Context(), req.FromCardID, req.ToCardID, principal.Username, req.Amount); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "transfer completed"})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return val
}
