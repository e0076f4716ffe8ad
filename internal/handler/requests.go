package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rudenman/Bank-REST/internal/models"
)

type createRequestBody struct {
	CardID      int64  `json:"card_id"`
	RequestType string `json:"request_type"`
}

// CreateRequest submits a block/close request for one of the caller's cards.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respondError(w, fmt.Errorf("%w: invalid request body", models.ErrInvalidArgument))
		return
	}

	requestType, err := models.ParseCardRequestType(body.RequestType)
	if err != nil {
		h.respondError(w, err)
		return
	}

	req, err := h.requests.Create(r.Context(), body.CardID, requestType, principal.Username)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

// ListRequests returns all of the caller's requests.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	requests, err := h.requests.List(r.Context(), principal.Username)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
