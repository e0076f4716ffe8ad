package handler

import (
	"net/http"
)

// AdminListCards returns every card in the system.
func (h *Handler) AdminListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.admin.ListCards(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// AdminSetCardStatus force-sets a card's status from the ?status= literal.
func (h *Handler) AdminSetCardStatus(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.admin.SetCardStatus(r.Context(), cardID, statusLiteral(r)); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "card status updated"})
}

// AdminDeleteCard removes a card entirely.
func (h *Handler) AdminDeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.admin.DeleteCard(r.Context(), cardID); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "card deleted"})
}

// AdminListUsers returns every user in the system.
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// AdminSetUserStatus force-sets a user's status from the ?status= literal.
func (h *Handler) AdminSetUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.admin.SetUserStatus(r.Context(), userID, statusLiteral(r)); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user status updated"})
}

// AdminListRequests returns every card request in the system.
func (h *Handler) AdminListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.admin.ListRequests(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// AdminSetRequestStatus decides a card request from the ?status= literal.
func (h *Handler) AdminSetRequestStatus(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.admin.SetRequestStatus(r.Context(), requestID, statusLiteral(r)); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "request status updated"})
}

func statusLiteral(r *http.Request) string {
	return r.URL.Query().Get("status")
}
