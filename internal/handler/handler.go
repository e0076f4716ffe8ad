package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rudenman/Bank-REST/internal/middleware"
	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/rudenman/Bank-REST/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler exposes the service layer over HTTP.
type Handler struct {
	auth      *service.AuthService
	cards     *service.CardService
	transfers *service.TransferService
	requests  *service.CardRequestService
	admin     *service.AdminService
	log       *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(auth *service.AuthService, cards *service.CardService, transfers *service.TransferService, requests *service.CardRequestService, admin *service.AdminService, log *logrus.Logger) *Handler {
	return &Handler{
		auth:      auth,
		cards:     cards,
		transfers: transfers,
		requests:  requests,
		admin:     admin,
		log:       log,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors onto HTTP status codes.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrInvalidTransfer):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidOperation), errors.Is(err, models.ErrInsufficientFunds):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Errorf("Internal error: %v", err)
		respondJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// principal extracts the caller resolved by the auth middleware.
func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	return p, ok
}

// pathID parses the {id} path variable.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, models.ErrInvalidArgument
	}
	return id, nil
}
