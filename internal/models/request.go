package models

import (
	"fmt"
	"strings"
	"time"
)

// CardRequestType is the kind of action a user asks an admin to perform.
type CardRequestType string

const (
	RequestBlock CardRequestType = "BLOCK"
	RequestClose CardRequestType = "CLOSE"
)

// ParseCardRequestType converts a request-type literal. Unknown literals are
// rejected rather than defaulted.
func ParseCardRequestType(s string) (CardRequestType, error) {
	switch CardRequestType(strings.ToUpper(s)) {
	case RequestBlock:
		return RequestBlock, nil
	case RequestClose:
		return RequestClose, nil
	default:
		return "", fmt.Errorf("%w: unknown request type %q", ErrInvalidArgument, s)
	}
}

// CardRequestStatus is the decision state of a card request. PENDING is the
// only initial state; APPROVED and REJECTED are terminal.
type CardRequestStatus string

const (
	RequestPending  CardRequestStatus = "PENDING"
	RequestApproved CardRequestStatus = "APPROVED"
	RequestRejected CardRequestStatus = "REJECTED"
)

// ParseCardRequestStatus converts a status literal. Unknown literals are
// rejected rather than defaulted.
func ParseCardRequestStatus(s string) (CardRequestStatus, error) {
	switch CardRequestStatus(strings.ToUpper(s)) {
	case RequestPending:
		return RequestPending, nil
	case RequestApproved:
		return RequestApproved, nil
	case RequestRejected:
		return RequestRejected, nil
	default:
		return "", fmt.Errorf("%w: unknown request status %q", ErrInvalidArgument, s)
	}
}

// Terminal reports whether the status is a final admin decision.
func (s CardRequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// CardRequest records a user's intent to block or close one of their cards.
// Preconditions are validated when the request is submitted, not when an
// admin later decides it; the decision is a pure status flip.
type CardRequest struct {
	ID          int64             `json:"id"`
	CardID      int64             `json:"card_id"`
	UserID      int64             `json:"user_id"`
	RequestType CardRequestType   `json:"request_type"`
	Status      CardRequestStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CardRequestDto is the caller-facing projection of a card request.
type CardRequestDto struct {
	ID          int64  `json:"id"`
	CardID      int64  `json:"card_id"`
	RequestType string `json:"request_type"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// ToDto builds the display projection.
func (r *CardRequest) ToDto() CardRequestDto {
	return CardRequestDto{
		ID:          r.ID,
		CardID:      r.CardID,
		RequestType: string(r.RequestType),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
