package models

import (
	"fmt"
	"strings"
	"time"
)

// CardStatus is the lifecycle state of a card.
//
// Allowed transitions: ACTIVE <-> BLOCKED (admin-controlled), and
// ACTIVE/BLOCKED -> EXPIRED (expiry sweep only). EXPIRED is terminal.
type CardStatus string

const (
	CardActive  CardStatus = "ACTIVE"
	CardBlocked CardStatus = "BLOCKED"
	CardExpired CardStatus = "EXPIRED"
)

// ParseCardStatus converts a status literal into a CardStatus. Unknown
// literals are rejected rather than defaulted.
func ParseCardStatus(s string) (CardStatus, error) {
	switch CardStatus(strings.ToUpper(s)) {
	case CardActive:
		return CardActive, nil
	case CardBlocked:
		return CardBlocked, nil
	case CardExpired:
		return CardExpired, nil
	default:
		return "", fmt.Errorf("%w: unknown card status %q", ErrInvalidArgument, s)
	}
}

// Card represents a bank card. Balance is stored in minor currency units
// (e.g. kopecks) to keep arithmetic exact; the invariant balance >= 0 is
// enforced by every mutating operation. CardNumber holds the encrypted PAN,
// never the plaintext.
type Card struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	OwnerUsername string     `json:"-"` // joined from users for display
	CardNumber    string     `json:"-"` // encrypted, not serialized
	ExpiryDate    time.Time  `json:"expiry_date"`
	Status        CardStatus `json:"status"`
	Balance       int64      `json:"balance"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CardDto is the caller-facing projection of a card. The card number is
// masked down to the last four digits.
type CardDto struct {
	ID               int64  `json:"id"`
	MaskedCardNumber string `json:"masked_card_number"`
	OwnerName        string `json:"owner_name"`
	ExpiryDate       string `json:"expiry_date"`
	Status           string `json:"status"`
	Balance          int64  `json:"balance"`
	CreatedAt        string `json:"created_at"`
}

// ToDto builds the display projection from an already-masked card number.
func (c *Card) ToDto(maskedNumber string) CardDto {
	return CardDto{
		ID:               c.ID,
		MaskedCardNumber: maskedNumber,
		OwnerName:        c.OwnerUsername,
		ExpiryDate:       c.ExpiryDate.Format("2006-01-02"),
		Status:           string(c.Status),
		Balance:          c.Balance,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}
