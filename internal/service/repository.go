// Package service contains the business logic for card issuing, the card
// lifecycle, block/close requests, transfers and the administrative surface.
package service

import (
	"context"

	"github.com/rudenman/Bank-REST/internal/models"
)

// UserRepository defines the user persistence operations the services need.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	// SetUserStatus overwrites the status; when blockCards is set, all of the
	// user's cards are force-blocked atomically with the status change.
	SetUserStatus(ctx context.Context, userID int64, status models.UserStatus, blockCards bool) error
}

// CardRepository defines the card persistence operations the services need.
type CardRepository interface {
	CreateCard(ctx context.Context, card *models.Card) error
	ExistsCardWithNumber(ctx context.Context, encrypted string) (bool, error)
	FindCardByID(ctx context.Context, cardID int64) (*models.Card, error)
	FindCardByIDAndOwner(ctx context.Context, cardID, userID int64) (*models.Card, error)
	FindCardsByOwner(ctx context.Context, userID int64, limit, offset int) ([]*models.Card, error)
	ListCards(ctx context.Context) ([]*models.Card, error)
	TopUpCard(ctx context.Context, cardID, amount int64) error
	SetCardStatus(ctx context.Context, cardID int64, status models.CardStatus) error
	DeleteCard(ctx context.Context, cardID int64) error
	// TransferFunds debits and credits the two cards as a single atomic unit,
	// re-checking sufficiency under row locks.
	TransferFunds(ctx context.Context, fromCardID, toCardID, amount int64) error
	MarkExpiredCards(ctx context.Context) (int64, error)
}

// CardRequestRepository defines the card-request persistence operations.
type CardRequestRepository interface {
	CreateCardRequest(ctx context.Context, req *models.CardRequest) error
	FindCardRequestByID(ctx context.Context, requestID int64) (*models.CardRequest, error)
	FindCardRequestsByUser(ctx context.Context, userID int64) ([]*models.CardRequest, error)
	ListCardRequests(ctx context.Context) ([]*models.CardRequest, error)
	SetCardRequestStatus(ctx context.Context, requestID int64, status models.CardRequestStatus) error
}
