package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/sirupsen/logrus"
)

// TransferService moves funds between two cards owned by the same caller.
type TransferService struct {
	cards CardRepository
	users UserRepository
	log   *logrus.Logger
}

// NewTransferService initializes a new transfer service.
func NewTransferService(cards CardRepository, users UserRepository, log *logrus.Logger) *TransferService {
	return &TransferService{cards: cards, users: users, log: log}
}

// Transfer debits fromCardID and credits toCardID by exactly amount. Both
// cards must resolve under the caller's ownership; the missing side is named
// in the error. The debit/credit pair commits as one unit, so a failure
// leaves both balances untouched.
func (s *TransferService) Transfer(ctx context.Context, fromCardID, toCardID int64, username string, amount int64) error {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: user not found", models.ErrInvalidTransfer)
		}
		return err
	}

	fromCard, err := s.cards.FindCardByIDAndOwner(ctx, fromCardID, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: source card not found or access denied", models.ErrInvalidTransfer)
		}
		return err
	}
	toCard, err := s.cards.FindCardByIDAndOwner(ctx, toCardID, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: target card not found or access denied", models.ErrInvalidTransfer)
		}
		return err
	}

	if amount <= 0 {
		return fmt.Errorf("%w: transfer amount must be greater than zero", models.ErrInvalidArgument)
	}
	if fromCard.ID == toCard.ID {
		return fmt.Errorf("%w: cannot transfer to the same card", models.ErrInvalidOperation)
	}
	// Both cards were already scoped to the caller; this guards the
	// owner-equality invariant all the same.
	if fromCard.UserID != toCard.UserID {
		return fmt.Errorf("%w: cards must belong to the same user", models.ErrInvalidOperation)
	}
	if fromCard.Balance < amount {
		return fmt.Errorf("%w: insufficient funds on source card", models.ErrInsufficientFunds)
	}

	if err := s.cards.TransferFunds(ctx, fromCard.ID, toCard.ID, amount); err != nil {
		return err
	}

	s.log.Infof("Transferred %d from card %d to card %d", amount, fromCard.ID, toCard.ID)
	return nil
}
