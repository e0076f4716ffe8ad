package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/rudenman/Bank-REST/internal/utils"
	"github.com/sirupsen/logrus"
)

// CardService owns card creation, display and top-up.
type CardService struct {
	cards         CardRepository
	users         UserRepository
	gen           *utils.Generator
	vault         *utils.Vault
	notifier      Notifier
	log           *logrus.Logger
	validityYears int
}

// NewCardService initializes a new card service. validityYears is the fixed
// period between issuing and expiry; notifier may be nil.
func NewCardService(cards CardRepository, users UserRepository, gen *utils.Generator, vault *utils.Vault, notifier Notifier, log *logrus.Logger, validityYears int) *CardService {
	return &CardService{
		cards:         cards,
		users:         users,
		gen:           gen,
		vault:         vault,
		notifier:      notifier,
		log:           log,
		validityYears: validityYears,
	}
}

// Create issues a new card for the user. Numbers are generated until one's
// ciphertext is not yet stored; the UNIQUE constraint on the encrypted
// number closes the race between the check and the insert, so a collision at
// insert time simply retries with the next number in the sequence.
func (s *CardService) Create(ctx context.Context, username string) (*models.CardDto, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	for {
		plainNumber := s.gen.Generate()
		encrypted, err := s.vault.Encrypt(plainNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt card number: %w", err)
		}

		exists, err := s.cards.ExistsCardWithNumber(ctx, encrypted)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		card := &models.Card{
			UserID:        user.ID,
			OwnerUsername: user.Username,
			CardNumber:    encrypted,
			ExpiryDate:    time.Now().AddDate(s.validityYears, 0, 0),
			Status:        models.CardActive,
			Balance:       0,
		}
		if err := s.cards.CreateCard(ctx, card); err != nil {
			if errors.Is(err, models.ErrDuplicatePan) {
				continue
			}
			return nil, err
		}

		s.log.Infof("Card %d created for user %s", card.ID, user.Username)
		dto := card.ToDto(utils.Mask(plainNumber))
		return &dto, nil
	}
}

// Get returns the display projection of one of the caller's cards. A card
// owned by someone else yields the same error as a missing card.
func (s *CardService) Get(ctx context.Context, cardID int64, username string) (*models.CardDto, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.FindCardByIDAndOwner(ctx, cardID, user.ID)
	if err != nil {
		return nil, err
	}

	plainNumber, err := s.vault.Decrypt(card.CardNumber)
	if err != nil {
		return nil, err
	}

	dto := card.ToDto(utils.Mask(plainNumber))
	return &dto, nil
}

// List returns a stable-ordered page of the caller's cards. A card whose
// number cannot be decrypted fails only its own record: it is dropped from
// the page and logged, never shown unmasked.
func (s *CardService) List(ctx context.Context, username string, limit, offset int) ([]models.CardDto, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.FindCardsByOwner(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.CardDto, 0, len(cards))
	for _, card := range cards {
		plainNumber, err := s.vault.Decrypt(card.CardNumber)
		if err != nil {
			s.log.Errorf("Failed to decrypt number of card %d: %v", card.ID, err)
			continue
		}
		dtos = append(dtos, card.ToDto(utils.Mask(plainNumber)))
	}
	return dtos, nil
}

// TopUp increments the balance of one of the caller's active cards.
func (s *CardService) TopUp(ctx context.Context, cardID int64, username string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: top-up amount must be greater than zero", models.ErrInvalidArgument)
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	card, err := s.cards.FindCardByIDAndOwner(ctx, cardID, user.ID)
	if err != nil {
		return err
	}
	if card.Status != models.CardActive {
		return fmt.Errorf("%w: card is not active", models.ErrInvalidOperation)
	}

	if err := s.cards.TopUpCard(ctx, cardID, amount); err != nil {
		return err
	}

	s.log.Infof("Card %d topped up by %d", cardID, amount)

	if s.notifier != nil {
		if err := s.notifier.TopUpReceipt(user.Email, user.Username, cardID, amount); err != nil {
			s.log.Errorf("Failed to send top-up receipt to %s: %v", user.Username, err)
		}
	}
	return nil
}
