package service

import (
	"context"
	"fmt"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/rudenman/Bank-REST/internal/utils"
	"github.com/sirupsen/logrus"
)

// Notifier delivers out-of-band notifications. Delivery failures are logged
// by the caller and never fail the business operation.
type Notifier interface {
	RequestDecided(to, username string, requestID int64, requestType, status string) error
	TopUpReceipt(to, username string, cardID, amount int64) error
}

// AdminService is the administrative override surface: global listings and
// unconditional status transitions.
type AdminService struct {
	users    UserRepository
	cards    CardRepository
	requests CardRequestRepository
	vault    *utils.Vault
	notifier Notifier
	log      *logrus.Logger
}

// NewAdminService initializes a new admin service. notifier may be nil when
// notifications are not configured.
func NewAdminService(users UserRepository, cards CardRepository, requests CardRequestRepository, vault *utils.Vault, notifier Notifier, log *logrus.Logger) *AdminService {
	return &AdminService{
		users:    users,
		cards:    cards,
		requests: requests,
		vault:    vault,
		notifier: notifier,
		log:      log,
	}
}

// ListCards returns the display projection of every card. A card whose
// number cannot be decrypted fails only its own record.
func (s *AdminService) ListCards(ctx context.Context) ([]models.CardDto, error) {
	cards, err := s.cards.ListCards(ctx)
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

// SetCardStatus force-sets a card's status to ACTIVE or BLOCKED. EXPIRED is
// not a legal target: cards expire only through the expiry sweep.
func (s *AdminService) SetCardStatus(ctx context.Context, cardID int64, statusLiteral string) error {
	status, err := models.ParseCardStatus(statusLiteral)
	if err != nil {
		return err
	}
	if status == models.CardExpired {
		return fmt.Errorf("%w: cards cannot be expired manually", models.ErrInvalidArgument)
	}

	card, err := s.cards.FindCardByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card.Status == models.CardExpired {
		return fmt.Errorf("%w: card %d is expired", models.ErrInvalidOperation, cardID)
	}

	if err := s.cards.SetCardStatus(ctx, cardID, status); err != nil {
		return err
	}
	s.log.Infof("Card %d status set to %s", cardID, status)
	return nil
}

// DeleteCard removes a card entirely.
func (s *AdminService) DeleteCard(ctx context.Context, cardID int64) error {
	if err := s.cards.DeleteCard(ctx, cardID); err != nil {
		return err
	}
	s.log.Infof("Card %d deleted", cardID)
	return nil
}

// ListUsers returns all users.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.UserDto, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.UserDto, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, user.ToDto())
	}
	return dtos, nil
}

// SetUserStatus force-sets a user's status. Setting BLOCKED or EXPIRED
// force-blocks all of the user's cards in the same atomic unit.
func (s *AdminService) SetUserStatus(ctx context.Context, userID int64, statusLiteral string) error {
	status, err := models.ParseUserStatus(statusLiteral)
	if err != nil {
		return err
	}

	if err := s.users.SetUserStatus(ctx, userID, status, status.BlocksCards()); err != nil {
		return err
	}
	s.log.Infof("User %d status set to %s", userID, status)
	return nil
}

// ListRequests returns all card requests.
func (s *AdminService) ListRequests(ctx context.Context) ([]models.CardRequestDto, error) {
	requests, err := s.requests.ListCardRequests(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.CardRequestDto, 0, len(requests))
	for _, req := range requests {
		dtos = append(dtos, req.ToDto())
	}
	return dtos, nil
}

// SetRequestStatus decides a pending card request. The decision is a pure
// status flip: the requested block/close is not executed or re-validated
// here, and a decided request cannot be decided again.
func (s *AdminService) SetRequestStatus(ctx context.Context, requestID int64, statusLiteral string) error {
	status, err := models.ParseCardRequestStatus(statusLiteral)
	if err != nil {
		return err
	}

	req, err := s.requests.FindCardRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status.Terminal() {
		return fmt.Errorf("%w: request %d is already decided", models.ErrInvalidOperation, requestID)
	}

	if err := s.requests.SetCardRequestStatus(ctx, requestID, status); err != nil {
		return err
	}
	s.log.Infof("Card request %d status set to %s", requestID, status)

	if s.notifier != nil && status.Terminal() {
		if user, err := s.users.FindUserByID(ctx, req.UserID); err == nil {
			if err := s.notifier.RequestDecided(user.Email, user.Username, req.ID,
				string(req.RequestType), string(status)); err != nil {
				s.log.Errorf("Failed to notify user %s about request %d: %v", user.Username, req.ID, err)
			}
		}
	}
	return nil
}
