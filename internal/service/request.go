package service

import (
	"context"
	"fmt"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/sirupsen/logrus"
)

// CardRequestService records user-submitted block/close requests. It
// validates intent against the card's current state at submission time;
// whether an admin later approves is a separate, unvalidated status flip.
type CardRequestService struct {
	requests CardRequestRepository
	cards    CardRepository
	users    UserRepository
	log      *logrus.Logger
}

// NewCardRequestService initializes a new card request service.
func NewCardRequestService(requests CardRequestRepository, cards CardRepository, users UserRepository, log *logrus.Logger) *CardRequestService {
	return &CardRequestService{requests: requests, cards: cards, users: users, log: log}
}

// Create validates and persists a PENDING request against one of the
// caller's cards. BLOCK requires the card to be active. CLOSE requires a
// zero balance first, then active status.
func (s *CardRequestService) Create(ctx context.Context, cardID int64, requestType models.CardRequestType, username string) (*models.CardRequestDto, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.FindCardByIDAndOwner(ctx, cardID, user.ID)
	if err != nil {
		return nil, err
	}

	switch requestType {
	case models.RequestBlock:
		if card.Status != models.CardActive {
			return nil, fmt.Errorf("%w: only active cards can be blocked", models.ErrInvalidOperation)
		}
	case models.RequestClose:
		if card.Balance > 0 {
			return nil, fmt.Errorf("%w: cannot close card with non-zero balance", models.ErrInvalidOperation)
		}
		if card.Status != models.CardActive {
			return nil, fmt.Errorf("%w: only active cards can be closed", models.ErrInvalidOperation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown request type %q", models.ErrInvalidArgument, requestType)
	}

	req := &models.CardRequest{
		CardID:      card.ID,
		UserID:      user.ID,
		RequestType: requestType,
		Status:      models.RequestPending,
	}
	if err := s.requests.CreateCardRequest(ctx, req); err != nil {
		return nil, err
	}

	s.log.Infof("Card request %d (%s) created for card %d", req.ID, req.RequestType, card.ID)
	dto := req.ToDto()
	return &dto, nil
}

// List returns all of the caller's requests in creation order, regardless of
// status.
func (s *CardRequestService) List(ctx context.Context, username string) ([]models.CardRequestDto, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.FindCardRequestsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.CardRequestDto, 0, len(requests))
	for _, req := range requests {
		dtos = append(dtos, req.ToDto())
	}
	return dtos, nil
}
