package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CardExpiryService runs the expiry sweep: a bulk transition of every card
// whose expiry date has passed into EXPIRED.
type CardExpiryService struct {
	cards CardRepository
	log   *logrus.Logger
}

// NewCardExpiryService initializes a new expiry service.
func NewCardExpiryService(cards CardRepository, log *logrus.Logger) *CardExpiryService {
	return &CardExpiryService{cards: cards, log: log}
}

// MarkExpired expires all overdue cards in one bulk update and returns the
// affected count. Running it again without newly expired cards affects zero.
func (s *CardExpiryService) MarkExpired(ctx context.Context) (int64, error) {
	count, err := s.cards.MarkExpiredCards(ctx)
	if err != nil {
		s.log.Errorf("Expiry sweep failed: %v", err)
		return 0, err
	}
	s.log.Infof("Expiry sweep updated %d cards", count)
	return count, nil
}
