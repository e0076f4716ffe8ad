package service

import (
	"context"
	"io"
	"testing"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/rudenman/Bank-REST/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// RepoMock implements UserRepository, CardRepository and
// CardRequestRepository for service tests.
type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *RepoMock) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) SetUserStatus(ctx context.Context, userID int64, status models.UserStatus, blockCards bool) error {
	return m.Called(ctx, userID, status, blockCards).Error(0)
}

func (m *RepoMock) CreateCard(ctx context.Context, card *models.Card) error {
	return m.Called(ctx, card).Error(0)
}

func (m *RepoMock) ExistsCardWithNumber(ctx context.Context, encrypted string) (bool, error) {
	args := m.Called(ctx, encrypted)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) FindCardByID(ctx context.Context, cardID int64) (*models.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *RepoMock) FindCardByIDAndOwner(ctx context.Context, cardID, userID int64) (*models.Card, error) {
	args := m.Called(ctx, cardID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *RepoMock) FindCardsByOwner(ctx context.Context, userID int64, limit, offset int) ([]*models.Card, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

func (m *RepoMock) ListCards(ctx context.Context) ([]*models.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

func (m *RepoMock) TopUpCard(ctx context.Context, cardID, amount int64) error {
	return m.Called(ctx, cardID, amount).Error(0)
}

func (m *RepoMock) SetCardStatus(ctx context.Context, cardID int64, status models.CardStatus) error {
	return m.Called(ctx, cardID, status).Error(0)
}

func (m *RepoMock) DeleteCard(ctx context.Context, cardID int64) error {
	return m.Called(ctx, cardID).Error(0)
}

func (m *RepoMock) TransferFunds(ctx context.Context, fromCardID, toCardID, amount int64) error {
	return m.Called(ctx, fromCardID, toCardID, amount).Error(0)
}

func (m *RepoMock) MarkExpiredCards(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CreateCardRequest(ctx context.Context, req *models.CardRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *RepoMock) FindCardRequestByID(ctx context.Context, requestID int64) (*models.CardRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardRequest), args.Error(1)
}

func (m *RepoMock) FindCardRequestsByUser(ctx context.Context, userID int64) ([]*models.CardRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CardRequest), args.Error(1)
}

func (m *RepoMock) ListCardRequests(ctx context.Context) ([]*models.CardRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CardRequest), args.Error(1)
}

func (m *RepoMock) SetCardRequestStatus(ctx context.Context, requestID int64, status models.CardRequestStatus) error {
	return m.Called(ctx, requestID, status).Error(0)
}

// NotifierMock implements Notifier.
type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) RequestDecided(to, username string, requestID int64, requestType, status string) error {
	return m.Called(to, username, requestID, requestType, status).Error(0)
}

func (m *NotifierMock) TopUpReceipt(to, username string, cardID, amount int64) error {
	return m.Called(to, username, cardID, amount).Error(0)
}

func newNoopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestVault(t *testing.T) *utils.Vault {
	t.Helper()
	vault, err := utils.NewVault([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewVault: %v", err)
	}
	return vault
}

func newTestGenerator(t *testing.T) *utils.Generator {
	t.Helper()
	gen, err := utils.NewGenerator("400000", 1000)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return gen
}
