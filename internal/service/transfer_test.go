package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransferService(repo *RepoMock) *TransferService {
	return NewTransferService(repo, repo, newNoopLogger())
}

func TestTransferSuccess(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	fromCard := &models.Card{ID: 1, UserID: 7, Status: models.CardActive, Balance: 1000}
	toCard := &models.Card{ID: 2, UserID: 7, Status: models.CardActive, Balance: 250}

	repo.On("FindUserByUsername", mock.Anything, "alice").Return(testUser(), nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(1), int64(7)).Return(fromCard, nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(2), int64(7)).Return(toCard, nil)
	repo.On("TransferFunds", mock.Anything, int64(1), int64(2), int64(400)).Return(nil).Once()

	err := svc.Transfer(context.Background(), 1, 2, "alice", 400)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTransferInsufficientFunds(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	fromCard := &models.Card{ID: 1, UserID: 7, Balance: 100}
	toCard := &models.Card{ID: 2, UserID: 7, Balance: 0}

	repo.On("FindUserByUsername", mock.Anything, "alice").Return(testUser(), nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(1), int64(7)).Return(fromCard, nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(2), int64(7)).Return(toCard, nil)

	err := svc.Transfer(context.Background(), 1, 2, "alice", 101)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	// No money moves on a failed transfer.
	repo.AssertNotCalled(t, "TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferSameCard(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	card := &models.Card{ID: 1, UserID: 7, Balance: 1000}

	repo.On("FindUserByUsername", mock.Anything, "alice").Return(testUser(), nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(1), int64(7)).Return(card, nil)

	err := svc.Transfer(context.Background(), 1, 1, "alice", 100)
	assert.ErrorIs(t, err, models.ErrInvalidOperation)
	repo.AssertNotCalled(t, "TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferDifferentOwners(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	fromCard := &models.Card{ID: 1, UserID: 7, Balance: 1000}
	// Should be unreachable through owner-scoped lookups; the invariant is
	// still enforced.
	toCard := &models.Card{ID: 2, UserID: 8, Balance: 0}

	repo.On("FindUserByUsername", mock.Anything, "alice").Return(testUser(), nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(1), int64(7)).Return(fromCard, nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(2), int64(7)).Return(toCard, nil)

	err := svc.Transfer(context.Background(), 1, 2, "alice", 100)
	assert.ErrorIs(t, err, models.ErrInvalidOperation)
	repo.AssertNotCalled(t, "TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferNonPositiveAmount(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	fromCard := &models.Card{ID: 1, UserID: 7, Balance: 1000}
	toCard := &models.Card{ID: 2, UserID: 7, Balance: 0}

	repo.On("FindUserByUsername", mock.Anything, "alice").Return(testUser(), nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(1), int64(7)).Return(fromCard, nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(2), int64(7)).Return(toCard, nil)

	for _, amount := range []int64{0, -100} {
		err := svc.Transfer(context.Background(), 1, 2, "alice", amount)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	}
	repo.AssertNotCalled(t, "TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferMissingCards(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	toCard := &models.Card{ID: 2, UserID: 7, Balance: 0}

	repo.On("FindUserByUsername", mock.Anything, "alice").Return(testUser(), nil)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(99), int64(7)).Return(nil, models.ErrNotFound)
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(2), int64(7)).Return(toCard, nil)

	// Missing source card.
	err := svc.Transfer(context.Background(), 99, 2, "alice", 100)
	require.ErrorIs(t, err, models.ErrInvalidTransfer)
	assert.Contains(t, err.Error(), "source")

	// Missing target card.
	fromCard := &models.Card{ID: 1, UserID: 7, Balance: 1000}
	repo.On("FindCardByIDAndOwner", mock.Anything, int64(1), int64(7)).Return(fromCard, nil)
	err = svc.Transfer(context.Background(), 1, 99, "alice", 100)
	require.ErrorIs(t, err, models.ErrInvalidTransfer)
	assert.Contains(t, err.Error(), "target")
}

func TestTransferUnknownUser(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	repo.On("FindUserByUsername", mock.Anything, "ghost").Return(nil, models.ErrNotFound)

	err := svc.Transfer(context.Background(), 1, 2, "ghost", 100)
	assert.ErrorIs(t, err, models.ErrInvalidTransfer)
}

// Infrastructure failures on the user lookup must not be mistaken for a bad
// transfer request.
func TestTransferUserLookupFailure(t *testing.T) {
	repo := &RepoMock{}
	svc := newTransferService(repo)

	dbErr := errors.New("connection refused")
	repo.On("FindUserByUsername", mock.Anything, "alice").Return(nil, dbErr)

	err := svc.Transfer(context.Background(), 1, 2, "alice", 100)
	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, models.ErrInvalidTransfer)
}
