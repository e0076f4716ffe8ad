package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardStatus(t *testing.T) {
	status, err := ParseCardStatus("ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, CardActive, status)

	// Literals are matched case-insensitively.
	status, err = ParseCardStatus("blocked")
	require.NoError(t, err)
	assert.Equal(t, CardBlocked, status)

	_, err = ParseCardStatus("FROZEN")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseCardStatus("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseUserStatus(t *testing.T) {
	status, err := ParseUserStatus("expired")
	require.NoError(t, err)
	assert.Equal(t, UserExpired, status)

	_, err = ParseUserStatus("DELETED")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUserStatusBlocksCards(t *testing.T) {
	assert.False(t, UserActive.BlocksCards())
	assert.True(t, UserBlocked.BlocksCards())
	assert.True(t, UserExpired.BlocksCards())
}

func TestParseCardRequestType(t *testing.T) {
	rt, err := ParseCardRequestType("block")
	require.NoError(t, err)
	assert.Equal(t, RequestBlock, rt)

	rt, err = ParseCardRequestType("CLOSE")
	require.NoError(t, err)
	assert.Equal(t, RequestClose, rt)

	_, err = ParseCardRequestType("REISSUE")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseCardRequestStatus(t *testing.T) {
	status, err := ParseCardRequestStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, RequestApproved, status)

	_, err = ParseCardRequestStatus("MAYBE")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestPending.Terminal())
	assert.True(t, RequestApproved.Terminal())
	assert.True(t, RequestRejected.Terminal())
}
