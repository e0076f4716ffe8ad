package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newAuthService(repo *RepoMock) *AuthService {
	return NewAuthService(repo, newNoopLogger(), testJWTSecret, time.Hour)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &RepoMock{}
	svc := newAuthService(repo)

	var created *models.User
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice" &&
			u.Role == models.RoleUser &&
			u.Status == models.UserActive
	})).Return(nil).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.User)
		created.ID = 7
	}).Once()

	dto, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Username)

	require.NotNil(t, created)
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	repo := &RepoMock{}
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "", "a@b.c", "pw")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := testUser()
	user.PasswordHash = string(hash)

	repo := &RepoMock{}
	svc := newAuthService(repo)
	repo.On("FindUserByUsername", mock.Anything, "alice").Return(user, nil)

	tokenString, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "USER", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := testUser()
	user.PasswordHash = string(hash)

	repo := &RepoMock{}
	svc := newAuthService(repo)
	repo.On("FindUserByUsername", mock.Anything, "alice").Return(user, nil)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.Error(t, err)
}

func TestLoginBlockedUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := testUser()
	user.PasswordHash = string(hash)
	user.Status = models.UserBlocked

	repo := &RepoMock{}
	svc := newAuthService(repo)
	repo.On("FindUserByUsername", mock.Anything, "alice").Return(user, nil)

	_, err = svc.Login(context.Background(), "alice", "s3cret")
	assert.Error(t, err)
}
