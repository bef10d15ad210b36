// file: service/token_service_test.go

package service

import (
	"database/sql"
	"go-book-api/config"
	"go-book-api/model"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(token *model.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *mockTokenRepo) GetByToken(tokenValue string) (*model.RefreshToken, error) {
	args := m.Called(tokenValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}
func (m *mockTokenRepo) GetByUserID(userID int) (*model.RefreshToken, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}
func (m *mockTokenRepo) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestRefreshTokenService_CreateRefreshToken(t *testing.T) {
	config.AppConfig.JWT.RefreshTokenTTL = 60 * time.Second
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{ID: 1, Email: "a@x.com"}

	t.Run("issues a new token when the user has none", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Once()
		tokenRepo.On("GetByUserID", 1).Return(nil, sql.ErrNoRows).Once()
		tokenRepo.On("Create", mock.MatchedBy(func(tok *model.RefreshToken) bool {
			return tok.UserID == 1 && tok.Token != "" && tok.ExpiresAt.Equal(base.Add(60*time.Second))
		})).Return(nil).Once()

		svc := NewRefreshTokenService(userRepo, tokenRepo)
		svc.now = func() time.Time { return base }

		token, err := svc.CreateRefreshToken("a@x.com")

		assert.NoError(t, err)
		assert.NotNil(t, token)
		assert.True(t, token.ExpiresAt.After(base))
		tokenRepo.AssertExpectations(t)
	})

	t.Run("returns the existing token unchanged on repeat issuance", func(t *testing.T) {
		existing := &model.RefreshToken{ID: 7, UserID: 1, Token: "existing-value", ExpiresAt: base.Add(time.Minute)}
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Twice()
		tokenRepo.On("GetByUserID", 1).Return(existing, nil).Twice()

		svc := NewRefreshTokenService(userRepo, tokenRepo)

		first, err := svc.CreateRefreshToken("a@x.com")
		assert.NoError(t, err)
		second, err := svc.CreateRefreshToken("a@x.com")
		assert.NoError(t, err)

		assert.Equal(t, "existing-value", first.Token)
		assert.Equal(t, first.Token, second.Token)
		tokenRepo.AssertNotCalled(t, "Create")
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		userRepo.On("GetUserByEmail", "ghost@x.com").Return(nil, sql.ErrNoRows).Once()

		svc := NewRefreshTokenService(userRepo, tokenRepo)

		_, err := svc.CreateRefreshToken("ghost@x.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
		tokenRepo.AssertNotCalled(t, "Create")
	})

	t.Run("re-reads the winner after losing a concurrent first insert", func(t *testing.T) {
		winner := &model.RefreshToken{ID: 9, UserID: 1, Token: "winner-value", ExpiresAt: base.Add(time.Minute)}
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Once()
		tokenRepo.On("GetByUserID", 1).Return(nil, sql.ErrNoRows).Once()
		tokenRepo.On("Create", mock.Anything).Return(&pq.Error{Code: "23505"}).Once()
		tokenRepo.On("GetByUserID", 1).Return(winner, nil).Once()

		svc := NewRefreshTokenService(userRepo, tokenRepo)
		svc.now = func() time.Time { return base }

		token, err := svc.CreateRefreshToken("a@x.com")

		assert.NoError(t, err)
		assert.Equal(t, "winner-value", token.Token)
		tokenRepo.AssertExpectations(t)
	})
}

func TestRefreshTokenService_VerifyRefreshToken(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newToken := func() *model.RefreshToken {
		return &model.RefreshToken{ID: 3, UserID: 1, Token: "opaque-value", ExpiresAt: base.Add(60 * time.Second)}
	}

	t.Run("valid before the expiry instant", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		tokenRepo.On("GetByToken", "opaque-value").Return(newToken(), nil).Once()

		svc := NewRefreshTokenService(userRepo, tokenRepo)
		svc.now = func() time.Time { return base.Add(59999 * time.Millisecond) }

		token, err := svc.VerifyRefreshToken("opaque-value")

		assert.NoError(t, err)
		assert.Equal(t, 1, token.UserID)
		tokenRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("expired at exactly the boundary instant, record deleted", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		tokenRepo.On("GetByToken", "opaque-value").Return(newToken(), nil).Once()
		tokenRepo.On("Delete", 3).Return(nil).Once()

		svc := NewRefreshTokenService(userRepo, tokenRepo)
		svc.now = func() time.Time { return base.Add(60 * time.Second) }

		_, err := svc.VerifyRefreshToken("opaque-value")

		assert.ErrorIs(t, err, ErrTokenExpired)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("deleted token is gone on the next verification", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		tokenRepo.On("GetByToken", "opaque-value").Return(nil, sql.ErrNoRows).Once()

		svc := NewRefreshTokenService(userRepo, tokenRepo)
		svc.now = func() time.Time { return base.Add(60001 * time.Millisecond) }

		_, err := svc.VerifyRefreshToken("opaque-value")

		assert.ErrorIs(t, err, ErrTokenNotFound)
	})
}
