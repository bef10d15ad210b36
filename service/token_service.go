// file: service/token_service.go

package service

import (
	"database/sql"
	"errors"
	"go-book-api/config"
	"go-book-api/logger"
	"go-book-api/model"
	"go-book-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokenService owns the refresh token lifecycle: issuing a token on
// login, returning the existing one on repeat logins, and deleting a token
// the moment verification observes it expired.
type RefreshTokenService struct {
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository

	// now is swapped out in tests to pin expiry instants.
	now func() time.Time
}

func NewRefreshTokenService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository) *RefreshTokenService {
	return &RefreshTokenService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		now:       time.Now,
	}
}

// CreateRefreshToken returns the user's refresh token, creating one if the
// user has none. Issuance is idempotent: a user who already owns a token
// gets that token back unchanged, so a plain re-login never rotates it.
func (s *RefreshTokenService) CreateRefreshToken(email string) (*model.RefreshToken, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	existing, err := s.tokenRepo.GetByUserID(user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	token := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(config.AppConfig.JWT.RefreshTokenTTL),
	}

	if err := s.tokenRepo.Create(token); err != nil {
		if isUniqueViolation(err) {
			// A concurrent login inserted the first token for this user
			// between our read and write. The winner's token is the one
			// to hand out.
			return s.tokenRepo.GetByUserID(user.ID)
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"expires_at": token.ExpiresAt,
	}).Info("Issued new refresh token")

	return token, nil
}

// VerifyRefreshToken looks up a refresh token by its opaque value and checks
// its expiry. An expired token is deleted before the error is returned, so
// the same value can never verify again.
func (s *RefreshTokenService) VerifyRefreshToken(tokenValue string) (*model.RefreshToken, error) {
	token, err := s.tokenRepo.GetByToken(tokenValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	// The boundary instant counts as expired.
	if !token.ExpiresAt.After(s.now()) {
		logger.Log.WithFields(logrus.Fields{
			"user_id":    token.UserID,
			"expires_at": token.ExpiresAt,
		}).Info("Refresh token expired, deleting record")

		if err := s.tokenRepo.Delete(token.ID); err != nil {
			return nil, err
		}
		return nil, ErrTokenExpired
	}

	return token, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
