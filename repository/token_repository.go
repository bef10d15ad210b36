// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"go-book-api/logger"
	"go-book-api/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	GetByToken(tokenValue string) (*model.RefreshToken, error)
	GetByUserID(userID int) (*model.RefreshToken, error)
	Delete(id int) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record into the database.
// The UNIQUE constraint on user_id rejects a second live token for the
// same user; callers translate that conflict into a re-read.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, token.UserID, token.Token, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByToken retrieves a refresh token by its exact opaque value.
func (r *TokenRepository) GetByToken(tokenValue string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT id, user_id, token, expires_at, created_at FROM refresh_tokens WHERE token = $1`
	err := r.DB.QueryRow(query, tokenValue).Scan(&token.ID, &token.UserID, &token.Token, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get refresh token query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return token, nil
}

// GetByUserID retrieves the refresh token owned by a user, if any.
func (r *TokenRepository) GetByUserID(userID int) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT id, user_id, token, expires_at, created_at FROM refresh_tokens WHERE user_id = $1`
	err := r.DB.QueryRow(query, userID).Scan(&token.ID, &token.UserID, &token.Token, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("user_id", userID).WithError(err).Error("Failed to execute get refresh token by user query")
		}
		return nil, err
	}
	return token, nil
}

// Delete removes a refresh token record by its primary key.
func (r *TokenRepository) Delete(id int) error {
	log := logger.Log.WithField("token_id", id)
	log.Info("Executing query to delete refresh token")

	query := `DELETE FROM refresh_tokens WHERE id = $1`
	_, err := r.DB.Exec(query, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}
