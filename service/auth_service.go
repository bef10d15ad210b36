package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-book-api/config"
	"go-book-api/logger"
	"go-book-api/model"
	"go-book-api/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUser      = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSignature   = errors.New("invalid access token")
)

// AuthService composes the user store, the JWT signer and the refresh token
// lifecycle into the register, authenticate and refresh flows.
type AuthService struct {
	userRepo     repository.IUserRepository
	tokenService *RefreshTokenService
}

func NewAuthService(userRepo repository.IUserRepository, tokenService *RefreshTokenService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func getJwtKey() []byte {
	return []byte(config.AppConfig.JWT.SecretKey)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateJWT signs a short-lived access token for the given subject.
// The jti claim makes every token unique, even two signed within the
// same second.
func (s *AuthService) GenerateJWT(email string) (string, error) {
	now := time.Now()
	expirationTime := now.Add(config.AppConfig.JWT.AccessTokenTTL)

	claims := &jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getJwtKey())
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// VerifyJWT validates an access token's signature and expiry and returns
// the embedded subject. No store lookup is involved.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return getJwtKey(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidSignature
	}
	if !token.Valid {
		return "", ErrInvalidSignature
	}

	return claims.Subject, nil
}

// Register creates a new user and issues the same token pair a login would.
func (s *AuthService) Register(req model.RegisterRequest) (*model.AuthResponse, error) {
	if _, err := s.userRepo.GetUserByEmail(req.Email); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	logger.Log.WithField("email", user.Email).Info("Registered new user")

	return s.issueTokens(user.Email)
}

// Authenticate verifies the password and issues a token pair. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user.Email)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated: the presented value is echoed back.
func (s *AuthService) Refresh(refreshTokenValue string) (*model.AuthResponse, error) {
	refreshToken, err := s.tokenService.VerifyRefreshToken(refreshTokenValue)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(refreshToken.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	accessToken, err := s.GenerateJWT(user.Email)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
	}, nil
}

func (s *AuthService) issueTokens(email string) (*model.AuthResponse, error) {
	accessToken, err := s.GenerateJWT(email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenService.CreateRefreshToken(email)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
	}, nil
}
