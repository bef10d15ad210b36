// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"go-book-api/config"
	"go-book-api/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setAuthTestConfig() {
	config.AppConfig.JWT.SecretKey = "test-secret-key"
	config.AppConfig.JWT.AccessTokenTTL = 15 * time.Minute
	config.AppConfig.JWT.RefreshTokenTTL = 60 * time.Second
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// Since HashPassword and CheckPasswordHash don't use any repository dependencies,
	// we can instantiate AuthService with nil repositories for this specific test.
	authService := NewAuthService(nil, nil)
	password := "mySecretPassword123"

	// 1. Test Hashing
	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	// 2. Test Successful Verification
	match := authService.CheckPasswordHash(password, hashedPassword)
	if !match {
		t.Errorf("authService.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	// 3. Test Failed Verification
	wrongPassword := "notMyPassword"
	match = authService.CheckPasswordHash(wrongPassword, hashedPassword)
	if match {
		t.Errorf("authService.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

func TestAuthService_GenerateAndVerifyJWT(t *testing.T) {
	setAuthTestConfig()
	authService := NewAuthService(nil, nil)

	t.Run("round trip preserves the subject", func(t *testing.T) {
		tokenString, err := authService.GenerateJWT("a@x.com")
		assert.NoError(t, err)

		subject, err := authService.VerifyJWT(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", subject)
	})

	t.Run("tampered token fails with invalid signature", func(t *testing.T) {
		tokenString, err := authService.GenerateJWT("a@x.com")
		assert.NoError(t, err)

		_, err = authService.VerifyJWT(tokenString + "x")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired token fails with expired error", func(t *testing.T) {
		config.AppConfig.JWT.AccessTokenTTL = -time.Minute
		defer setAuthTestConfig()

		tokenString, err := authService.GenerateJWT("a@x.com")
		assert.NoError(t, err)

		_, err = authService.VerifyJWT(tokenString)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestAuthService_Register(t *testing.T) {
	setAuthTestConfig()

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetUserByEmail", "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com"}, nil).Once()

		authService := NewAuthService(userRepo, NewRefreshTokenService(userRepo, new(mockTokenRepo)))

		_, err := authService.Register(model.RegisterRequest{Username: "adan", Email: "a@x.com", Password: "password123"})

		assert.ErrorIs(t, err, ErrDuplicateUser)
		userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("success returns both tokens", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)

		userRepo.On("GetUserByEmail", "a@x.com").Return(nil, sql.ErrNoRows).Once()
		userRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "a@x.com" && u.Password != "password123"
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*model.User).ID = 1
		}).Return(nil).Once()
		// Token issuance resolves the user again.
		userRepo.On("GetUserByEmail", "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com"}, nil).Once()
		tokenRepo.On("GetByUserID", 1).Return(nil, sql.ErrNoRows).Once()
		tokenRepo.On("Create", mock.Anything).Return(nil).Once()

		authService := NewAuthService(userRepo, NewRefreshTokenService(userRepo, tokenRepo))

		resp, err := authService.Register(model.RegisterRequest{Username: "adan", Email: "a@x.com", Password: "password123"})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		subject, err := authService.VerifyJWT(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", subject)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	setAuthTestConfig()
	authService := NewAuthService(nil, nil)
	hashed, err := authService.HashPassword("password123")
	assert.NoError(t, err)
	user := &model.User{ID: 1, Email: "a@x.com", Password: hashed}

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetUserByEmail", "ghost@x.com").Return(nil, sql.ErrNoRows).Once()

		svc := NewAuthService(userRepo, NewRefreshTokenService(userRepo, new(mockTokenRepo)))

		_, err := svc.Authenticate("ghost@x.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password yields the same invalid credentials", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Once()

		svc := NewAuthService(userRepo, NewRefreshTokenService(userRepo, new(mockTokenRepo)))

		_, err := svc.Authenticate("a@x.com", "wrongPassword1")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success embeds the email as the token subject", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Twice()
		tokenRepo.On("GetByUserID", 1).Return(nil, sql.ErrNoRows).Once()
		tokenRepo.On("Create", mock.Anything).Return(nil).Once()

		svc := NewAuthService(userRepo, NewRefreshTokenService(userRepo, tokenRepo))

		resp, err := svc.Authenticate("a@x.com", "password123")

		assert.NoError(t, err)
		subject, err := svc.VerifyJWT(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", subject)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	setAuthTestConfig()
	user := &model.User{ID: 1, Email: "a@x.com"}

	t.Run("issues a fresh access token and echoes the refresh token", func(t *testing.T) {
		live := &model.RefreshToken{ID: 3, UserID: 1, Token: "opaque-value", ExpiresAt: time.Now().Add(time.Minute)}
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		tokenRepo.On("GetByToken", "opaque-value").Return(live, nil).Once()
		userRepo.On("GetUserByID", 1).Return(user, nil).Once()

		svc := NewAuthService(userRepo, NewRefreshTokenService(userRepo, tokenRepo))

		loginToken, err := svc.GenerateJWT("a@x.com")
		assert.NoError(t, err)

		resp, err := svc.Refresh("opaque-value")

		assert.NoError(t, err)
		assert.Equal(t, "opaque-value", resp.RefreshToken)
		assert.NotEqual(t, loginToken, resp.AccessToken)

		subject, err := svc.VerifyJWT(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", subject)
	})

	t.Run("expired refresh token propagates without issuing anything", func(t *testing.T) {
		expired := &model.RefreshToken{ID: 3, UserID: 1, Token: "opaque-value", ExpiresAt: time.Now().Add(-time.Second)}
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		tokenRepo.On("GetByToken", "opaque-value").Return(expired, nil).Once()
		tokenRepo.On("Delete", 3).Return(nil).Once()

		svc := NewAuthService(userRepo, NewRefreshTokenService(userRepo, tokenRepo))

		resp, err := svc.Refresh("opaque-value")

		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.Nil(t, resp)
		userRepo.AssertNotCalled(t, "GetUserByID")
	})

	t.Run("unknown refresh token propagates not found", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		tokenRepo := new(mockTokenRepo)
		tokenRepo.On("GetByToken", "missing-value").Return(nil, sql.ErrNoRows).Once()

		svc := NewAuthService(userRepo, NewRefreshTokenService(userRepo, tokenRepo))

		_, err := svc.Refresh("missing-value")

		assert.ErrorIs(t, err, ErrTokenNotFound)
	})
}
