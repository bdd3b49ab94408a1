package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wanderlog/internal/entity"
	"wanderlog/internal/repo/persistent"
	"wanderlog/pkg/jwt"
	"wanderlog/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	loginLinkPrefix = "otp:"
	loginLinkTTL    = 15 * time.Minute
	revokedPrefix   = "revoked:"
)

var ErrInvalidLoginLink = errors.New("sign-in link is invalid or expired")

// TokenStore holds short-lived auth artifacts: one-time sign-in tokens
// and revoked JWTs.
type TokenStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) bool
}

type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	RequestLoginLink(ctx context.Context, email string) (string, error)
	RedeemLoginLink(ctx context.Context, token string) (*entity.User, string, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	IsRevoked(token string) bool
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	tokens     TokenStore
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	tokens TokenStore,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, email, username, password string) (*entity.User, string, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("user with this email already exists")
	}
	if _, err := uc.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, "", fmt.Errorf("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// RequestLoginLink issues a single-use sign-in token for the account.
// Delivering the link (email) is outside this service; the token is
// returned to the transport layer.
func (uc *authUseCase) RequestLoginLink(ctx context.Context, email string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("no account for this email")
	}

	token := uuid.New().String()
	if err := uc.tokens.Set(ctx, loginLinkPrefix+token, user.ID, loginLinkTTL); err != nil {
		uc.logger.Error("Failed to store sign-in token: %v", err)
		return "", fmt.Errorf("failed to create sign-in link")
	}

	return token, nil
}

func (uc *authUseCase) RedeemLoginLink(ctx context.Context, token string) (*entity.User, string, error) {
	userID, err := uc.tokens.GetDel(ctx, loginLinkPrefix+token)
	if err != nil || userID == "" {
		return nil, "", ErrInvalidLoginLink
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", ErrInvalidLoginLink
	}

	jwtToken, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, jwtToken, nil
}

// SignOut denylists the token for its remaining lifetime.
func (uc *authUseCase) SignOut(ctx context.Context, token string) error {
	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := uc.tokens.Set(ctx, revokedPrefix+token, "1", ttl); err != nil {
		uc.logger.Error("Failed to revoke token: %v", err)
		return fmt.Errorf("failed to sign out")
	}
	return nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// IsRevoked satisfies the auth middleware's denylist check.
func (uc *authUseCase) IsRevoked(token string) bool {
	return uc.tokens.Exists(context.Background(), revokedPrefix+token)
}

func (uc *authUseCase) issueToken(user *entity.User) (string, error) {
	token, err := uc.jwtService.GenerateToken(user.ID, "admin")
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return "", fmt.Errorf("failed to generate token")
	}
	return token, nil
}
