package usecase

import (
	"context"
	"testing"
	"time"

	"wanderlog/internal/entity"
	"wanderlog/internal/repo/persistent"
	"wanderlog/pkg/jwt"
	"wanderlog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// memoryTokenStore is an in-memory TokenStore for tests.
type memoryTokenStore struct {
	values map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{values: map[string]string{}}
}

func (s *memoryTokenStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *memoryTokenStore) GetDel(ctx context.Context, key string) (string, error) {
	value := s.values[key]
	delete(s.values, key)
	return value, nil
}

func (s *memoryTokenStore) Exists(ctx context.Context, key string) bool {
	_, ok := s.values[key]
	return ok
}

func newAuthUseCase(repo persistent.UserRepository, tokens TokenStore) AuthUseCase {
	return NewAuthUseCase(repo, jwt.NewService("test-secret"), tokens, logger.New())
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUseCase(repo, newMemoryTokenStore())

	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, persistent.ErrUserNotFound)
	repo.On("GetByUsername", mock.Anything, "ana").Return(nil, persistent.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = "user-1"
		}).
		Return(nil)

	user, token, err := uc.Register(context.Background(), "ana@example.com", "ana", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)
	// Password hash is never returned
	assert.Empty(t, user.Password)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUseCase(repo, newMemoryTokenStore())

	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&entity.User{ID: "user-1"}, nil)

	_, _, err := uc.Register(context.Background(), "ana@example.com", "ana", "password123")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUseCase(repo, newMemoryTokenStore())

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&entity.User{ID: "user-1", Email: "ana@example.com", Password: string(hash)}, nil)

	user, token, err := uc.Login(context.Background(), "ana@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUseCase(repo, newMemoryTokenStore())

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&entity.User{ID: "user-1", Password: string(hash)}, nil)

	_, _, err := uc.Login(context.Background(), "ana@example.com", "nope")

	assert.Error(t, err)
}

func TestLoginLink_RoundTrip(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := newMemoryTokenStore()
	uc := newAuthUseCase(repo, tokens)

	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&entity.User{ID: "user-1"}, nil)
	repo.On("GetByID", mock.Anything, "user-1").Return(&entity.User{ID: "user-1"}, nil)

	link, err := uc.RequestLoginLink(context.Background(), "ana@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, link)

	user, token, err := uc.RedeemLoginLink(context.Background(), link)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)

	// The link is single use
	_, _, err = uc.RedeemLoginLink(context.Background(), link)
	assert.ErrorIs(t, err, ErrInvalidLoginLink)
}

func TestRedeemLoginLink_Unknown(t *testing.T) {
	uc := newAuthUseCase(new(MockUserRepository), newMemoryTokenStore())

	_, _, err := uc.RedeemLoginLink(context.Background(), "bogus")

	assert.ErrorIs(t, err, ErrInvalidLoginLink)
}

func TestSignOut_RevokesToken(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := newMemoryTokenStore()
	uc := newAuthUseCase(repo, tokens)

	jwtService := jwt.NewService("test-secret")
	token, _ := jwtService.GenerateToken("user-1", "admin")

	assert.False(t, uc.IsRevoked(token))
	assert.NoError(t, uc.SignOut(context.Background(), token))
	assert.True(t, uc.IsRevoked(token))
}
