package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "webucket-api/internal/domain/user"
	pkgerrors "webucket-api/pkg/errors"
	"webucket-api/pkg/security"
)

// MockUserRepository is a mock implementation of the user Repository interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func setupTestUsecase(t *testing.T) (Usecase, *MockUserRepository, *security.TokenManager) {
	mockRepo := new(MockUserRepository)
	tokens, err := security.NewTokenManager("test-secret", 45*time.Minute)
	require.NoError(t, err)
	uc := New(mockRepo, tokens, zaptest.NewLogger(t))
	return uc, mockRepo, tokens
}

func storedUser(t *testing.T, password string) *domain.User {
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:             "user-1",
		FirstName:      "Jane",
		LastName:       "Doe",
		Username:       "janedoe",
		Email:          "jane@example.com",
		HashedPassword: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	uc, mockRepo, tokens := setupTestUsecase(t)
	ctx := context.Background()
	u := storedUser(t, "password123")

	mockRepo.On("GetByUsername", ctx, "janedoe").Return(u, nil)

	resp, err := uc.Login(ctx, LoginRequest{Username: "janedoe", Password: "password123"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "janedoe", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()
	u := storedUser(t, "password123")

	mockRepo.On("GetByUsername", ctx, "janedoe").Return(u, nil)

	resp, err := uc.Login(ctx, LoginRequest{Username: "janedoe", Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Incorrect username or password", err.Error())

	var unauthorized *pkgerrors.UnauthorizedError
	assert.True(t, errors.As(err, &unauthorized))
}

func TestLogin_UnknownUser(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil)

	resp, err := uc.Login(ctx, LoginRequest{Username: "ghost", Password: "password123"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestLogin_MissingCredentials(t *testing.T) {
	uc, _, _ := setupTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.Login(ctx, LoginRequest{})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestAuthenticate_Success(t *testing.T) {
	uc, mockRepo, tokens := setupTestUsecase(t)
	ctx := context.Background()
	u := storedUser(t, "password123")

	token, err := tokens.Generate("janedoe")
	require.NoError(t, err)

	mockRepo.On("GetByUsername", ctx, "janedoe").Return(u, nil)

	resp, err := uc.Authenticate(ctx, token)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "janedoe", resp.Username)
}

func TestAuthenticate_BadToken(t *testing.T) {
	uc, _, _ := setupTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.Authenticate(ctx, "not.a.token")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Could not validate credentials", err.Error())
}

func TestAuthenticate_SubjectGone(t *testing.T) {
	uc, mockRepo, tokens := setupTestUsecase(t)
	ctx := context.Background()

	token, err := tokens.Generate("deleted-user")
	require.NoError(t, err)

	mockRepo.On("GetByUsername", ctx, "deleted-user").Return(nil, nil)

	resp, err := uc.Authenticate(ctx, token)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Could not validate credentials", err.Error())
}
