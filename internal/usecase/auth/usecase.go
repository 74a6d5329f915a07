package auth

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"webucket-api/internal/usecase/user"
	pkgerrors "webucket-api/pkg/errors"
	"webucket-api/pkg/security"
)

const (
	// msgBadCredentials matches the login failure detail clients rely on.
	msgBadCredentials = "Incorrect username or password"
	// msgBadToken matches the token failure detail clients rely on.
	msgBadToken = "Could not validate credentials"
)

// usecase implements authentication against the user repository.
type usecase struct {
	users    user.Repository
	tokens   *security.TokenManager
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new auth Usecase.
func New(users user.Repository, tokens *security.TokenManager, log *zap.Logger) Usecase {
	return &usecase{
		users:    users,
		tokens:   tokens,
		log:      log,
		validate: validator.New(),
	}
}

// Login verifies the credentials and issues a bearer token with the
// username as subject.
func (uc *usecase) Login(ctx context.Context, in LoginRequest) (*TokenResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("login validation failed", zap.Error(err))
		return nil, pkgerrors.NewUnauthorizedError(msgBadCredentials)
	}

	u, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		uc.log.Error("failed to look up user for login", zap.String("username", in.Username), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to look up user", err)
	}
	if u == nil || !security.VerifyPassword(u.HashedPassword, in.Password) {
		uc.log.Warn("login rejected", zap.String("username", in.Username))
		return nil, pkgerrors.NewUnauthorizedError(msgBadCredentials)
	}

	token, err := uc.tokens.Generate(u.Username)
	if err != nil {
		uc.log.Error("failed to sign token", zap.String("username", in.Username), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to sign token", err)
	}

	uc.log.Info("issued access token",
		zap.String("username", u.Username),
		zap.Duration("ttl", uc.tokens.TTL()),
	)

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate parses the token and loads the account named by its subject.
func (uc *usecase) Authenticate(ctx context.Context, token string) (*user.Response, error) {
	claims, err := uc.tokens.Verify(token)
	if err != nil {
		uc.log.Debug("token verification failed", zap.Error(err))
		return nil, pkgerrors.NewUnauthorizedError(msgBadToken)
	}

	u, err := uc.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		uc.log.Error("failed to load token subject", zap.String("username", claims.Subject), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to load user", err)
	}
	if u == nil {
		// Token outlived the account
		uc.log.Warn("token subject no longer exists", zap.String("username", claims.Subject))
		return nil, pkgerrors.NewUnauthorizedError(msgBadToken)
	}

	return &user.Response{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}, nil
}
