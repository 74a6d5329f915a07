package auth

import (
	"context"

	"webucket-api/internal/usecase/user"
)

// Usecase defines the interface for authentication operations.
type Usecase interface {
	// Login verifies a username/password pair and issues an access token.
	Login(ctx context.Context, in LoginRequest) (*TokenResponse, error)
	// Authenticate resolves a bearer token to the account it was issued for.
	Authenticate(ctx context.Context, token string) (*user.Response, error)
}
