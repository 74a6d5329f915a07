package user

import "context"

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*Response, error)
	GetByUsername(ctx context.Context, username string) (*Response, error)
	Update(ctx context.Context, in UpdateRequest) (*Response, error)
}
