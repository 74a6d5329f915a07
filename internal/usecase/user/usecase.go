package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "webucket-api/internal/domain/user"
	pkgerrors "webucket-api/pkg/errors"
	"webucket-api/pkg/security"
)

// Repository defines the interface for user data access operations.
// GetByUsername and GetByEmail return (nil, nil) when no user matches,
// so callers can distinguish "absent" from a storage failure.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// usecase implements the business logic for account management.
type usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new user Usecase backed by the provided repository.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Register creates a new account after checking username and email uniqueness.
func (uc *usecase) Register(ctx context.Context, in RegisterRequest) (*Response, error) {
	uc.log.Info("registering user", zap.String("username", in.Username), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		uc.log.Error("failed to check existing username", zap.String("username", in.Username), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to validate username uniqueness", err)
	}
	if existing != nil {
		// A taken username is a 400, not a conflict, on this surface
		uc.log.Warn("username already exists", zap.String("username", in.Username))
		return nil, pkgerrors.NewValidationError("",
			fmt.Sprintf("User with username: %s already exists.", in.Username))
	}

	existing, err = uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, pkgerrors.NewValidationError("",
			fmt.Sprintf("User with email: %s already exists.", in.Email))
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to hash password", err)
	}

	u := &domain.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
	}

	id, err := uc.repo.Create(ctx, u)
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	u.ID = id

	created, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toResponse(created), nil
}

// GetByUsername retrieves an account by username.
func (uc *usecase) GetByUsername(ctx context.Context, username string) (*Response, error) {
	u, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		uc.log.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, pkgerrors.NewNotFoundError("user",
			fmt.Sprintf("User with username: %s not found.", username))
	}
	return toResponse(u), nil
}

// Update patches an account. A new password is re-hashed, and a changed
// username or email is re-checked for uniqueness.
func (uc *usecase) Update(ctx context.Context, in UpdateRequest) (*Response, error) {
	uc.log.Info("updating user", zap.String("id", in.ID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Warn("user not found for update", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	if in.Username != nil && *in.Username != u.Username {
		existing, err := uc.repo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, pkgerrors.NewInternalError("failed to validate username uniqueness", err)
		}
		if existing != nil {
			return nil, pkgerrors.NewValidationError("",
				fmt.Sprintf("User with username: %s already exists.", *in.Username))
		}
		u.Username = *in.Username
	}

	if in.Email != nil && *in.Email != u.Email {
		existing, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, pkgerrors.NewInternalError("failed to validate email uniqueness", err)
		}
		if existing != nil {
			return nil, pkgerrors.NewValidationError("",
				fmt.Sprintf("User with email: %s already exists.", *in.Email))
		}
		u.Email = *in.Email
	}

	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Password != nil {
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			uc.log.Error("failed to hash password", zap.Error(err))
			return nil, pkgerrors.NewInternalError("failed to hash password", err)
		}
		u.HashedPassword = hash
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		uc.log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return toResponse(u), nil
}

func toResponse(u *domain.User) *Response {
	return &Response{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
