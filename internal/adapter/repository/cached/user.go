package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"webucket-api/internal/adapter/cache"
	domain "webucket-api/internal/domain/user"
	"webucket-api/internal/usecase/user"
)

// UserRepository implements user.Repository with caching support for
// username lookups, the hot path of token authentication.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (string, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID delegates to the DB repository.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.dbRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a user using the Cache-Aside pattern with
// single-flight protection against lookup stampedes.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, username)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("username", username), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	key := fmt.Sprintf("user:name:%s", username)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Another request may have populated the cache while we waited
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, username)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if u == nil {
			// Absence is not cached; a registration should be visible immediately
			return (*domain.User)(nil), nil
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("username", username), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// GetByEmail delegates to the DB repository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// Update updates the user in DB and invalidates cache entries for both the
// old and new username, in case the username itself changed.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	var oldUsername string
	if existing, err := r.dbRepo.GetByID(ctx, u.ID); err == nil && existing != nil {
		oldUsername = existing.Username
	}

	if err := r.dbRepo.Update(ctx, u); err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, u.Username); err != nil {
			r.log.Warn("failed to invalidate cache after update", zap.String("username", u.Username), zap.Error(err))
		}
		if oldUsername != "" && oldUsername != u.Username {
			if err := r.cache.Delete(ctx, oldUsername); err != nil {
				r.log.Warn("failed to invalidate cache for old username", zap.String("username", oldUsername), zap.Error(err))
			}
		}
	}

	return nil
}
