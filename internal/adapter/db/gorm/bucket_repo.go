package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"webucket-api/internal/domain/bucket"
	"webucket-api/internal/domain/user"
)

// BucketRepo implements the bucket Repository interface on GORM.
type BucketRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewBucketRepo creates a new instance of BucketRepo.
func NewBucketRepo(db *gorm.DB, log *zap.Logger) *BucketRepo {
	return &BucketRepo{db: db, log: log}
}

// Create inserts the bucket and its owner membership in one transaction.
func (r *BucketRepo) Create(ctx context.Context, b *bucket.Bucket) (string, error) {
	if b == nil {
		return "", errors.New("bucket cannot be nil")
	}

	model := BucketSchema{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		OwnerID:     b.OwnerID,
	}
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		membership := map[string]interface{}{
			"bucket_schema_id": model.ID,
			"user_schema_id":   b.OwnerID,
		}
		return tx.Table("user_buckets").Create(membership).Error
	})
	if err != nil {
		r.log.Error("failed to create bucket in db", zap.Error(err), zap.String("owner_id", b.OwnerID))
		return "", fmt.Errorf("failed to create bucket: %w", err)
	}

	b.ID = model.ID
	r.log.Info("bucket created in db", zap.String("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a bucket by ID, returning nil when absent.
func (r *BucketRepo) GetByID(ctx context.Context, id string) (*bucket.Bucket, error) {
	var model BucketSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("bucket not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get bucket from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return toDomainBucket(&model), nil
}

// Update saves the bucket record.
func (r *BucketRepo) Update(ctx context.Context, b *bucket.Bucket) error {
	if b == nil {
		return errors.New("bucket cannot be nil")
	}

	model := BucketSchema{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to update bucket in db", zap.Error(err), zap.String("id", b.ID))
		return fmt.Errorf("failed to update bucket: %w", err)
	}

	r.log.Info("bucket updated in db", zap.String("id", b.ID))
	return nil
}

// Delete removes the bucket, its memberships and its items in one transaction.
func (r *BucketRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bucket_id = ?", id).Delete(&ItemSchema{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_buckets WHERE bucket_schema_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&BucketSchema{}, "id = ?", id).Error
	})
	if err != nil {
		r.log.Error("failed to delete bucket in db", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete bucket: %w", err)
	}

	r.log.Info("bucket deleted in db", zap.String("id", id))
	return nil
}

// ListForUser retrieves every bucket the user is a member of.
func (r *BucketRepo) ListForUser(ctx context.Context, userID string) ([]bucket.Bucket, error) {
	var models []BucketSchema
	err := r.db.WithContext(ctx).
		Joins("JOIN user_buckets ON user_buckets.bucket_schema_id = buckets.id").
		Where("user_buckets.user_schema_id = ?", userID).
		Order("buckets.created_at").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list buckets from db", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	buckets := make([]bucket.Bucket, len(models))
	for i, model := range models {
		buckets[i] = *toDomainBucket(&model)
	}
	return buckets, nil
}

// AddMember inserts a membership row.
func (r *BucketRepo) AddMember(ctx context.Context, bucketID, userID string) error {
	membership := map[string]interface{}{
		"bucket_schema_id": bucketID,
		"user_schema_id":   userID,
	}
	if err := r.db.WithContext(ctx).Table("user_buckets").Create(membership).Error; err != nil {
		r.log.Error("failed to add member in db", zap.Error(err),
			zap.String("bucket_id", bucketID), zap.String("user_id", userID))
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the bucket.
func (r *BucketRepo) IsMember(ctx context.Context, bucketID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("user_buckets").
		Where("bucket_schema_id = ? AND user_schema_id = ?", bucketID, userID).
		Count(&count).Error
	if err != nil {
		r.log.Error("failed to check membership in db", zap.Error(err),
			zap.String("bucket_id", bucketID), zap.String("user_id", userID))
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// ListMembers retrieves the users who belong to the bucket.
func (r *BucketRepo) ListMembers(ctx context.Context, bucketID string) ([]user.User, error) {
	var models []UserSchema
	err := r.db.WithContext(ctx).
		Joins("JOIN user_buckets ON user_buckets.user_schema_id = users.id").
		Where("user_buckets.bucket_schema_id = ?", bucketID).
		Order("users.created_at").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list members from db", zap.Error(err), zap.String("bucket_id", bucketID))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *toDomainUser(&model)
	}
	return users, nil
}

func toDomainBucket(model *BucketSchema) *bucket.Bucket {
	return &bucket.Bucket{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		OwnerID:     model.OwnerID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
