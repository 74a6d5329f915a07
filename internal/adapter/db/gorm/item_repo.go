package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"webucket-api/internal/domain/bucket"
)

// ItemRepo implements the item Repository interface on GORM.
type ItemRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewItemRepo creates a new instance of ItemRepo.
func NewItemRepo(db *gorm.DB, log *zap.Logger) *ItemRepo {
	return &ItemRepo{db: db, log: log}
}

// Create inserts a new item into the database.
func (r *ItemRepo) Create(ctx context.Context, it *bucket.Item) (string, error) {
	if it == nil {
		return "", errors.New("item cannot be nil")
	}

	model := toItemSchema(it)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create item in db", zap.Error(err), zap.String("bucket_id", it.BucketID))
		return "", fmt.Errorf("failed to create item: %w", err)
	}

	it.ID = model.ID
	r.log.Info("item created in db", zap.String("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves an item by ID, returning nil when absent.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*bucket.Item, error) {
	var model ItemSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("item not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get item from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return toDomainItem(&model), nil
}

// Update saves the item record.
func (r *ItemRepo) Update(ctx context.Context, it *bucket.Item) error {
	if it == nil {
		return errors.New("item cannot be nil")
	}

	model := toItemSchema(it)
	model.CreatedAt = it.CreatedAt

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to update item in db", zap.Error(err), zap.String("id", it.ID))
		return fmt.Errorf("failed to update item: %w", err)
	}

	r.log.Info("item updated in db", zap.String("id", it.ID))
	return nil
}

// Delete removes an item by ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&ItemSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete item in db", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete item: %w", err)
	}

	r.log.Info("item deleted in db", zap.String("id", id))
	return nil
}

// ListByBucket retrieves every item in a bucket.
func (r *ItemRepo) ListByBucket(ctx context.Context, bucketID string) ([]bucket.Item, error) {
	var models []ItemSchema
	err := r.db.WithContext(ctx).
		Where("bucket_id = ?", bucketID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list items from db", zap.Error(err), zap.String("bucket_id", bucketID))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return toDomainItems(models), nil
}

// ListByBucketAndType retrieves a bucket's items of one type.
func (r *ItemRepo) ListByBucketAndType(ctx context.Context, bucketID string, t bucket.ItemType) ([]bucket.Item, error) {
	var models []ItemSchema
	err := r.db.WithContext(ctx).
		Where("bucket_id = ? AND item_type = ?", bucketID, string(t)).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list items by type from db", zap.Error(err),
			zap.String("bucket_id", bucketID), zap.String("item_type", string(t)))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return toDomainItems(models), nil
}

func toItemSchema(it *bucket.Item) ItemSchema {
	return ItemSchema{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		ItemType:    string(it.ItemType),
		BucketID:    it.BucketID,
		Ratings:     RatingMap(it.Ratings),
		Comments:    CommentMap(it.Comments),
	}
}

func toDomainItem(model *ItemSchema) *bucket.Item {
	return &bucket.Item{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Location:    model.Location,
		ItemType:    bucket.ItemType(model.ItemType),
		BucketID:    model.BucketID,
		Ratings:     map[string]int(model.Ratings),
		Comments:    map[string]string(model.Comments),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toDomainItems(models []ItemSchema) []bucket.Item {
	items := make([]bucket.Item, len(models))
	for i, model := range models {
		items[i] = *toDomainItem(&model)
	}
	return items
}
