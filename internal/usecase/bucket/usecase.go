package bucket

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "webucket-api/internal/domain/bucket"
	domainuser "webucket-api/internal/domain/user"
	"webucket-api/internal/usecase/user"
	pkgerrors "webucket-api/pkg/errors"
)

// Repository defines the interface for bucket data access operations.
type Repository interface {
	// Create inserts the bucket and enrolls the owner as its first member.
	Create(ctx context.Context, b *domain.Bucket) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Bucket, error)
	Update(ctx context.Context, b *domain.Bucket) error
	// Delete removes the bucket, its memberships and all its items.
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]domain.Bucket, error)
	AddMember(ctx context.Context, bucketID, userID string) error
	IsMember(ctx context.Context, bucketID, userID string) (bool, error)
	ListMembers(ctx context.Context, bucketID string) ([]domainuser.User, error)
}

// ItemRepository defines the interface for item data access operations.
type ItemRepository interface {
	Create(ctx context.Context, it *domain.Item) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id string) error
	ListByBucket(ctx context.Context, bucketID string) ([]domain.Item, error)
	ListByBucketAndType(ctx context.Context, bucketID string, t domain.ItemType) ([]domain.Item, error)
}

// usecase implements the bucket and item business rules.
type usecase struct {
	buckets  Repository
	items    ItemRepository
	users    user.Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new bucket Usecase.
func New(buckets Repository, items ItemRepository, users user.Repository, log *zap.Logger) Usecase {
	return &usecase{
		buckets:  buckets,
		items:    items,
		users:    users,
		log:      log,
		validate: validator.New(),
	}
}

func bucketNotFound(id string) error {
	return pkgerrors.NewNotFoundError("bucket", fmt.Sprintf("Bucket with id: %s not found.", id))
}

func itemNotFound(id string) error {
	return pkgerrors.NewNotFoundError("item", fmt.Sprintf("Item with id: %s not found.", id))
}

func notMember(username, title string) error {
	return pkgerrors.NewUnauthorizedError(fmt.Sprintf("User: %s not in bucket: %s.", username, title))
}

// requireMember loads the bucket and checks the actor belongs to it.
func (uc *usecase) requireMember(ctx context.Context, actor Actor, bucketID string) (*domain.Bucket, error) {
	b, err := uc.buckets.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, bucketNotFound(bucketID)
	}

	ok, err := uc.buckets.IsMember(ctx, b.ID, actor.ID)
	if err != nil {
		uc.log.Error("failed to check membership", zap.String("bucket_id", b.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to check membership", err)
	}
	if !ok {
		uc.log.Warn("membership check rejected",
			zap.String("bucket_id", b.ID),
			zap.String("username", actor.Username),
		)
		return nil, notMember(actor.Username, b.Title)
	}

	return b, nil
}

// CreateBucket creates a bucket owned by the actor and returns the actor's
// bucket list including the new one.
func (uc *usecase) CreateBucket(ctx context.Context, in CreateBucketRequest) ([]BucketResponse, error) {
	uc.log.Info("creating bucket", zap.String("owner", in.Actor.Username), zap.String("title", in.Title))

	if in.Title == "" {
		return nil, pkgerrors.NewValidationError("title", "Bucket title cannot be empty.")
	}
	if len(in.Title) > 50 {
		return nil, pkgerrors.NewValidationError("title", "Bucket title cannot exceed 50 characters.")
	}
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, pkgerrors.NewValidationError("", err.Error())
	}

	b := &domain.Bucket{
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     in.Actor.ID,
	}
	if _, err := uc.buckets.Create(ctx, b); err != nil {
		uc.log.Error("failed to create bucket", zap.Error(err))
		return nil, err
	}

	return uc.ListForUser(ctx, in.Actor)
}

// ListForUser returns every bucket the actor is a member of.
func (uc *usecase) ListForUser(ctx context.Context, actor Actor) ([]BucketResponse, error) {
	bs, err := uc.buckets.ListForUser(ctx, actor.ID)
	if err != nil {
		uc.log.Error("failed to list buckets", zap.String("user_id", actor.ID), zap.Error(err))
		return nil, err
	}

	out := make([]BucketResponse, len(bs))
	for i, b := range bs {
		out[i] = toBucketResponse(&b)
	}
	return out, nil
}

// GetBucket returns one bucket with its items grouped by type. Only members
// may read a bucket.
func (uc *usecase) GetBucket(ctx context.Context, actor Actor, bucketID string) (*BucketDetailResponse, error) {
	b, err := uc.requireMember(ctx, actor, bucketID)
	if err != nil {
		return nil, err
	}

	items, err := uc.items.ListByBucket(ctx, b.ID)
	if err != nil {
		uc.log.Error("failed to list items", zap.String("bucket_id", b.ID), zap.Error(err))
		return nil, err
	}

	detail := &BucketDetailResponse{
		Activity: []ItemResponse{},
		Media:    []ItemResponse{},
		Food:     []ItemResponse{},
		Bucket:   toBucketResponse(b),
	}
	for _, it := range items {
		resp := toItemResponse(&it)
		switch it.ItemType {
		case domain.ItemTypeActivity:
			detail.Activity = append(detail.Activity, resp)
		case domain.ItemTypeMedia:
			detail.Media = append(detail.Media, resp)
		case domain.ItemTypeFood:
			detail.Food = append(detail.Food, resp)
		}
	}

	return detail, nil
}

// UpdateBucket patches the bucket's title and description.
func (uc *usecase) UpdateBucket(ctx context.Context, in UpdateBucketRequest) ([]BucketResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, pkgerrors.NewValidationError("", err.Error())
	}

	b, err := uc.requireMember(ctx, in.Actor, in.BucketID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, pkgerrors.NewValidationError("title", "Bucket title cannot be empty.")
		}
		if len(*in.Title) > 50 {
			return nil, pkgerrors.NewValidationError("title", "Bucket title cannot exceed 50 characters.")
		}
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}

	if err := uc.buckets.Update(ctx, b); err != nil {
		uc.log.Error("failed to update bucket", zap.String("bucket_id", b.ID), zap.Error(err))
		return nil, err
	}

	return uc.ListForUser(ctx, in.Actor)
}

// DeleteBucket removes a bucket and its items. Only the owner may delete.
func (uc *usecase) DeleteBucket(ctx context.Context, actor Actor, bucketID string) ([]BucketResponse, error) {
	b, err := uc.buckets.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, bucketNotFound(bucketID)
	}

	if b.OwnerID != actor.ID {
		uc.log.Warn("delete rejected, not owner",
			zap.String("bucket_id", b.ID),
			zap.String("username", actor.Username),
		)
		return nil, pkgerrors.NewUnauthorizedError(
			fmt.Sprintf("User: %s not authorized to delete bucket: %s.", actor.Username, b.Title))
	}

	if err := uc.buckets.Delete(ctx, b.ID); err != nil {
		uc.log.Error("failed to delete bucket", zap.String("bucket_id", b.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("bucket deleted", zap.String("bucket_id", b.ID), zap.String("owner", actor.Username))

	return uc.ListForUser(ctx, actor)
}

// AddMember adds a user to a bucket by username and returns the member list.
func (uc *usecase) AddMember(ctx context.Context, in AddMemberRequest) ([]MemberResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, pkgerrors.NewValidationError("", err.Error())
	}

	b, err := uc.buckets.GetByID(ctx, in.BucketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, bucketNotFound(in.BucketID)
	}

	u, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		uc.log.Error("failed to look up user", zap.String("username", in.Username), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return nil, pkgerrors.NewNotFoundError("user",
			fmt.Sprintf("User with username: %s not found.", in.Username))
	}

	already, err := uc.buckets.IsMember(ctx, b.ID, u.ID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to check membership", err)
	}
	if already {
		return nil, pkgerrors.NewAlreadyExistsError("member",
			fmt.Sprintf("Username: %s already in bucket: %s.", u.Username, b.Title))
	}

	if err := uc.buckets.AddMember(ctx, b.ID, u.ID); err != nil {
		uc.log.Error("failed to add member", zap.String("bucket_id", b.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("member added",
		zap.String("bucket_id", b.ID),
		zap.String("username", u.Username),
	)

	members, err := uc.buckets.ListMembers(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = MemberResponse{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Username:  m.Username,
			Email:     m.Email,
		}
	}
	return out, nil
}

// AddItem adds an item to a bucket the actor belongs to and returns the
// bucket's items of that type.
func (uc *usecase) AddItem(ctx context.Context, in AddItemRequest) ([]ItemResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, pkgerrors.NewValidationError("", err.Error())
	}
	if !in.ItemType.Valid() {
		return nil, pkgerrors.NewValidationError("item_type",
			fmt.Sprintf("item_type must be one of activity, media, food; got %q", in.ItemType))
	}

	b, err := uc.requireMember(ctx, in.Actor, in.BucketID)
	if err != nil {
		return nil, err
	}

	it := &domain.Item{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		ItemType:    in.ItemType,
		BucketID:    b.ID,
		Ratings:     map[string]int{},
		Comments:    map[string]string{},
	}
	if _, err := uc.items.Create(ctx, it); err != nil {
		uc.log.Error("failed to create item", zap.String("bucket_id", b.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("item added",
		zap.String("bucket_id", b.ID),
		zap.String("item_type", string(in.ItemType)),
	)

	return uc.listItemsOfType(ctx, b.ID, in.ItemType)
}

// UpdateItem patches an item; a score or comment is recorded under the
// actor's username without touching other members' entries.
func (uc *usecase) UpdateItem(ctx context.Context, in UpdateItemRequest) ([]ItemResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, pkgerrors.NewValidationError("", err.Error())
	}

	it, err := uc.items.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, itemNotFound(in.ItemID)
	}

	if _, err := uc.requireMember(ctx, in.Actor, it.BucketID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Location != nil {
		it.Location = *in.Location
	}
	if in.Score != nil {
		if it.Ratings == nil {
			it.Ratings = map[string]int{}
		}
		it.Ratings[in.Actor.Username] = *in.Score
	}
	if in.Comment != nil {
		if it.Comments == nil {
			it.Comments = map[string]string{}
		}
		it.Comments[in.Actor.Username] = *in.Comment
	}

	if err := uc.items.Update(ctx, it); err != nil {
		uc.log.Error("failed to update item", zap.String("item_id", it.ID), zap.Error(err))
		return nil, err
	}

	return uc.listItemsOfType(ctx, it.BucketID, it.ItemType)
}

// DeleteItem removes an item and returns the remaining items of its type.
func (uc *usecase) DeleteItem(ctx context.Context, actor Actor, itemID string) ([]ItemResponse, error) {
	it, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, itemNotFound(itemID)
	}

	if _, err := uc.requireMember(ctx, actor, it.BucketID); err != nil {
		return nil, err
	}

	if err := uc.items.Delete(ctx, it.ID); err != nil {
		uc.log.Error("failed to delete item", zap.String("item_id", it.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("item deleted", zap.String("item_id", it.ID), zap.String("bucket_id", it.BucketID))

	return uc.listItemsOfType(ctx, it.BucketID, it.ItemType)
}

func (uc *usecase) listItemsOfType(ctx context.Context, bucketID string, t domain.ItemType) ([]ItemResponse, error) {
	items, err := uc.items.ListByBucketAndType(ctx, bucketID, t)
	if err != nil {
		uc.log.Error("failed to list items", zap.String("bucket_id", bucketID), zap.Error(err))
		return nil, err
	}

	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(&it)
	}
	return out, nil
}

func toBucketResponse(b *domain.Bucket) BucketResponse {
	return BucketResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toItemResponse(it *domain.Item) ItemResponse {
	ratings := it.Ratings
	if ratings == nil {
		ratings = map[string]int{}
	}
	comments := it.Comments
	if comments == nil {
		comments = map[string]string{}
	}
	return ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		ItemType:    it.ItemType,
		BucketID:    it.BucketID,
		Ratings:     ratings,
		Comments:    comments,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
