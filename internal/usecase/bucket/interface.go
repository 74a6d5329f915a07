package bucket

import "context"

// Usecase defines the interface for bucket and item business logic.
type Usecase interface {
	CreateBucket(ctx context.Context, in CreateBucketRequest) ([]BucketResponse, error)
	ListForUser(ctx context.Context, actor Actor) ([]BucketResponse, error)
	GetBucket(ctx context.Context, actor Actor, bucketID string) (*BucketDetailResponse, error)
	UpdateBucket(ctx context.Context, in UpdateBucketRequest) ([]BucketResponse, error)
	DeleteBucket(ctx context.Context, actor Actor, bucketID string) ([]BucketResponse, error)
	AddMember(ctx context.Context, in AddMemberRequest) ([]MemberResponse, error)

	AddItem(ctx context.Context, in AddItemRequest) ([]ItemResponse, error)
	UpdateItem(ctx context.Context, in UpdateItemRequest) ([]ItemResponse, error)
	DeleteItem(ctx context.Context, actor Actor, itemID string) ([]ItemResponse, error)
}
