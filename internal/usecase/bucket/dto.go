package bucket

import (
	"time"

	domain "webucket-api/internal/domain/bucket"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID       string `validate:"required"`
	Username string `validate:"required"`
}

// CreateBucketRequest represents the request payload for creating a bucket.
type CreateBucketRequest struct {
	Actor       Actor  `validate:"required"`
	Title       string `validate:"required,max=50"`
	Description string
}

// UpdateBucketRequest patches a bucket. Nil fields are left untouched.
type UpdateBucketRequest struct {
	Actor       Actor  `validate:"required"`
	BucketID    string `validate:"required"`
	Title       *string
	Description *string
}

// AddMemberRequest adds a user to a bucket by username.
type AddMemberRequest struct {
	Actor    Actor  `validate:"required"`
	BucketID string `validate:"required"`
	Username string `validate:"required"`
}

// AddItemRequest represents the request payload for adding an item.
type AddItemRequest struct {
	Actor       Actor           `validate:"required"`
	BucketID    string          `validate:"required"`
	Title       string          `validate:"required"`
	Description string
	Location    string
	ItemType    domain.ItemType `validate:"required"`
}

// UpdateItemRequest patches an item. Score and Comment are recorded under
// the acting user's name; nil fields are left untouched.
type UpdateItemRequest struct {
	Actor       Actor  `validate:"required"`
	ItemID      string `validate:"required"`
	Title       *string
	Description *string
	Location    *string
	Score       *int `validate:"omitempty,min=0,max=10"`
	Comment     *string
}

// BucketResponse represents a bucket in API responses.
type BucketResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	ItemType    domain.ItemType   `json:"item_type"`
	BucketID    string            `json:"bucket_id"`
	Ratings     map[string]int    `json:"ratings"`
	Comments    map[string]string `json:"comments"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MemberResponse represents a bucket member in API responses.
type MemberResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// BucketDetailResponse is the grouped view of one bucket: its items split
// by type plus the bucket itself.
type BucketDetailResponse struct {
	Activity []ItemResponse `json:"activity"`
	Media    []ItemResponse `json:"media"`
	Food     []ItemResponse `json:"food"`
	Bucket   BucketResponse `json:"bucket"`
}
