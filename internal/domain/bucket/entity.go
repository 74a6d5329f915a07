package bucket

import "time"

// ItemType classifies what kind of thing a bucket item is.
type ItemType string

const (
	ItemTypeActivity ItemType = "activity"
	ItemTypeMedia    ItemType = "media"
	ItemTypeFood     ItemType = "food"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeActivity, ItemTypeMedia, ItemTypeFood:
		return true
	}
	return false
}

// Bucket is a shared collection of items. It has a single owner and any
// number of members; the owner is always a member.
type Bucket struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Item is a single entry in a bucket. Ratings and Comments are keyed by the
// username of the member who left them.
type Item struct {
	ID          string
	Title       string
	Description string
	Location    string
	ItemType    ItemType
	BucketID    string
	Ratings     map[string]int
	Comments    map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
