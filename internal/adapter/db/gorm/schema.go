package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RatingMap stores per-username scores as a JSON column.
type RatingMap map[string]int

// Value implements driver.Valuer.
func (m RatingMap) Value() (driver.Value, error) {
	if m == nil {
		m = RatingMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ratings: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (m *RatingMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// CommentMap stores per-username comments as a JSON column.
type CommentMap map[string]string

// Value implements driver.Valuer.
func (m CommentMap) Value() (driver.Value, error) {
	if m == nil {
		m = CommentMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comments: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (m *CommentMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID             string `gorm:"primaryKey;size:36"`
	FirstName      string `gorm:"not null"`
	LastName       string `gorm:"not null"`
	Username       string `gorm:"not null;uniqueIndex"`
	Email          string `gorm:"not null;uniqueIndex"`
	HashedPassword string `gorm:"not null"`
	CreatedAt      time.Time
	Buckets        []BucketSchema `gorm:"many2many:user_buckets"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// BucketSchema represents the database schema for the buckets table.
type BucketSchema struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	Description string
	OwnerID     string `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Users       []UserSchema `gorm:"many2many:user_buckets"`
	Items       []ItemSchema `gorm:"foreignKey:BucketID"`
}

// TableName specifies the table name for the BucketSchema model.
func (BucketSchema) TableName() string {
	return "buckets"
}

// ItemSchema represents the database schema for the items table.
type ItemSchema struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	Description string
	Location    string
	ItemType    string     `gorm:"not null;index"`
	BucketID    string     `gorm:"not null;index"`
	Ratings     RatingMap  `gorm:"type:text"`
	Comments    CommentMap `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the ItemSchema model.
func (ItemSchema) TableName() string {
	return "items"
}

// Models returns every schema for migration, link tables included implicitly.
func Models() []interface{} {
	return []interface{}{&UserSchema{}, &BucketSchema{}, &ItemSchema{}}
}
