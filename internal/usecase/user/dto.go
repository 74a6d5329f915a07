package user

import "time"

// RegisterRequest represents the request payload for registering a new user.
type RegisterRequest struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Username  string `validate:"required,min=3,max=50"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8,max=128"`
}

// UpdateRequest represents the request payload for updating an existing user.
// Nil fields are left untouched.
type UpdateRequest struct {
	ID        string `validate:"required"`
	FirstName *string
	LastName  *string
	Username  *string `validate:"omitempty,min=3,max=50"`
	Email     *string `validate:"omitempty,email"`
	Password  *string `validate:"omitempty,min=8,max=128"`
}

// Response represents a user in API responses. The password hash never
// leaves the service.
type Response struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
