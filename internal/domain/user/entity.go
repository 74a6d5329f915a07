package user

import "time"

// User represents a registered account.
type User struct {
	ID             string    // ID is the UUID of the user
	FirstName      string    // FirstName is the user's given name
	LastName       string    // LastName is the user's family name
	Username       string    // Username is the unique login name
	Email          string    // Email is the unique email address
	HashedPassword string    // HashedPassword is the bcrypt hash of the password
	CreatedAt      time.Time // CreatedAt is when the account was registered
}
