package user

import "fmt"

// User represents a user entity in the system.
type User struct {
	ID    int64  // ID is the unique identifier for the user, assigned by the backend
	Name  string // Name is the full name of the user
	Email string // Email is the email address of the user
}

// String returns a human-readable debug form. Not used for persistence
// or comparisons.
func (u User) String() string {
	return fmt.Sprintf("User(id=%d, name=%s, email=%s)", u.ID, u.Name, u.Email)
}
