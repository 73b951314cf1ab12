package entity

import "time"

// User is the aggregate root for the credential store.
// Password holds the bcrypt hash, never the plain secret.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
