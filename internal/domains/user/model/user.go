package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record. Authentication happens out of band; this
// table only tracks who logged in and which role they carry.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoggedIn time.Time `json:"last_logged_in"`
}
