package domain

import "time"

// FullName is the composite name carried by every account.
type FullName struct {
	FirstName string
	LastName  string
}

// User represents a rider account.
type User struct {
	ID        string
	FullName  FullName
	Email     string
	Password  string
	CreatedAt time.Time
}
