package repository

import (
	"context"

	"gantabya/internal/domain"
)

// CaptainRepository defines the persistence operations for captains.
type CaptainRepository interface {
	// Create adds a new captain and fills in server-assigned fields.
	Create(ctx context.Context, captain *domain.Captain) error

	// GetByID retrieves a captain by ID.
	GetByID(ctx context.Context, id string) (*domain.Captain, error)

	// GetByEmail retrieves a captain by email.
	GetByEmail(ctx context.Context, email string) (*domain.Captain, error)
}
