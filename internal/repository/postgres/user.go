package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gantabya/internal/domain"
	"gantabya/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// Create adds a new user and sets its CreatedAt from the database.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	err := r.q.QueryRowContext(ctx, query,
		user.ID, user.FullName.FirstName, user.FullName.LastName, user.Email, user.Password,
	).Scan(&user.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", repository.ErrDuplicateEmail, err)
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, first_name, last_name, email, password, created_at FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, first_name, last_name, email, password, created_at FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FullName.FirstName,
		&user.FullName.LastName,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
