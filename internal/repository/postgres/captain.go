package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gantabya/internal/domain"
	"gantabya/internal/repository"
)

// CaptainRepository is a PostgreSQL implementation of repository.CaptainRepository.
type CaptainRepository struct {
	q Querier
}

// NewCaptainRepository creates a new PostgreSQL captain repository.
func NewCaptainRepository(db *sql.DB) *CaptainRepository {
	return &CaptainRepository{q: db}
}

const captainColumns = `id, first_name, last_name, email, password, status,
	vehicle_color, vehicle_plate, vehicle_capacity, vehicle_type, created_at`

// Create adds a new captain and sets its CreatedAt from the database.
func (r *CaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	query := `INSERT INTO captains (id, first_name, last_name, email, password, status,
		vehicle_color, vehicle_plate, vehicle_capacity, vehicle_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`

	err := r.q.QueryRowContext(ctx, query,
		captain.ID,
		captain.FullName.FirstName,
		captain.FullName.LastName,
		captain.Email,
		captain.Password,
		captain.Status,
		captain.Vehicle.Color,
		captain.Vehicle.Plate,
		captain.Vehicle.Capacity,
		captain.Vehicle.Type,
	).Scan(&captain.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", repository.ErrDuplicateEmail, err)
	}
	return err
}

// GetByID retrieves a captain by ID.
func (r *CaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	query := `SELECT ` + captainColumns + ` FROM captains WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a captain by email.
func (r *CaptainRepository) GetByEmail(ctx context.Context, email string) (*domain.Captain, error) {
	query := `SELECT ` + captainColumns + ` FROM captains WHERE email = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

func (r *CaptainRepository) scanOne(row *sql.Row) (*domain.Captain, error) {
	var captain domain.Captain
	err := row.Scan(
		&captain.ID,
		&captain.FullName.FirstName,
		&captain.FullName.LastName,
		&captain.Email,
		&captain.Password,
		&captain.Status,
		&captain.Vehicle.Color,
		&captain.Vehicle.Plate,
		&captain.Vehicle.Capacity,
		&captain.Vehicle.Type,
		&captain.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &captain, nil
}
