package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gantabya/internal/auth"
	"gantabya/internal/domain"
	"gantabya/internal/repository"
)

// UserService handles rider accounts.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.Manager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// CreateUserInput contains the fields of a new user record.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// CreateUser builds the nested user record and persists it.
// Repository errors, including duplicate emails, are returned unchanged.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		ID: uuid.New().String(),
		FullName: domain.FullName{
			FirstName: in.FirstName,
			LastName:  in.LastName,
		},
		Email:    in.Email,
		Password: in.Password,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterUserRequest contains the parameters for user signup.
type RegisterUserRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register hashes the password, creates the user and issues a token.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, string, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	hash, err := domain.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.CreateUser(ctx, CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Password:  hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	ok, err := domain.ComparePassword(user.Password, password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the user with the given id.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
