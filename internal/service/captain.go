package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gantabya/internal/auth"
	"gantabya/internal/domain"
	"gantabya/internal/events"
	"gantabya/internal/redis"
	"gantabya/internal/repository"
)

// registrationLockTTL bounds how long a crashed registration can hold an email.
const registrationLockTTL = 10 * time.Second

// CaptainService handles captain accounts.
type CaptainService struct {
	captainRepo repository.CaptainRepository
	cacheStore  redis.CaptainCacheInterface
	lockStore   redis.LockStoreInterface
	publisher   events.Publisher
	tokens      *auth.Manager
}

// NewCaptainService creates a new CaptainService.
// cacheStore, lockStore and publisher may be nil.
func NewCaptainService(
	captainRepo repository.CaptainRepository,
	cacheStore redis.CaptainCacheInterface,
	lockStore redis.LockStoreInterface,
	publisher events.Publisher,
	tokens *auth.Manager,
) *CaptainService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CaptainService{
		captainRepo: captainRepo,
		cacheStore:  cacheStore,
		lockStore:   lockStore,
		publisher:   publisher,
		tokens:      tokens,
	}
}

// RegisterCaptainRequest contains the parameters for captain signup.
type RegisterCaptainRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Vehicle   domain.Vehicle
}

// Register creates a captain with a hashed password and issues a token.
// The new captain starts inactive.
func (s *CaptainService) Register(ctx context.Context, req RegisterCaptainRequest) (*domain.Captain, string, error) {
	if !req.Vehicle.Type.Valid() || req.Vehicle.Capacity < 1 {
		return nil, "", ErrInvalidVehicle
	}

	email := normalizeEmail(req.Email)

	if s.lockStore != nil {
		lockToken, acquired, err := s.lockStore.AcquireRegistrationLock(ctx, email, registrationLockTTL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to acquire registration lock: %w", err)
		}
		if !acquired {
			return nil, "", ErrRegistrationInProgress
		}
		defer func() {
			_ = s.lockStore.ReleaseRegistrationLock(context.WithoutCancel(ctx), email, lockToken)
		}()
	}

	existing, err := s.captainRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrCaptainExists
	}

	hash, err := domain.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	captain := &domain.Captain{
		ID: uuid.New().String(),
		FullName: domain.FullName{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		Email:    email,
		Password: hash,
		Status:   domain.CaptainStatusInactive,
		Vehicle:  req.Vehicle,
	}

	if err := s.captainRepo.Create(ctx, captain); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrCaptainExists
		}
		return nil, "", err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetCaptain(ctx, toCachedCaptain(captain))
	}

	event := events.CaptainRegistered{
		CaptainID:    captain.ID,
		Email:        captain.Email,
		VehicleType:  string(captain.Vehicle.Type),
		RegisteredAt: captain.CreatedAt,
	}
	if err := s.publisher.PublishCaptainRegistered(ctx, event); err != nil {
		log.Printf("failed to publish captain registered event for %s: %v", captain.ID, err)
	}

	token, err := s.tokens.Issue(captain.ID, auth.RoleCaptain)
	if err != nil {
		return nil, "", err
	}
	return captain, token, nil
}

// Login verifies captain credentials and issues a token.
func (s *CaptainService) Login(ctx context.Context, email, password string) (*domain.Captain, string, error) {
	captain, err := s.captainRepo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	ok, err := domain.ComparePassword(captain.Password, password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(captain.ID, auth.RoleCaptain)
	if err != nil {
		return nil, "", err
	}
	return captain, token, nil
}

// Profile returns the captain with the given id, reading through the cache.
// The returned captain never carries the password hash.
func (s *CaptainService) Profile(ctx context.Context, captainID string) (*domain.Captain, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetCaptain(ctx, captainID)
		if err == nil && cached != nil {
			return fromCachedCaptain(cached), nil
		}
	}

	captain, err := s.captainRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetCaptain(ctx, toCachedCaptain(captain))
	}

	captain.Password = ""
	return captain, nil
}

func toCachedCaptain(c *domain.Captain) *redis.CachedCaptain {
	return &redis.CachedCaptain{
		ID:              c.ID,
		FirstName:       c.FullName.FirstName,
		LastName:        c.FullName.LastName,
		Email:           c.Email,
		Status:          string(c.Status),
		VehicleColor:    c.Vehicle.Color,
		VehiclePlate:    c.Vehicle.Plate,
		VehicleCapacity: c.Vehicle.Capacity,
		VehicleType:     string(c.Vehicle.Type),
		CreatedAt:       c.CreatedAt,
	}
}

func fromCachedCaptain(c *redis.CachedCaptain) *domain.Captain {
	return &domain.Captain{
		ID: c.ID,
		FullName: domain.FullName{
			FirstName: c.FirstName,
			LastName:  c.LastName,
		},
		Email:  c.Email,
		Status: domain.CaptainStatus(c.Status),
		Vehicle: domain.Vehicle{
			Color:    c.VehicleColor,
			Plate:    c.VehiclePlate,
			Capacity: c.VehicleCapacity,
			Type:     domain.VehicleType(c.VehicleType),
		},
		CreatedAt: c.CreatedAt,
	}
}
