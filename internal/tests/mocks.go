package tests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gantabya/internal/domain"
	"gantabya/internal/events"
	"gantabya/internal/redis"
	"gantabya/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
// Like the database it rejects a second user with the same email.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.CreatedAt = time.Now()
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetUser returns the stored user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK CAPTAIN REPOSITORY
// ──────────────────────────────────────────────

// MockCaptainRepository is a mock implementation of CaptainRepository.
type MockCaptainRepository struct {
	mu       sync.RWMutex
	captains map[string]*domain.Captain

	// Counters for verification
	CreateCallCount  int32
	GetByIDCallCount int32

	// Error injection
	CreateError     error
	GetByEmailError error
}

// NewMockCaptainRepository creates a new mock captain repository.
func NewMockCaptainRepository() *MockCaptainRepository {
	return &MockCaptainRepository{
		captains: make(map[string]*domain.Captain),
	}
}

// AddCaptain adds a captain to the mock repository.
func (m *MockCaptainRepository) AddCaptain(captain *domain.Captain) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captains[captain.ID] = captain
}

func (m *MockCaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.captains {
		if c.Email == captain.Email {
			return repository.ErrDuplicateEmail
		}
	}
	captain.CreatedAt = time.Now()
	copy := *captain
	m.captains[captain.ID] = &copy
	return nil
}

func (m *MockCaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	captain, ok := m.captains[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *captain
	return &copy, nil
}

func (m *MockCaptainRepository) GetByEmail(ctx context.Context, email string) (*domain.Captain, error) {
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.captains {
		if c.Email == email {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Count returns the number of stored captains.
func (m *MockCaptainRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.captains)
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CaptainCacheInterface.
type MockCacheStore struct {
	mu       sync.RWMutex
	captains map[string]*redis.CachedCaptain

	SetCallCount int32
	GetError     error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		captains: make(map[string]*redis.CachedCaptain),
	}
}

func (m *MockCacheStore) GetCaptain(ctx context.Context, captainID string) (*redis.CachedCaptain, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.captains[captainID]
	if !ok {
		return nil, nil
	}
	copy := *c
	return &copy, nil
}

func (m *MockCacheStore) SetCaptain(ctx context.Context, captain *redis.CachedCaptain) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *captain
	m.captains[captain.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
// Like the Redis store it only releases a lock for the token that acquired it.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]string
	seq   int

	AcquireCallCount int32
	ReleaseCallCount int32
	AcquireError     error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]string),
	}
}

func (m *MockLockStore) AcquireRegistrationLock(ctx context.Context, email string, ttl time.Duration) (string, bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(email)
	if _, held := m.locks[key]; held {
		return "", false, nil
	}
	m.seq++
	token := fmt.Sprintf("token-%d", m.seq)
	m.locks[key] = token
	return token, true, nil
}

func (m *MockLockStore) ReleaseRegistrationLock(ctx context.Context, email, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(email)
	if m.locks[key] == token {
		delete(m.locks, key)
	}
	return nil
}

// Hold marks email as locked by another registration, replacing any
// current holder as if its lock had expired.
func (m *MockLockStore) Hold(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[strings.ToLower(email)] = "held-elsewhere"
}

// IsLocked reports whether email is locked.
func (m *MockLockStore) IsLocked(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, held := m.locks[strings.ToLower(email)]
	return held
}

// ──────────────────────────────────────────────
// MOCK TOKEN DENYLIST
// ──────────────────────────────────────────────

// MockTokenDenylist is a mock implementation of TokenDenylistInterface.
type MockTokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

// NewMockTokenDenylist creates a new mock denylist.
func NewMockTokenDenylist() *MockTokenDenylist {
	return &MockTokenDenylist{
		revoked: make(map[string]time.Duration),
	}
}

func (m *MockTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = ttl
	return nil
}

func (m *MockTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// TTL returns the ttl a token id was revoked with.
func (m *MockTokenDenylist) TTL(tokenID string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, ok := m.revoked[tokenID]
	return ttl, ok
}

// ──────────────────────────────────────────────
// MOCK IDEMPOTENCY STORE
// ──────────────────────────────────────────────

// MockIdempotencyStore is a mock implementation of IdempotencyStoreInterface.
type MockIdempotencyStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMockIdempotencyStore creates a new mock idempotency store.
func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MockIdempotencyStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []events.CaptainRegistered

	PublishError error
}

func (m *MockPublisher) PublishCaptainRegistered(ctx context.Context, event events.CaptainRegistered) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.PublishError
}

// Events returns the events published so far.
func (m *MockPublisher) Events() []events.CaptainRegistered {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.CaptainRegistered(nil), m.events...)
}

// errStorage is a generic persistence failure used for error injection.
var errStorage = errors.New("storage unavailable")

// Ensure mocks implement interfaces.
var (
	_ repository.UserRepository       = (*MockUserRepository)(nil)
	_ repository.CaptainRepository    = (*MockCaptainRepository)(nil)
	_ redis.CaptainCacheInterface     = (*MockCacheStore)(nil)
	_ redis.LockStoreInterface        = (*MockLockStore)(nil)
	_ redis.TokenDenylistInterface    = (*MockTokenDenylist)(nil)
	_ redis.IdempotencyStoreInterface = (*MockIdempotencyStore)(nil)
	_ events.Publisher                = (*MockPublisher)(nil)
)
