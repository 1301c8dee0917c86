package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// CaptainCacheTTL bounds how stale a cached captain profile can get.
const CaptainCacheTTL = 5 * time.Minute

const captainCachePrefix = "cache:captain:"

// CachedCaptain represents a cached captain profile. It never carries the password hash.
type CachedCaptain struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstname"`
	LastName        string    `json:"lastname"`
	Email           string    `json:"email"`
	Status          string    `json:"status"`
	VehicleColor    string    `json:"vehicle_color"`
	VehiclePlate    string    `json:"vehicle_plate"`
	VehicleCapacity int       `json:"vehicle_capacity"`
	VehicleType     string    `json:"vehicle_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetCaptain retrieves a captain from cache. A miss returns nil, nil.
func (s *CacheStore) GetCaptain(ctx context.Context, captainID string) (*CachedCaptain, error) {
	data, err := s.client.Get(ctx, captainCachePrefix+captainID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var captain CachedCaptain
	if err := json.Unmarshal(data, &captain); err != nil {
		return nil, err
	}
	return &captain, nil
}

// SetCaptain stores a captain in cache.
func (s *CacheStore) SetCaptain(ctx context.Context, captain *CachedCaptain) error {
	data, err := json.Marshal(captain)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, captainCachePrefix+captain.ID, data, CaptainCacheTTL).Err()
}
