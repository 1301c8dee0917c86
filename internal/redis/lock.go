package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// releaseLockScript deletes the lock only while it still holds the caller's token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func registrationLockKey(email string) string {
	return fmt.Sprintf("lock:register:%s", strings.ToLower(email))
}

// AcquireRegistrationLock attempts to lock registration for the given email.
// On success it returns the token that must be passed to ReleaseRegistrationLock.
// ok is false if the lock is already held.
func (s *LockStore) AcquireRegistrationLock(ctx context.Context, email string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, registrationLockKey(email), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseRegistrationLock releases the registration lock for the given email
// if it is still held with token. A lock that expired and was taken by
// another registration is left alone.
func (s *LockStore) ReleaseRegistrationLock(ctx context.Context, email, token string) error {
	return releaseLockScript.Run(ctx, s.client, []string{registrationLockKey(email)}, token).Err()
}
