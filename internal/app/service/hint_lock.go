package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Compare-and-delete so an expired lock taken over by another request is
// not released from here.
var releaseHintLockScript = redis.NewScript(`
    if redis.call("get", KEYS[1]) == ARGV[1] then
        return redis.call("del", KEYS[1])
    else
        return 0
    end
`)

// hintLock serializes hint requests per user. Duplicate button presses
// lose the SetNX race and are rejected instead of queued; the TTL bounds
// how long a crashed holder can block the user.
type hintLock struct {
	rdb *redis.Client
	ttl time.Duration
}

// Acquire takes the user's lock. On success it returns ok=true and a
// release func; on contention it returns ok=false.
func (l *hintLock) Acquire(ctx context.Context, userID string) (release func(), ok bool, err error) {
	key := "hint_lock:" + userID
	value := uuid.NewString()

	ok, err = l.rdb.SetNX(ctx, key, value, l.ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}

	release = func() {
		if _, err := releaseHintLockScript.Run(ctx, l.rdb, []string{key}, value).Result(); err != nil {
			log.Printf("ERROR: Failed to release hint lock for user %s: %v", userID, err)
		}
	}
	return release, true, nil
}
