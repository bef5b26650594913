package member

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInviteRateLimited is returned when an inviter exceeds the invitation
// throttle.
var ErrInviteRateLimited = errors.New("too many invitations, try again later")

const (
	defaultInviteLimit  = 20
	defaultInviteWindow = time.Hour
)

// InviteThrottle caps how many invitations one inviter may send per fixed
// window, backed by Redis. A nil throttle allows everything, so the module
// works without a Redis deployment.
type InviteThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewInviteThrottleFromEnv builds a throttle when KANBAN_REDIS_ADDR is set
// and returns nil otherwise.
func NewInviteThrottleFromEnv() *InviteThrottle {
	addr := os.Getenv("KANBAN_REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("KANBAN_REDIS_PASSWORD"),
	})
	return &InviteThrottle{
		client: client,
		limit:  defaultInviteLimit,
		window: defaultInviteWindow,
	}
}

// Allow records one invitation attempt for the inviter and reports whether
// it is within the window's budget. The counter key expires with the window,
// so the window resets itself.
func (t *InviteThrottle) Allow(ctx context.Context, inviterID string) error {
	if t == nil || inviterID == "" {
		return nil
	}

	key := "invite_throttle:" + inviterID
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to count invitations: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("failed to arm throttle window: %w", err)
		}
	}
	if count > int64(t.limit) {
		return ErrInviteRateLimited
	}
	return nil
}

// Close releases the Redis connection.
func (t *InviteThrottle) Close() error {
	if t == nil {
		return nil
	}
	return t.client.Close()
}
