package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// hitScript increments the key and starts its expiry on the first hit of a window.
// Returns {count, ttl_ms}.
var hitScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Redis keeps windows in Redis so several instances share one quota per caller.
type Redis struct {
	client *redis.Client
	size   time.Duration
	max    int
	owned  bool
	now    func() time.Time
}

// NewRedis uses an existing client. The caller keeps ownership of it.
func NewRedis(client *redis.Client, size time.Duration, max int) *Redis {
	return &Redis{client: client, size: size, max: max, now: time.Now}
}

// OpenRedis connects to url (redis://...) and pings it.
func OpenRedis(ctx context.Context, url string, size time.Duration, max int) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	r := NewRedis(client, size, max)
	r.owned = true
	return r, nil
}

// Allow counts one request for key.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := hitScript.Run(ctx, r.client, []string{keyPrefix + key}, r.size.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond

	d := Decision{
		Allowed: count <= r.max,
		Limit:   r.max,
		ResetAt: r.now().Add(ttl),
	}
	if d.Allowed {
		d.Remaining = r.max - count
	}
	return d, nil
}

// Close closes the client when this limiter opened it.
func (r *Redis) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}
