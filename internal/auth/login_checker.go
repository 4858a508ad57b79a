package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	IsLogged(ctx context.Context, token string) (string, bool, error)
}

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// IsLogged resolves the token to the signed-in user id. Unknown and
// expired tokens are not an error.
func (c *LoginChecker) IsLogged(ctx context.Context, token string) (string, bool, error) {
	cmd := c.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}

	uid, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return "", false, err
	}

	if time.Since(createdAt) > c.ttl {
		return "", false, nil
	}

	return uid, true, nil
}

// LoginTestChecker maps tokens to user ids, for dev and tests.
type LoginTestChecker struct {
	LoggedSessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]string{},
	}
}

func (c *LoginTestChecker) IsLogged(_ context.Context, token string) (string, bool, error) {
	uid, ok := c.LoggedSessions[token]
	return uid, ok, nil
}
