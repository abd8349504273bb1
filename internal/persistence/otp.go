package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no code is stored for the phone number.
var ErrOTPNotFound = errors.New("otp not found or expired")

const otpKeyPrefix = "official_otp:"

// RedisOTPStore keeps official login codes in Redis so they expire on
// their own after the configured TTL.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore wraps an existing Redis connection.
func NewRedisOTPStore(r *Redis) *RedisOTPStore {
	if r == nil {
		return &RedisOTPStore{}
	}
	return &RedisOTPStore{client: r.Client}
}

// Set stores the code for the phone with the given TTL, replacing any
// previous code.
func (s *RedisOTPStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Set(ctx, otpKeyPrefix+phone, code, ttl).Err()
}

// Get returns the stored code for the phone.
func (s *RedisOTPStore) Get(ctx context.Context, phone string) (string, error) {
	if s.client == nil {
		return "", errors.New("redis client not configured")
	}
	code, err := s.client.Get(ctx, otpKeyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	return code, err
}

// Delete removes the code once consumed.
func (s *RedisOTPStore) Delete(ctx context.Context, phone string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, otpKeyPrefix+phone).Err()
}
