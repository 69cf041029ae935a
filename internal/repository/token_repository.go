package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrRefreshTokenNotFound is returned for unknown, expired or already rotated refresh tokens
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

const refreshTokenPrefix = "auth:refresh:"

// TokenRepository stores refresh tokens in Redis, keyed by their SHA-256 hash
type TokenRepository interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Consume(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

// tokenRepository implements TokenRepository
type tokenRepository struct {
	client *redis.Client
}

// NewTokenRepository creates a new instance of TokenRepository
func NewTokenRepository(client *redis.Client) TokenRepository {
	return &tokenRepository{
		client: client,
	}
}

func refreshTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return refreshTokenPrefix + hex.EncodeToString(sum[:])
}

// Save stores the token owner with an expiry
func (r *tokenRepository) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if err := r.client.Set(ctx, refreshTokenKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes a token so it can be used only once
func (r *tokenRepository) Consume(ctx context.Context, token string) (uint, error) {
	val, err := r.client.GetDel(ctx, refreshTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read refresh token: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry: %w", err)
	}
	return uint(id), nil
}

// Delete removes a token; deleting an unknown token is not an error
func (r *tokenRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, refreshTokenKey(token)).Err()
}
