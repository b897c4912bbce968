package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const balanceExpiration = 5 * time.Minute

// ErrBalanceNotFound indicates a cache miss for a wallet balance
var ErrBalanceNotFound = errors.New("balance not found in cache")

// WalletCache holds wallet balances in redis so read-heavy balance checks
// skip the database. Writes go through postgres; callers invalidate after
// any balance mutation.
type WalletCache struct {
	client *redis.Client
	prefix string
}

// NewWalletCache creates a wallet cache over a redis client
func NewWalletCache(client *redis.Client) *WalletCache {
	return &WalletCache{
		client: client,
		prefix: "wallet:",
	}
}

// GetBalance returns the cached balance for a user, ErrBalanceNotFound on miss
func (c *WalletCache) GetBalance(ctx context.Context, userID int64) (int64, error) {
	key := c.balanceKey(userID)

	balanceStr, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrBalanceNotFound
		}
		return 0, fmt.Errorf("failed to get balance from redis: %w", err)
	}

	balance, err := strconv.ParseInt(balanceStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance from redis: %w", err)
	}

	return balance, nil
}

// SetBalance stores a user's balance with a short TTL
func (c *WalletCache) SetBalance(ctx context.Context, userID int64, balance int64) error {
	key := c.balanceKey(userID)

	err := c.client.Set(ctx, key, strconv.FormatInt(balance, 10), balanceExpiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set balance in redis: %w", err)
	}

	return nil
}

// Invalidate drops a user's cached balance
func (c *WalletCache) Invalidate(ctx context.Context, userID int64) error {
	key := c.balanceKey(userID)

	err := c.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete balance from redis: %w", err)
	}

	return nil
}

func (c *WalletCache) balanceKey(userID int64) string {
	return c.prefix + strconv.FormatInt(userID, 10) + ":balance"
}
