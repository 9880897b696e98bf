package scoreboard

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "scoreboard:leaderboard"
	cacheTTL = 5 * time.Minute
)

// cacheClient is nil when no Redis address is configured; every cache helper is a
// no-op in that case and reads fall through to the database.
var cacheClient *redis.Client

// InitCache connects the scoreboard read cache. Safe to skip entirely.
func InitCache(addr, password string) {
	if addr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Scoreboard cache disabled, redis unreachable: %v", err)
		return
	}

	cacheClient = client
	log.Println("Scoreboard cache connected.")
}

// CachedList returns the cached leaderboard, or nil on miss or when caching is off.
func CachedList(ctx context.Context) []Entry {
	if cacheClient == nil {
		return nil
	}

	data, err := cacheClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// StoreList caches the leaderboard for subsequent reads.
func StoreList(ctx context.Context, entries []Entry) {
	if cacheClient == nil {
		return
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return
	}

	if err := cacheClient.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache scoreboard: %v", err)
	}
}

// InvalidateCache drops the cached leaderboard. Called after an award lands.
func InvalidateCache(ctx context.Context) {
	if cacheClient == nil {
		return
	}

	if err := cacheClient.Del(ctx, cacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate scoreboard cache: %v", err)
	}
}
