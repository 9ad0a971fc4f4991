// redis.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/redis/go-redis/v9"
)

const generationKey = "catalog:generation"

// RedisCache is a generation-keyed cache backed by redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a RedisCache when REDIS_ADDR is set and a Noop otherwise
func New(cfg *config.Config) Cache {
	if cfg.RedisAddr == "" {
		return Noop{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	log.Printf("Using redis cache at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	return NewRedisCache(client, cfg.CacheTTL)
}

// NewRedisCache wraps an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func entryKey(generation int64, key string) string {
	return fmt.Sprintf("catalog:%d:%s", generation, key)
}

func (r *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// Get decodes the entry for key into dest; found is false on a miss.
// The returned generation is the one a miss should be filled under.
func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) (int64, bool, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		return 0, false, err
	}
	data, err := r.client.Get(ctx, entryKey(gen, key)).Bytes()
	if err == redis.Nil {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, err
	}
	return gen, true, json.Unmarshal(data, dest)
}

// Set stores value under key in generation. Nothing is stored once a write has
// moved the cache past that generation.
func (r *RedisCache) Set(ctx context.Context, generation int64, key string, value interface{}) error {
	current, err := r.generation(ctx)
	if err != nil {
		return err
	}
	if current != generation {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, entryKey(generation, key), data, r.ttl).Err()
}

// Invalidate starts a new generation; old entries expire through their ttl
func (r *RedisCache) Invalidate(ctx context.Context) error {
	return r.client.Incr(ctx, generationKey).Err()
}

// Ping checks the redis connection
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client
func (r *RedisCache) Close() error {
	return r.client.Close()
}
