package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the tag-domain cache on Redis. Each domain keeps a
// set of the keys tagged with it so invalidation can delete them in one go.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: "page:"}, nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "page:"}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) domainKey(domain string) string {
	return s.prefix + "domain:" + domain
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, domains ...string) error {
	if len(domains) == 0 {
		domains = []string{DomainDefault}
	}
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	for _, domain := range domains {
		if err := s.client.SAdd(ctx, s.domainKey(domain), s.key(key)).Err(); err != nil {
			return fmt.Errorf("cache tag %s with %s: %w", key, domain, err)
		}
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, domains ...string) error {
	for _, domain := range domains {
		members, err := s.client.SMembers(ctx, s.domainKey(domain)).Result()
		if err != nil {
			return fmt.Errorf("cache members of %s: %w", domain, err)
		}
		if len(members) > 0 {
			if err := s.client.Del(ctx, members...).Err(); err != nil {
				return fmt.Errorf("cache invalidate %s: %w", domain, err)
			}
		}
		if err := s.client.Del(ctx, s.domainKey(domain)).Err(); err != nil {
			return fmt.Errorf("cache drop domain %s: %w", domain, err)
		}
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
