package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// Prefix namespaces every key. Default: "nipper"
	Prefix string

	// TTL is the lifetime of a stored report. Zero keeps reports forever.
	TTL time.Duration
}

// RedisStore implements Store using go-redis/v9.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	if opts.Prefix == "" {
		opts.Prefix = "nipper"
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, prefix: opts.Prefix, ttl: opts.TTL}, nil
}

// Get returns the encoded report stored under digest.
func (s *RedisStore) Get(ctx context.Context, digest string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.reportKey(digest)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report %s: %w", digest, err)
	}
	return data, nil
}

// Put stores the encoded report and records its digest.
func (s *RedisStore) Put(ctx context.Context, digest string, data []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.reportKey(digest), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), digest)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store report %s: %w", digest, err)
	}
	return nil
}

// Delete removes the report and its digest.
func (s *RedisStore) Delete(ctx context.Context, digest string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.reportKey(digest))
	pipe.SRem(ctx, s.indexKey(), digest)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", digest, err)
	}
	return nil
}

// Digests returns the digests whose report key still exists. Digests of
// expired reports are removed from the index.
func (s *RedisStore) Digests(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	digests := make([]string, 0, len(members))
	var stale []any
	for _, d := range members {
		n, err := s.client.Exists(ctx, s.reportKey(d)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check report %s: %w", d, err)
		}
		if n == 0 {
			stale = append(stale, d)
			continue
		}
		digests = append(digests, d)
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune report index: %w", err)
		}
	}

	sort.Strings(digests)
	return digests, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) reportKey(digest string) string {
	return formatKeyName(s.prefix, "report", digest)
}

func (s *RedisStore) indexKey() string {
	return formatKeyName(s.prefix, "reports")
}

func formatKeyName(parts ...string) string {
	return strings.Join(parts, ":")
}
