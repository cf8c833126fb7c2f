package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStore creates a miniredis instance and returns a connected RedisStore.
func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := NewRedisStore(RedisOptions{
		URL:    fmt.Sprintf("redis://%s", mr.Addr()),
		Prefix: "test",
		TTL:    ttl,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s, mr
}

func TestNewRedisStore(t *testing.T) {
	t.Run("connection failure", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{
			URL:            "redis://localhost:99999",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{URL: "invalid://url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})

	t.Run("default prefix", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := NewRedisStore(RedisOptions{URL: fmt.Sprintf("redis://%s", mr.Addr())})
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Put(context.Background(), "abc", []byte("{}")))
		assert.True(t, mr.Exists("nipper:report:abc"))
	})
}

func TestRedisStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedisStore(t, time.Hour)

	_, err := s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "abc", []byte(`{"id":"1"}`)))
	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(got))
	assert.Equal(t, time.Hour, mr.TTL("test:report:abc"))

	digests, err := s.Digests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, digests)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	digests, err = s.Digests(ctx)
	require.NoError(t, err)
	assert.Empty(t, digests)

	require.NoError(t, s.Delete(ctx, "missing"))
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedisStore(t, time.Minute)

	require.NoError(t, s.Put(ctx, "old", []byte("a")))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, s.Put(ctx, "new", []byte("b")))

	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	digests, err := s.Digests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, digests)

	members, err := mr.Members("test:reports")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, members)
}

func TestRedisStore_NoTTL(t *testing.T) {
	s, mr := setupRedisStore(t, 0)
	require.NoError(t, s.Put(context.Background(), "abc", []byte("a")))
	assert.Equal(t, time.Duration(0), mr.TTL("test:report:abc"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	_, err := s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("report")
	require.NoError(t, s.Put(ctx, "abc", data))
	data[0] = 'X'

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "report", string(got))

	require.NoError(t, s.Put(ctx, "aaa", []byte("other")))
	digests, err := s.Digests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "abc"}, digests)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, "abc", []byte("a")))
	_, err := s.Get(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	digests, err := s.Digests(ctx)
	require.NoError(t, err)
	assert.Empty(t, digests)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := fmt.Sprintf("d%02d", i)
			assert.NoError(t, s.Put(ctx, d, []byte(d)))
			got, err := s.Get(ctx, d)
			assert.NoError(t, err)
			assert.Equal(t, d, string(got))
		}(i)
	}
	wg.Wait()

	digests, err := s.Digests(ctx)
	require.NoError(t, err)
	assert.Len(t, digests, 16)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
