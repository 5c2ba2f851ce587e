package locker

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedis struct {
	store map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = string(data)
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeRedis) TrySetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if _, exists := f.store[key]; exists {
		return false, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	f.store[key] = string(data)
	return true, nil
}

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("second lock attempt is refused", func(t *testing.T) {
		svc := &lockService{redisRepo: newFakeRedis(), Log: zap.NewNop()}

		acquired, _, err := svc.TryLock(ctx, "lock:key", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		acquired, _, err = svc.TryLock(ctx, "lock:key", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("owner can unlock and relock", func(t *testing.T) {
		redis := newFakeRedis()
		svc := &lockService{redisRepo: redis, Log: zap.NewNop()}

		acquired, lockValue, err := svc.TryLock(ctx, "lock:key", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		// The lease is persisted JSON-marshaled; Unlock compares the quoted form.
		assert.Equal(t, `"`+lockValue+`"`, redis.store["lock:key"])

		require.NoError(t, svc.Unlock(ctx, "lock:key", lockValue))
		assert.Empty(t, redis.store["lock:key"])

		acquired, _, err = svc.TryLock(ctx, "lock:key", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("unlock with a foreign value is refused", func(t *testing.T) {
		redis := newFakeRedis()
		svc := &lockService{redisRepo: redis, Log: zap.NewNop()}

		acquired, _, err := svc.TryLock(ctx, "lock:key", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		err = svc.Unlock(ctx, "lock:key", "not-the-owner")
		assert.Error(t, err)
		assert.NotEmpty(t, redis.store["lock:key"])
	})

	t.Run("unlock without a lock is a no-op", func(t *testing.T) {
		svc := &lockService{redisRepo: newFakeRedis(), Log: zap.NewNop()}
		assert.NoError(t, svc.Unlock(ctx, "lock:key", "anything"))
	})
}
