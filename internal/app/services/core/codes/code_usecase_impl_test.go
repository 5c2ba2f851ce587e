package codes

import (
	"context"
	"testing"
	"time"

	"claimbridge-service/internal/pkg/constvars"

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

type fakeLookupClient struct {
	description string
	calls       int
}

func (f *fakeLookupClient) LookupProcedureCode(context.Context, string) (string, error) {
	f.calls++
	return f.description, nil
}

func TestGetCodeDescription(t *testing.T) {
	ctx := context.Background()

	t.Run("miss resolves via lookup and caches", func(t *testing.T) {
		redis := newFakeRedis()
		lookup := &fakeLookupClient{description: "Bypass Coronary Artery"}
		uc := &codeUsecase{RedisRepository: redis, CodeLookupClient: lookup, Log: zap.NewNop()}

		result, err := uc.GetCodeDescription(ctx, "0210093")
		require.NoError(t, err)

		assert.Equal(t, "0210093", result.Code)
		assert.Equal(t, "Bypass Coronary Artery", result.Description)
		assert.Equal(t, 1, lookup.calls)
		assert.NotEmpty(t, redis.store[constvars.RedisKeyCodeDescription+"0210093"])
	})

	t.Run("hit skips the lookup client", func(t *testing.T) {
		redis := newFakeRedis()
		lookup := &fakeLookupClient{description: "Bypass Coronary Artery"}
		uc := &codeUsecase{RedisRepository: redis, CodeLookupClient: lookup, Log: zap.NewNop()}

		_, err := uc.GetCodeDescription(ctx, "0210093")
		require.NoError(t, err)

		result, err := uc.GetCodeDescription(ctx, "0210093")
		require.NoError(t, err)

		assert.Equal(t, "Bypass Coronary Artery", result.Description)
		assert.Equal(t, 1, lookup.calls)
	})
}
