package refcache_test

import (
	"context"
	"errors"
	"finplan/pkg/refcache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *refcache.Cache) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, refcache.New(rdb, refcache.Options{TTL: time.Hour, Prefix: "test:"})
}

type item struct {
	Code string `json:"code"`
}

func TestGetOrLoad_CachesLoadedValue(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++

		return []item{{Code: "US"}}, nil
	}

	v, err := refcache.GetOrLoad(ctx, c, "countries", load)
	require.NoError(t, err)
	require.Equal(t, []item{{Code: "US"}}, v)

	v, err = refcache.GetOrLoad(ctx, c, "countries", load)
	require.NoError(t, err)
	require.Equal(t, []item{{Code: "US"}}, v)
	require.Equal(t, 1, calls)

	require.True(t, mr.Exists("test:countries"))
	require.Equal(t, time.Hour, mr.TTL("test:countries"))

	mr.FastForward(2 * time.Hour)
	_, err = refcache.GetOrLoad(ctx, c, "countries", load)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestGetOrLoad_ErrorsAreNotCached(t *testing.T) {
	mr, c := newTestCache(t)
	boom := errors.New("boom")

	_, err := refcache.GetOrLoad(context.Background(), c, "industries", func(context.Context) ([]item, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.False(t, mr.Exists("test:industries"))
}

func TestGetOrLoad_CorruptEntryIsReloaded(t *testing.T) {
	mr, c := newTestCache(t)
	require.NoError(t, mr.Set("test:currencies", "{not json"))

	v, err := refcache.GetOrLoad(context.Background(), c, "currencies", func(context.Context) ([]item, error) {
		return []item{{Code: "EUR"}}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []item{{Code: "EUR"}}, v)

	got, err := mr.Get("test:currencies")
	require.NoError(t, err)
	require.JSONEq(t, `[{"code":"EUR"}]`, got)
}

func TestGetOrLoad_RedisDown(t *testing.T) {
	mr, c := newTestCache(t)
	mr.Close()

	v, err := refcache.GetOrLoad(context.Background(), c, "countries", func(context.Context) ([]item, error) {
		return []item{{Code: "CA"}}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []item{{Code: "CA"}}, v)
}

func TestGetOrLoad_NilCache(t *testing.T) {
	v, err := refcache.GetOrLoad(context.Background(), nil, "countries", func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	rdb, err := refcache.NewClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	mr.Close()
	_, err = refcache.NewClient(context.Background(), addr, "", 0)
	require.Error(t, err)
}
