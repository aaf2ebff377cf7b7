// SPDX-License-Identifier: MIT

package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tsdist/cache"
)

func TestMemory_GetSetExpiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	now := time.Unix(1000, 0)
	c.SetClock(func() time.Time { return now })

	val := []byte("matrix")
	require.NoError(t, c.Set(ctx, "k", val, time.Minute))
	val[0] = 'X'

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("matrix"), got, "stored value is a copy")

	now = now.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.Set(ctx, "forever", []byte("v"), 0))
	now = now.Add(24 * time.Hour)
	_, ok, _ = c.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := cache.NewRedis(db)

	mock.ExpectGet(cache.DefaultPrefix + "k").RedisNil()
	mock.ExpectSet(cache.DefaultPrefix+"k", []byte("v"), time.Minute).SetVal("OK")
	mock.ExpectGet(cache.DefaultPrefix + "k").SetVal("v")
	mock.ExpectGet(cache.DefaultPrefix + "broken").SetErr(errors.New("conn reset"))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	_, ok, err = c.Get(ctx, "broken")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKey(t *testing.T) {
	x := [][]float64{{1, 2}, {3}}
	k := cache.Key("dtw", []byte(`{"band":1}`), x, nil)
	assert.Len(t, k, 64)
	assert.Equal(t, k, cache.Key("dtw", []byte(`{"band":1}`), [][]float64{{1, 2}, {3}}, nil))

	assert.NotEqual(t, k, cache.Key("msm", []byte(`{"band":1}`), x, nil))
	assert.NotEqual(t, k, cache.Key("dtw", []byte(`{"band":0.5}`), x, nil))
	assert.NotEqual(t, k, cache.Key("dtw", []byte(`{"band":1}`), x, [][]float64{}))
	assert.NotEqual(t, k, cache.Key("dtw", []byte(`{"band":1}`), [][]float64{{1}, {2, 3}}, nil))
}
