package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"menulink/internal/redis/redistest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLifecycle(t *testing.T) {
	ctx := context.Background()
	fake := redistest.NewFake()
	client := New(fake)

	_, err := client.GetCart(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, client.SetCart(ctx, "s1", []byte(`[{"id":"p1"}]`), time.Hour))
	raw, err := client.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(raw))
	assert.Equal(t, time.Hour, fake.TTL("cart:s1"))

	require.NoError(t, client.DeleteCart(ctx, "s1"))
	_, ok := fake.Value("cart:s1")
	assert.False(t, ok)
}

func TestTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	client := New(redistest.NewFake())

	require.NoError(t, client.SetToken(ctx, "s1", "jwt-value", time.Minute))
	token, err := client.GetToken(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-value", token)

	require.NoError(t, client.DeleteToken(ctx, "s1"))
	_, err = client.GetToken(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBackendErrorsAreWrapped(t *testing.T) {
	fake := redistest.NewFake()
	fake.Err = errors.New("connection refused")
	client := New(fake)

	_, err := client.GetCart(context.Background(), "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cart:abc", CartKey("abc"))
	assert.Equal(t, "token:abc", TokenKey("abc"))
}
