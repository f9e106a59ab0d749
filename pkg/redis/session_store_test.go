package redis

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr
}

func TestNewSessionStore_KeyValidation(t *testing.T) {
	_, err := NewSessionStore("zz-not-hex")
	require.Error(t, err)

	_, err = NewSessionStore("abcd")
	require.Error(t, err, "short keys are rejected")

	_, err = NewSessionStore(testKeyHex)
	require.NoError(t, err)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	mr := setupMiniredis(t)
	store, err := NewSessionStore(testKeyHex)
	require.NoError(t, err)
	ctx := context.Background()

	data := &SessionData{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}
	require.NoError(t, store.CreateSession(ctx, "sess-1", data, time.Hour))

	got, err := store.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "access-jwt", got.AccessToken)
	require.Equal(t, "refresh-jwt", got.RefreshToken)

	// The stored value is ciphertext, not the token JSON
	raw, err := mr.Get("session:sess-1")
	require.NoError(t, err)
	require.NotContains(t, raw, "access-jwt")
	_, err = hex.DecodeString(raw)
	require.NoError(t, err)

	require.NoError(t, store.DeleteSession(ctx, "sess-1"))
	_, err = store.GetSession(ctx, "sess-1")
	require.ErrorIs(t, err, goredis.Nil)
}

func TestSessionStore_Expiry(t *testing.T) {
	mr := setupMiniredis(t)
	store, err := NewSessionStore(testKeyHex)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, "sess-ttl", &SessionData{AccessToken: "a"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err = store.GetSession(ctx, "sess-ttl")
	require.ErrorIs(t, err, goredis.Nil)
}

func TestSessionStore_WrongKeyCannotDecrypt(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	store, err := NewSessionStore(testKeyHex)
	require.NoError(t, err)
	require.NoError(t, store.CreateSession(ctx, "sess-2", &SessionData{AccessToken: "a"}, time.Hour))

	otherKey := strings.Repeat("ff", 32)
	other, err := NewSessionStore(otherKey)
	require.NoError(t, err)

	_, err = other.GetSession(ctx, "sess-2")
	require.Error(t, err)
}
