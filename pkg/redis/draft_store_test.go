package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type draftPayload struct {
	Step    int    `json:"step"`
	TaxType string `json:"taxType"`
}

func TestDraftStore_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	store := NewDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, "user-1", &draftPayload{Step: 3, TaxType: "vat"}))

	var got draftPayload
	require.NoError(t, store.GetDraft(ctx, "user-1", &got))
	require.Equal(t, 3, got.Step)
	require.Equal(t, "vat", got.TaxType)

	// Re-saving replaces the previous draft
	require.NoError(t, store.SaveDraft(ctx, "user-1", &draftPayload{Step: 4, TaxType: "vat"}))
	require.NoError(t, store.GetDraft(ctx, "user-1", &got))
	require.Equal(t, 4, got.Step)

	require.NoError(t, store.ClearDraft(ctx, "user-1"))
	require.ErrorIs(t, store.GetDraft(ctx, "user-1", &got), goredis.Nil)
}

func TestDraftStore_TTL(t *testing.T) {
	mr := setupMiniredis(t)
	store := NewDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, "user-2", &draftPayload{Step: 1}))
	mr.FastForward(2 * time.Hour)

	var got draftPayload
	require.ErrorIs(t, store.GetDraft(ctx, "user-2", &got), goredis.Nil)
}

func TestDraftStore_PerUserIsolation(t *testing.T) {
	setupMiniredis(t)
	store := NewDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, "user-a", &draftPayload{Step: 1, TaxType: "individual"}))
	require.NoError(t, store.SaveDraft(ctx, "user-b", &draftPayload{Step: 5, TaxType: "business"}))

	var a, b draftPayload
	require.NoError(t, store.GetDraft(ctx, "user-a", &a))
	require.NoError(t, store.GetDraft(ctx, "user-b", &b))
	require.Equal(t, "individual", a.TaxType)
	require.Equal(t, "business", b.TaxType)
}
