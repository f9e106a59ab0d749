package redis

import (
	"context"
	"encoding/json"
	"time"
)

// DraftStore caches in-progress tax-preparation form drafts per user.
// Drafts live until the filing is submitted or the TTL lapses.
type DraftStore struct {
	ttl time.Duration
}

// NewDraftStore creates a new draft store
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{ttl: ttl}
}

// SaveDraft stores the draft JSON for a user, resetting the TTL
func (s *DraftStore) SaveDraft(ctx context.Context, userID string, draft interface{}) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return Set(ctx, "taxdraft:"+userID, data, s.ttl)
}

// GetDraft loads a user's draft into dest. Returns redis.Nil via the
// client when no draft exists; callers translate that to not-found.
func (s *DraftStore) GetDraft(ctx context.Context, userID string, dest interface{}) error {
	data, err := Get(ctx, "taxdraft:"+userID)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// ClearDraft removes a user's draft (called after submission)
func (s *DraftStore) ClearDraft(ctx context.Context, userID string) error {
	return Del(ctx, "taxdraft:"+userID)
}
