package usecases

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/pkg/logger"
	"tax-portal.backend/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

// recordingPublisher captures published change events
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(table, action, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, table+"/"+action)
}

func (p *recordingPublisher) has(event string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == event {
			return true
		}
	}
	return false
}

type requestRepoStub struct {
	byID       map[uuid.UUID]*entities.ServiceRequest
	updateErr  error
	lastStatus entities.RequestStatus
	lastReason string
}

func newRequestRepoStub() *requestRepoStub {
	return &requestRepoStub{byID: map[uuid.UUID]*entities.ServiceRequest{}}
}

func (s *requestRepoStub) Create(_ context.Context, r *entities.ServiceRequest) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	s.byID[r.ID] = r
	return nil
}

func (s *requestRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.ServiceRequest, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return r, nil
}

func (s *requestRepoStub) ListByClient(_ context.Context, clientID uuid.UUID) ([]*entities.ServiceRequest, error) {
	var out []*entities.ServiceRequest
	for _, r := range s.byID {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *requestRepoStub) List(_ context.Context, status entities.RequestStatus) ([]*entities.ServiceRequest, error) {
	var out []*entities.ServiceRequest
	for _, r := range s.byID {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *requestRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.RequestStatus, reason string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	r, ok := s.byID[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = status
	if reason == "" {
		r.RejectionReason.Valid = false
		r.RejectionReason.String = ""
	} else {
		r.RejectionReason.SetValid(reason)
	}
	s.lastStatus = status
	s.lastReason = reason
	return nil
}

func (s *requestRepoStub) CountByStatus(context.Context) (map[entities.RequestStatus]int64, error) {
	counts := map[entities.RequestStatus]int64{}
	for _, r := range s.byID {
		counts[r.Status]++
	}
	return counts, nil
}

type paymentRepoStub struct {
	byID map[uuid.UUID]*entities.Payment
}

func newPaymentRepoStub() *paymentRepoStub {
	return &paymentRepoStub{byID: map[uuid.UUID]*entities.Payment{}}
}

func (s *paymentRepoStub) Create(_ context.Context, p *entities.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	s.byID[p.ID] = p
	return nil
}

func (s *paymentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Payment, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *paymentRepoStub) ListByClient(_ context.Context, clientID uuid.UUID) ([]*entities.Payment, error) {
	var out []*entities.Payment
	for _, p := range s.byID {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *paymentRepoStub) List(_ context.Context, filter entities.PaymentFilter) ([]*entities.Payment, error) {
	var out []*entities.Payment
	for _, p := range s.byID {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *paymentRepoStub) ListPaged(ctx context.Context, filter entities.PaymentFilter, _ utils.PaginationParams) ([]*entities.Payment, int64, error) {
	out, err := s.List(ctx, filter)
	return out, int64(len(out)), err
}

func (s *paymentRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.PaymentStatus, reason string) error {
	p, ok := s.byID[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	p.Status = status
	if reason == "" {
		p.RejectionReason.Valid = false
		p.RejectionReason.String = ""
	} else {
		p.RejectionReason.SetValid(reason)
	}
	return nil
}

func (s *paymentRepoStub) CountByStatus(_ context.Context, status entities.PaymentStatus) (int64, error) {
	var n int64
	for _, p := range s.byID {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *paymentRepoStub) SumVerified(context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.byID {
		if p.Status == entities.PaymentStatusVerified {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

type activityRepoStub struct {
	mu      sync.Mutex
	entries []*entities.UserActivity
	err     error
}

func (s *activityRepoStub) Create(_ context.Context, a *entities.UserActivity) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.New()
	s.entries = append(s.entries, a)
	return nil
}

func (s *activityRepoStub) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entities.UserActivity, error) {
	var out []*entities.UserActivity
	for _, a := range s.entries {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *activityRepoStub) ListRecent(_ context.Context, limit int) ([]*entities.UserActivity, error) {
	out := s.entries
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *activityRepoStub) lastType() entities.ActivityType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[len(s.entries)-1].Type
}

type documentRepoStub struct {
	byID      map[uuid.UUID]*entities.RequestDocument
	deleteErr error
}

func newDocumentRepoStub() *documentRepoStub {
	return &documentRepoStub{byID: map[uuid.UUID]*entities.RequestDocument{}}
}

func (s *documentRepoStub) Create(_ context.Context, d *entities.RequestDocument) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	s.byID[d.ID] = d
	return nil
}

func (s *documentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.RequestDocument, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return d, nil
}

func (s *documentRepoStub) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entities.RequestDocument, error) {
	var out []*entities.RequestDocument
	for _, d := range s.byID {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *documentRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.byID[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type profileRepoStub struct {
	byID map[uuid.UUID]*entities.Profile
}

func newProfileRepoStub() *profileRepoStub {
	return &profileRepoStub{byID: map[uuid.UUID]*entities.Profile{}}
}

func (s *profileRepoStub) Create(_ context.Context, p *entities.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.byID[p.ID] = p
	return nil
}

func (s *profileRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Profile, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *profileRepoStub) GetByEmail(_ context.Context, email string) (*entities.Profile, error) {
	for _, p := range s.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *profileRepoStub) Update(_ context.Context, p *entities.Profile) error {
	if _, ok := s.byID[p.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	s.byID[p.ID] = p
	return nil
}

func (s *profileRepoStub) List(_ context.Context, _ string) ([]*entities.Profile, error) {
	var out []*entities.Profile
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

func (s *profileRepoStub) CountByRole(_ context.Context, role entities.ProfileRole) (int64, error) {
	var n int64
	for _, p := range s.byID {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *profileRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// memBlobStore keeps blobs in a map, optionally failing deletes
type memBlobStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	deleteErr error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: map[string][]byte{}}
}

func (s *memBlobStore) Save(_ context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return int64(len(data)), nil
}

func (s *memBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memBlobStore) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *memBlobStore) Exists(_ context.Context, key string) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	return ok, int64(len(data)), nil
}

// tinyPNG returns a small valid PNG payload for receipt uploads
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
