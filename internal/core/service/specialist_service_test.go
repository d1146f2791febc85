package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/specialists-api/internal/core/cache"
	"github.com/clinicdesk/specialists-api/internal/core/domain"
	"github.com/clinicdesk/specialists-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub cache store
// ---------------------------------------------------------------------------

type memStore struct {
	data    map[string][]byte
	getErr  error // if set, Get returns this error
	deletes int   // number of DeletePrefix calls
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) DeletePrefix(_ context.Context, prefix string) error {
	s.deletes++
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubSpecialistRepo struct {
	byID      map[int64]*domain.Specialist
	nextID    int64
	findCalls int // number of FindByID calls
	listCalls int // number of FindAll calls
	createErr error
}

func newStubSpecialistRepo() *stubSpecialistRepo {
	return &stubSpecialistRepo{byID: make(map[int64]*domain.Specialist)}
}

func (r *stubSpecialistRepo) Create(_ context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *s
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSpecialistRepo) FindByID(_ context.Context, id int64) (*domain.Specialist, error) {
	r.findCalls++
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSpecialistNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSpecialistRepo) FindAll(_ context.Context) ([]*domain.Specialist, error) {
	r.listCalls++
	out := make([]*domain.Specialist, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if s, ok := r.byID[id]; ok {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSpecialistRepo) Update(_ context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	if _, ok := r.byID[s.ID]; !ok {
		return nil, domain.ErrSpecialistNotFound
	}
	clone := *s
	r.byID[s.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSpecialistRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSpecialistNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-image-data")

func newSpecialistFixture() (*SpecialistService, *stubSpecialistRepo, *memStore) {
	repo := newStubSpecialistRepo()
	store := newMemStore()
	svc := NewSpecialistService(repo, store, time.Minute, discardLogger)
	return svc, repo, store
}

func doeInput() ports.CreateSpecialistInput {
	return ports.CreateSpecialistInput{LastName: "Doe", FirstName: "Jane", Avatar: pngBytes}
}

// ---------------------------------------------------------------------------
// Create / Get round-trip
// ---------------------------------------------------------------------------

func TestSpecialistService_CreateGetRoundTrip(t *testing.T) {
	svc, _, _ := newSpecialistFixture()

	created, err := svc.Create(context.Background(), doeInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}
	if created.LastName != "Doe" || created.FirstName != "Jane" {
		t.Errorf("created fields do not match input: %+v", created)
	}
	if created.AvatarBase64 == nil {
		t.Fatal("created projection must carry the avatar")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get after create failed: %v", err)
	}
	if got.LastName != "Doe" || got.FirstName != "Jane" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.AvatarBase64 == nil || *got.AvatarBase64 != *created.AvatarBase64 {
		t.Error("avatar projection must survive the round-trip")
	}
}

func TestSpecialistService_Create_RepoErrorSkipsInvalidation(t *testing.T) {
	svc, repo, store := newSpecialistFixture()
	repo.createErr = errors.New("db unavailable")

	if _, err := svc.Create(context.Background(), doeInput()); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
	if store.deletes != 0 {
		t.Errorf("failed create must not invalidate the cache, got %d deletes", store.deletes)
	}
}

// ---------------------------------------------------------------------------
// Cache behaviour
// ---------------------------------------------------------------------------

func TestSpecialistService_Get_SecondCallServedFromCache(t *testing.T) {
	svc, repo, _ := newSpecialistFixture()
	created, _ := svc.Create(context.Background(), doeInput())

	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if repo.findCalls != 1 {
		t.Errorf("expected 1 repository read, got %d", repo.findCalls)
	}
}

func TestSpecialistService_List_SecondCallServedFromCache(t *testing.T) {
	svc, repo, _ := newSpecialistFixture()
	_, _ = svc.Create(context.Background(), doeInput())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("expected 1 repository list, got %d", repo.listCalls)
	}
}

func TestSpecialistService_UpdateInvalidatesCachedGet(t *testing.T) {
	svc, _, _ := newSpecialistFixture()
	created, _ := svc.Create(context.Background(), doeInput())

	// Populate the cache.
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateSpecialistInput{
		LastName: "Smith", FirstName: "Jane", Avatar: pngBytes,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.LastName != "Smith" {
		t.Errorf("update projection stale: %+v", updated)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if got.LastName != "Smith" {
		t.Errorf("get after update returned stale data: %+v", got)
	}
}

func TestSpecialistService_DeleteInvalidatesCachedList(t *testing.T) {
	svc, _, _ := newSpecialistFixture()
	created, _ := svc.Create(context.Background(), doeInput())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list after delete must be empty, got %d entries", len(list))
	}
}

func TestSpecialistService_Get_CacheDownFallsBackToRepo(t *testing.T) {
	svc, repo, store := newSpecialistFixture()
	created, _ := svc.Create(context.Background(), doeInput())
	store.getErr = errors.New("redis unavailable")

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("cache outage must not fail reads: %v", err)
	}
	if got.LastName != "Doe" {
		t.Errorf("unexpected result: %+v", got)
	}
	if repo.findCalls == 0 {
		t.Error("expected the repository to serve the read")
	}
}

// ---------------------------------------------------------------------------
// Not-found variants
// ---------------------------------------------------------------------------

func TestSpecialistService_Get_NotFound(t *testing.T) {
	svc, _, _ := newSpecialistFixture()

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected ErrSpecialistNotFound, got %v", err)
	}
}

func TestSpecialistService_Get_MissingAvatar(t *testing.T) {
	svc, repo, _ := newSpecialistFixture()
	repo.nextID = 1
	repo.byID[1] = &domain.Specialist{ID: 1, LastName: "Doe", FirstName: "Jane"}

	_, err := svc.Get(context.Background(), 1)
	if !errors.Is(err, domain.ErrAvatarNotFound) {
		t.Fatalf("expected ErrAvatarNotFound, got %v", err)
	}
}

func TestSpecialistService_List_NullsMissingAvatars(t *testing.T) {
	svc, repo, _ := newSpecialistFixture()
	_, _ = svc.Create(context.Background(), doeInput())
	repo.nextID++
	repo.byID[repo.nextID] = &domain.Specialist{ID: repo.nextID, LastName: "Roe", FirstName: "Jon"}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].AvatarBase64 == nil {
		t.Error("first entry must carry its avatar")
	}
	if list[1].AvatarBase64 != nil {
		t.Error("avatar-less entry must project a null avatar")
	}
}

func TestSpecialistService_Update_NotFound(t *testing.T) {
	svc, _, store := newSpecialistFixture()

	_, err := svc.Update(context.Background(), 42, ports.UpdateSpecialistInput{
		LastName: "Smith", FirstName: "Jane", Avatar: pngBytes,
	})
	if !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected ErrSpecialistNotFound, got %v", err)
	}
	if store.deletes != 0 {
		t.Errorf("failed update must not invalidate the cache, got %d deletes", store.deletes)
	}
}

func TestSpecialistService_DeleteThenGet_NotFound(t *testing.T) {
	svc, _, _ := newSpecialistFixture()
	created, _ := svc.Create(context.Background(), doeInput())

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected ErrSpecialistNotFound after delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected ErrSpecialistNotFound on double delete, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// End-to-end lifecycle
// ---------------------------------------------------------------------------

func TestSpecialistService_Lifecycle(t *testing.T) {
	svc, _, _ := newSpecialistFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, doeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 || created.LastName != "Doe" || created.FirstName != "Jane" {
		t.Fatalf("unexpected created record: %+v", created)
	}

	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastName != created.LastName || got.FirstName != created.FirstName {
		t.Fatalf("get does not match create: %+v vs %+v", got, created)
	}

	if _, err := svc.Update(ctx, 1, ports.UpdateSpecialistInput{
		LastName: "Smith", FirstName: "Jane", Avatar: pngBytes,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err = svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.LastName != "Smith" {
		t.Fatalf("expected last name Smith, got %q", got.LastName)
	}

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, 1); !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
