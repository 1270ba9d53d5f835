package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/storage"
)

type stubGateway struct {
	reply   string
	err     error
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (g *stubGateway) Model() string { return "stub-vlm" }

func (g *stubGateway) Analyze(ctx context.Context, image []byte) (string, error) {
	g.calls++
	if g.entered != nil {
		g.entered <- struct{}{}
		<-g.release
	}
	if len(image) == 0 {
		return "", domain.ErrEmptyInput
	}
	return g.reply, g.err
}

type memMealStore struct {
	mu      sync.Mutex
	records []domain.MealRecord // newest first
	nextID  uint
	now     func() time.Time
	failErr error
}

func (m *memMealStore) Append(ctx context.Context, r *domain.MealRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.nextID++
	r.ID = m.nextID
	if r.CreatedAt.IsZero() {
		if m.now != nil {
			r.CreatedAt = m.now()
		} else {
			r.CreatedAt = time.Now()
		}
	}
	m.records = append([]domain.MealRecord{*r}, m.records...)
	return nil
}

func (m *memMealStore) List(ctx context.Context) ([]domain.MealRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.MealRecord(nil), m.records...), nil
}

func (m *memMealStore) ListBetween(ctx context.Context, from, to time.Time) ([]domain.MealRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MealRecord
	for _, r := range m.records {
		if !r.CreatedAt.Before(from) && r.CreatedAt.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMealStore) Remove(ctx context.Context, index int) (*domain.MealRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.records) {
		return nil, domain.ErrIndexOutOfRange
	}
	r := m.records[index]
	m.records = append(m.records[:index], m.records[index+1:]...)
	return &r, nil
}

type memSessionStore struct {
	session domain.Session
}

func newMemSessionStore(goal int) *memSessionStore {
	return &memSessionStore{session: domain.Session{UserID: domain.DefaultUserID, GoalCalories: goal}}
}

func (s *memSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	c := s.session
	return &c, nil
}

func (s *memSessionStore) Save(ctx context.Context, sess *domain.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	s.session = *sess
	return nil
}

type memSummaryStore struct {
	summaries []domain.DailySummary
}

func (s *memSummaryStore) Upsert(ctx context.Context, d *domain.DailySummary) error {
	for i, existing := range s.summaries {
		if existing.UserID == d.UserID && existing.Date.Equal(d.Date) {
			s.summaries[i] = *d
			return nil
		}
	}
	s.summaries = append(s.summaries, *d)
	return nil
}

func (s *memSummaryStore) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.DailySummary, error) {
	var out []domain.DailySummary
	for _, d := range s.summaries {
		if d.UserID == userID && !d.Date.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

type memObjectStorage struct {
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newMemObjectStorage() *memObjectStorage {
	return &memObjectStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memObjectStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memObjectStorage) Download(ctx context.Context, key string) (*storage.Object, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Object{Body: io.NopCloser(bytes.NewReader(data)), ContentType: s.types[key], Size: int64(len(data))}, nil
}

func (s *memObjectStorage) GetURL(key string) string { return "/api/v1/images/" + key }

func (s *memObjectStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

type memProfileStore struct {
	profiles map[string]domain.Profile
}

func (s *memProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *memProfileStore) Save(ctx context.Context, p *domain.Profile) error {
	if s.profiles == nil {
		s.profiles = map[string]domain.Profile{}
	}
	s.profiles[p.UserID] = *p
	return nil
}
