package service

import (
	"context"
	"time"

	"github.com/timmy/calsnap/internal/domain"
)

// MealStore is the durable list of confirmed meals, addressed by position
// in newest-first order.
type MealStore interface {
	Append(ctx context.Context, record *domain.MealRecord) error
	List(ctx context.Context) ([]domain.MealRecord, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.MealRecord, error)
	Remove(ctx context.Context, index int) (*domain.MealRecord, error)
}

// SessionStore persists the active user id and calorie goal.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

// SummaryStore keeps per-day progress snapshots.
type SummaryStore interface {
	Upsert(ctx context.Context, s *domain.DailySummary) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.DailySummary, error)
}

// ProfileStore persists profiles by user id. Get returns nil when none exists.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) error
}
