package repository

import (
	"context"
	"time"

	"github.com/timmy/calsnap/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryRepository stores daily progress snapshots.
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Upsert writes the snapshot for (user, date), replacing an earlier one.
// Date should be a UTC midnight naming the local calendar day.
func (r *SummaryRepository) Upsert(ctx context.Context, s *domain.DailySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"goal_calories", "consumed", "carbs", "protein", "fat", "meal_count", "updated_at",
		}),
	}).Create(s).Error
}

// ListSince returns the user's snapshots dated on or after since, oldest first.
func (r *SummaryRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.DailySummary, error) {
	var summaries []domain.DailySummary
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since.UTC()).
		Order("date ASC").
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
