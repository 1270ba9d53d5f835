package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/timmy/calsnap/internal/domain"
	"gorm.io/gorm"
)

// MealRepository is the durable meal store. Records are addressed by their
// position in the newest-first list; positions shift after every removal.
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new MealRepository.
func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Append inserts a record. CreatedAt is set by gorm when zero.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - record: record to persist; its ID is assigned on return.
// Returns:
//   - error: non-nil if the insert fails.
func (r *MealRepository) Append(ctx context.Context, record *domain.MealRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List returns every record, newest first.
func (r *MealRepository) List(ctx context.Context) ([]domain.MealRecord, error) {
	var records []domain.MealRecord
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return records, nil
}

// ListBetween returns records created in [from, to), newest first.
func (r *MealRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.MealRecord, error) {
	var records []domain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals between %s and %s: %w", from, to, err)
	}
	return records, nil
}

// Remove deletes the record at index in the newest-first list.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - index: zero-based position in List's order.
// Returns:
//   - *domain.MealRecord: the removed record.
//   - error: domain.ErrIndexOutOfRange if index is outside the list.
func (r *MealRepository) Remove(ctx context.Context, index int) (*domain.MealRecord, error) {
	if index < 0 {
		return nil, domain.ErrIndexOutOfRange
	}

	var removed domain.MealRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var records []domain.MealRecord
		if err := tx.Order("id DESC").Offset(index).Limit(1).Find(&records).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return domain.ErrIndexOutOfRange
		}
		removed = records[0]
		return tx.Delete(&domain.MealRecord{}, removed.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Count returns the number of stored records.
func (r *MealRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.MealRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
