package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/timmy/calsnap/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys of the persisted session values.
const (
	settingUserID       = "user_id"
	settingGoalCalories = "goal_calories"
)

// setting is one key/value pair of application state.
type setting struct {
	Key       string `gorm:"type:text;primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (setting) TableName() string {
	return "settings"
}

// SessionRepository persists the session as single values under fixed keys.
type SessionRepository struct {
	db       *gorm.DB
	defaults domain.Session
}

// NewSessionRepository creates a repository that falls back to defaults for missing keys.
// Parameters:
//   - db: GORM database handle.
//   - defaults: session used before anything was saved.
// Returns:
//   - *SessionRepository: repository instance bound to db.
func NewSessionRepository(db *gorm.DB, defaults domain.Session) *SessionRepository {
	return &SessionRepository{db: db, defaults: defaults}
}

// Load reads the stored session, filling gaps from the defaults.
func (r *SessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	s := r.defaults

	userID, err := r.get(ctx, settingUserID)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		s.UserID = userID
	}

	goal, err := r.get(ctx, settingGoalCalories)
	if err != nil {
		return nil, err
	}
	if goal != "" {
		n, convErr := strconv.Atoi(goal)
		if convErr != nil {
			return nil, fmt.Errorf("stored goal calories %q: %w", goal, convErr)
		}
		s.GoalCalories = n
	}

	return &s, nil
}

// Save validates and writes both session values in one transaction.
func (r *SessionRepository) Save(ctx context.Context, s *domain.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := []setting{
			{Key: settingUserID, Value: s.UserID},
			{Key: settingGoalCalories, Value: strconv.Itoa(s.GoalCalories)},
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

func (r *SessionRepository) get(ctx context.Context, key string) (string, error) {
	var s setting
	err := r.db.WithContext(ctx).Where(&setting{Key: key}).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return s.Value, nil
}
