package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/logger"
)

// SessionUpdate changes the non-nil session values.
type SessionUpdate struct {
	UserID       *string `json:"userId,omitempty"`
	GoalCalories *int    `json:"goalCalories,omitempty"`
}

// SessionService exposes the single active session.
type SessionService struct {
	store SessionStore
}

// NewSessionService creates a new session service.
func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Get returns the current session.
func (s *SessionService) Get(ctx context.Context) (*domain.Session, error) {
	return s.store.Load(ctx)
}

// Update validates and saves the changed values.
// Returns domain.ErrInvalidGoal or domain.ErrInvalidUserID without saving
// anything when a value is rejected.
func (s *SessionService) Update(ctx context.Context, upd *SessionUpdate) (*domain.Session, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if upd.UserID != nil {
		sess.UserID = strings.TrimSpace(*upd.UserID)
	}
	if upd.GoalCalories != nil {
		sess.GoalCalories = *upd.GoalCalories
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logger.CtxInfo(logger.SetUserID(ctx, sess.UserID), "Session updated: goal_calories=%d", sess.GoalCalories)
	return sess, nil
}
