package domain

import "strings"

// Calorie goal bounds accepted from the client.
const (
	MinGoalCalories     = 1000
	MaxGoalCalories     = 3000
	GoalCaloriesStep    = 100
	DefaultGoalCalories = 2000
	DefaultUserID       = "guest"
)

// Session is the single active user's application state.
type Session struct {
	UserID       string `json:"userId"`
	GoalCalories int    `json:"goalCalories"`
}

// DefaultSession returns the state used before anything was saved.
func DefaultSession() *Session {
	return &Session{
		UserID:       DefaultUserID,
		GoalCalories: DefaultGoalCalories,
	}
}

// Validate checks the user id and calorie goal.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return ErrInvalidUserID
	}
	return ValidateGoalCalories(s.GoalCalories)
}

// ValidateGoalCalories checks a goal against the slider bounds.
func ValidateGoalCalories(goal int) error {
	if goal < MinGoalCalories || goal > MaxGoalCalories || goal%GoalCaloriesStep != 0 {
		return ErrInvalidGoal
	}
	return nil
}
