package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/logger"
)

// RecentMealCount is how many meals the profile view shows.
const RecentMealCount = 3

// ProfileView is the profile screen: body metrics, BMI and the latest meals.
type ProfileView struct {
	Profile     domain.Profile      `json:"profile"`
	BMI         float64             `json:"bmi"`
	BMICategory string              `json:"bmiCategory"`
	RecentMeals []domain.MealRecord `json:"recentMeals"`
}

// ProfileUpdate changes the non-nil fields of the active user's profile.
type ProfileUpdate struct {
	Name         *string               `json:"name,omitempty"`
	Status       *string               `json:"status,omitempty"`
	HeightCm     *float64              `json:"heightCm,omitempty"`
	WeightKg     *float64              `json:"weightKg,omitempty"`
	GoalWeightKg *float64              `json:"goalWeightKg,omitempty"`
	Activity     *domain.ActivityLevel `json:"activity,omitempty"`
}

// ProfileService reads and edits the active user's profile.
type ProfileService struct {
	profiles ProfileStore
	sessions SessionStore
	meals    MealStore
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles ProfileStore, sessions SessionStore, meals MealStore) *ProfileService {
	return &ProfileService{profiles: profiles, sessions: sessions, meals: meals}
}

// Get returns the active user's profile view. A user without a saved profile
// sees the default one.
func (s *ProfileService) Get(ctx context.Context) (*ProfileView, error) {
	p, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

// Update applies changes, validates and saves the profile.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - upd: fields to change.
// Returns:
//   - *ProfileView: the saved profile view.
//   - error: domain.ErrInvalidProfile for implausible metrics.
func (s *ProfileService) Update(ctx context.Context, upd *ProfileUpdate) (*ProfileView, error) {
	p, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Status != nil {
		p.Status = strings.TrimSpace(*upd.Status)
	}
	if upd.HeightCm != nil {
		p.HeightCm = *upd.HeightCm
	}
	if upd.WeightKg != nil {
		p.WeightKg = *upd.WeightKg
	}
	if upd.GoalWeightKg != nil {
		p.GoalWeightKg = *upd.GoalWeightKg
	}
	if upd.Activity != nil {
		p.Activity = *upd.Activity
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.CtxInfo(logger.SetUserID(ctx, p.UserID), "Profile updated: height=%.1f, weight=%.1f, activity=%s",
		p.HeightCm, p.WeightKg, p.Activity)
	return s.view(ctx, p)
}

func (s *ProfileService) current(ctx context.Context) (*domain.Profile, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	p, err := s.profiles.Get(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		p = domain.DefaultProfile(sess.UserID)
	}
	return p, nil
}

func (s *ProfileService) view(ctx context.Context, p *domain.Profile) (*ProfileView, error) {
	meals, err := s.meals.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(meals) > RecentMealCount {
		meals = meals[:RecentMealCount]
	}
	bmi := p.BMI()
	return &ProfileView{
		Profile:     *p,
		BMI:         bmi,
		BMICategory: domain.BMICategory(bmi),
		RecentMeals: meals,
	}, nil
}
