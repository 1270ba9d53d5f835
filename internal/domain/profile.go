package domain

import (
	"math"
	"strings"
	"time"
)

// ActivityLevel is the self-reported activity of the user.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityNormal ActivityLevel = "normal"
	ActivityHigh   ActivityLevel = "high"
)

// Profile holds the body metrics shown on the profile screen.
type Profile struct {
	UserID       string        `gorm:"type:text;primaryKey" json:"userId"`
	Name         string        `gorm:"type:text" json:"name"`
	Status       string        `gorm:"type:text" json:"status"`
	HeightCm     float64       `json:"heightCm"`
	WeightKg     float64       `json:"weightKg"`
	GoalWeightKg float64       `json:"goalWeightKg"`
	Activity     ActivityLevel `gorm:"type:text;default:normal" json:"activity"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string {
	return "profiles"
}

// DefaultProfile returns the profile shown before the user edits anything.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:       userID,
		Name:         userID,
		Status:       "다이어트 중",
		HeightCm:     170,
		WeightKg:     65,
		GoalWeightKg: 60,
		Activity:     ActivityNormal,
	}
}

// Validate checks the metrics are plausible.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrInvalidUserID
	}
	if p.HeightCm < 50 || p.HeightCm > 250 || p.WeightKg < 10 || p.WeightKg > 400 {
		return ErrInvalidProfile
	}
	if p.GoalWeightKg < 0 || p.GoalWeightKg > 400 {
		return ErrInvalidProfile
	}
	switch p.Activity {
	case ActivityLow, ActivityNormal, ActivityHigh:
	default:
		return ErrInvalidProfile
	}
	return nil
}

// BMI returns weight / height² rounded to one decimal.
func (p *Profile) BMI() float64 {
	if p.HeightCm <= 0 {
		return 0
	}
	h := p.HeightCm / 100
	return math.Round(p.WeightKg/(h*h)*10) / 10
}

// BMICategory returns the Korean label for a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "저체중"
	case bmi < 25:
		return "정상"
	case bmi < 30:
		return "과체중"
	default:
		return "비만"
	}
}
