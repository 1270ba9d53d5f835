package domain

import "time"

// Calorie-per-gram factors used for the macro bars.
const (
	KcalPerGramCarbs   = 4
	KcalPerGramProtein = 4
	KcalPerGramFat     = 9
)

// MacroTotals holds summed grams per macro.
type MacroTotals struct {
	Carbs   int `json:"carbs"`
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
}

// MacroPercents holds per-macro bar widths in percent of the calorie goal.
type MacroPercents struct {
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
}

// Progress is the derived view of a day's meals against a calorie goal.
// It is recomputed on every read and never stored.
type Progress struct {
	GoalCalories    int           `json:"goalCalories"`
	Consumed        int           `json:"consumed"`
	Remaining       int           `json:"remaining"`
	PercentConsumed float64       `json:"percentConsumed"`
	Macros          MacroTotals   `json:"macroTotals"`
	MacroPercents   MacroPercents `json:"macroPercents"`
	MealCount       int           `json:"mealCount"`
}

// DailySummary is a snapshot of one day's progress written by the scheduler.
type DailySummary struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       string    `gorm:"type:text;not null;index:idx_daily_summaries_user_date,unique" json:"userId"`
	Date         time.Time `gorm:"not null;index:idx_daily_summaries_user_date,unique" json:"date"`
	GoalCalories int       `json:"goalCalories"`
	Consumed     int       `json:"consumed"`
	Carbs        int       `json:"carbs"`
	Protein      int       `json:"protein"`
	Fat          int       `json:"fat"`
	MealCount    int       `json:"mealCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for DailySummary.
func (DailySummary) TableName() string {
	return "daily_summaries"
}
