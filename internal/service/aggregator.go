package service

import (
	"math"

	"github.com/timmy/calsnap/internal/domain"
)

// Aggregate sums records into progress against goalCalories.
// Remaining never goes below zero and every percentage is clamped to [0, 100];
// macro percentages convert grams with 4/4/9 kcal per gram for the display bars.
// Parameters:
//   - records: meals to sum, usually the current day's.
//   - goalCalories: daily calorie goal; non-positive goals yield zero percentages.
// Returns:
//   - domain.Progress: derived totals.
func Aggregate(records []domain.MealRecord, goalCalories int) domain.Progress {
	p := domain.Progress{
		GoalCalories: goalCalories,
		MealCount:    len(records),
	}
	for _, r := range records {
		p.Consumed += r.Calories
		p.Macros.Carbs += r.CarbsGrams
		p.Macros.Protein += r.ProteinGrams
		p.Macros.Fat += r.FatGrams
	}

	if goalCalories <= 0 {
		return p
	}

	p.Remaining = max(goalCalories-p.Consumed, 0)
	p.PercentConsumed = percentOfGoal(p.Consumed, goalCalories)
	p.MacroPercents = domain.MacroPercents{
		Carbs:   percentOfGoal(p.Macros.Carbs*domain.KcalPerGramCarbs, goalCalories),
		Protein: percentOfGoal(p.Macros.Protein*domain.KcalPerGramProtein, goalCalories),
		Fat:     percentOfGoal(p.Macros.Fat*domain.KcalPerGramFat, goalCalories),
	}
	return p
}

func percentOfGoal(kcal, goal int) float64 {
	pct := float64(kcal) * 100 / float64(goal)
	return math.Min(math.Max(pct, 0), 100)
}
