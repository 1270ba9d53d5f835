package service

import "github.com/timmy/calsnap/internal/domain"

// Recipe lists what a recommended meal needs and how to make it.
type Recipe struct {
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// RecommendedMeal is one entry of the fixed recommendation catalog.
type RecommendedMeal struct {
	Name     string             `json:"name"`
	Calories int                `json:"calories"`
	Emoji    string             `json:"emoji"`
	Macros   domain.MacroTotals `json:"macros"`
	Recipe   Recipe             `json:"recipe"`
}

var recommendedMeals = []RecommendedMeal{
	{
		Name:     "에그 샌드위치",
		Calories: 350,
		Emoji:    "🥪",
		Macros:   domain.MacroTotals{Carbs: 40, Protein: 18, Fat: 12},
		Recipe: Recipe{
			Ingredients: []string{"계란 2개", "식빵 2장", "버터 약간", "소금/후추"},
			Steps: []string{
				"계란을 삶거나 스크램블한다",
				"식빵을 굽고 버터를 바른다",
				"계란을 올리고 소금/후추로 간한다",
				"식빵으로 덮고 반으로 자른다",
			},
		},
	},
	{
		Name:     "닭가슴살 도시락",
		Calories: 480,
		Emoji:    "🍛",
		Macros:   domain.MacroTotals{Carbs: 45, Protein: 30, Fat: 15},
		Recipe: Recipe{
			Ingredients: []string{"닭가슴살 150g", "현미밥 1공기", "브로콜리 데침"},
			Steps: []string{
				"닭가슴살을 구워 준비한다",
				"브로콜리를 데친다",
				"현미밥과 함께 도시락에 담는다",
			},
		},
	},
	{
		Name:     "현미밥 + 된장국",
		Calories: 500,
		Emoji:    "🍚",
		Macros:   domain.MacroTotals{Carbs: 60, Protein: 20, Fat: 10},
		Recipe: Recipe{
			Ingredients: []string{"현미밥", "된장", "두부", "애호박", "양파"},
			Steps: []string{
				"된장국을 끓인다 (된장 + 야채 + 두부)",
				"현미밥과 함께 그릇에 담는다",
			},
		},
	},
	{
		Name:     "단백질바",
		Calories: 200,
		Emoji:    "🍫",
		Macros:   domain.MacroTotals{Carbs: 15, Protein: 20, Fat: 6},
		Recipe: Recipe{
			Ingredients: []string{"단백질 파우더", "귀리", "코코넛 오일", "견과류"},
			Steps: []string{
				"재료를 섞고 틀에 눌러 담는다",
				"냉장 보관 후 꺼낸다",
			},
		},
	},
}

// RecommendedMeals returns the catalog.
func RecommendedMeals() []RecommendedMeal {
	return append([]RecommendedMeal(nil), recommendedMeals...)
}

// RecommendedMealAt returns the catalog entry at index.
func RecommendedMealAt(index int) (RecommendedMeal, bool) {
	if index < 0 || index >= len(recommendedMeals) {
		return RecommendedMeal{}, false
	}
	return recommendedMeals[index], true
}
