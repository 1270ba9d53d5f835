package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/timmy/calsnap/internal/domain"
)

// Patterns for the reply layout requested by prompts.AnalyzeInstruction.
// Each captures the first integer after its label on the same line; labels may
// be followed by "은/는", "is/are", a colon, and an approximation word. English
// labels must stand alone, so "low-fat" or "high-protein" in a food name is not
// a label.
var (
	foodNameKoPattern = regexp.MustCompile(`이 음식은\s*(.+?)\s*입니다`)
	foodNameEnPattern = regexp.MustCompile(`(?i)this food is\s+(.+?)\s*(?:[.,\n]|\s(?:is|are)\b|$)`)

	caloriesPattern = regexp.MustCompile(`(?i)(?:칼로리|calories?)\s*(?:은|는|is|are)?[:\s]*(?:약|대략|approx(?:imately|\.)?|about|~)?\s*(\d[\d,]*)`)
	carbsPattern    = regexp.MustCompile(`(?i)(?:탄수|(?:^|[^a-z-])carb(?:s|ohydrates?)?\b)[^\d\n]*?(\d[\d,]*)`)
	proteinPattern  = regexp.MustCompile(`(?i)(?:단백질|(?:^|[^a-z-])proteins?\b)[^\d\n]*?(\d[\d,]*)`)
	fatPattern      = regexp.MustCompile(`(?i)(?:지방|(?:^|[^a-z-])fats?\b)[^\d\n]*?(\d[\d,]*)`)
)

// ParseNutrition extracts structured fields from a model reply.
// It never fails: a field whose label is missing defaults to zero, and a missing
// name defaults to domain.UnnamedFood. Only the first match per field is used.
// Parameters:
//   - raw: free-form text returned by the model.
// Returns:
//   - domain.NutritionFields: extracted fields.
func ParseNutrition(raw string) domain.NutritionFields {
	return domain.NutritionFields{
		FoodName:     parseFoodName(raw),
		Calories:     firstInt(caloriesPattern, raw),
		CarbsGrams:   firstInt(carbsPattern, raw),
		ProteinGrams: firstInt(proteinPattern, raw),
		FatGrams:     firstInt(fatPattern, raw),
	}
}

func parseFoodName(raw string) string {
	for _, p := range []*regexp.Regexp{foodNameKoPattern, foodNameEnPattern} {
		if m := p.FindStringSubmatch(raw); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name
			}
		}
	}
	return domain.UnnamedFood
}

// firstInt returns the first captured integer, dropping thousands separators.
func firstInt(p *regexp.Regexp, raw string) int {
	m := p.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return n
}
