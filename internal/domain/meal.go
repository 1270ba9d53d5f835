package domain

import (
	"strings"
	"time"
)

// MealSlot is the time of day a meal record is tagged with.
// Values include MealSlotBreakfast, MealSlotLunch, MealSlotDinner, and MealSlotSnack.
type MealSlot string

const (
	MealSlotBreakfast MealSlot = "breakfast"
	MealSlotLunch     MealSlot = "lunch"
	MealSlotDinner    MealSlot = "dinner"
	MealSlotSnack     MealSlot = "snack"
)

// MealSlots lists every slot in display order.
var MealSlots = []MealSlot{MealSlotBreakfast, MealSlotLunch, MealSlotDinner, MealSlotSnack}

// mealSlotAliases maps the Korean labels shown by the client onto slots.
var mealSlotAliases = map[string]MealSlot{
	"아침": MealSlotBreakfast,
	"점심": MealSlotLunch,
	"저녁": MealSlotDinner,
	"간식": MealSlotSnack,
}

// ParseMealSlot resolves a slot name or its Korean label.
// Parameters:
//   - s: slot name ("lunch") or label ("점심").
// Returns:
//   - MealSlot: resolved slot.
//   - bool: false if s names no slot.
func ParseMealSlot(s string) (MealSlot, bool) {
	s = strings.TrimSpace(s)
	if slot, ok := mealSlotAliases[s]; ok {
		return slot, true
	}
	slot := MealSlot(strings.ToLower(s))
	for _, known := range MealSlots {
		if slot == known {
			return slot, true
		}
	}
	return "", false
}

// Label returns the Korean label for the slot.
func (s MealSlot) Label() string {
	for label, slot := range mealSlotAliases {
		if slot == s {
			return label
		}
	}
	return string(s)
}

// UnnamedFood is the food name used when the model reply names nothing.
const UnnamedFood = "unnamed"

// NutritionFields is the structured form of a model reply.
type NutritionFields struct {
	FoodName     string `json:"foodName"`
	Calories     int    `json:"calories"`
	CarbsGrams   int    `json:"carbsGrams"`
	ProteinGrams int    `json:"proteinGrams"`
	FatGrams     int    `json:"fatGrams"`
}

// MealRecord is one confirmed meal. Records are appended and removed, never updated.
// ID is auto-incremented and only orders records; callers address records by list position.
type MealRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Slot         MealSlot  `gorm:"type:text;not null" json:"mealSlot"`
	FoodName     string    `gorm:"type:text;not null" json:"foodName"`
	Calories     int       `gorm:"not null;default:0" json:"calories"`
	CarbsGrams   int       `gorm:"not null;default:0" json:"carbsGrams"`
	ProteinGrams int       `gorm:"not null;default:0" json:"proteinGrams"`
	FatGrams     int       `gorm:"not null;default:0" json:"fatGrams"`
	ImageKey     string    `gorm:"type:text" json:"imageKey,omitempty"`
	CreatedAt    time.Time `gorm:"index:idx_meal_records_created_at" json:"createdAt"`
}

// TableName returns the database table name for MealRecord.
func (MealRecord) TableName() string {
	return "meal_records"
}

// NewMealRecord builds a record from confirmed fields. Negative amounts become zero.
// Parameters:
//   - slot: meal slot the user picked.
//   - fields: parsed (and possibly edited) nutrition fields.
//   - imageKey: object storage key of the photo, empty if none was kept.
// Returns:
//   - *MealRecord: record ready to append.
func NewMealRecord(slot MealSlot, fields NutritionFields, imageKey string) *MealRecord {
	name := strings.TrimSpace(fields.FoodName)
	if name == "" {
		name = UnnamedFood
	}
	return &MealRecord{
		Slot:         slot,
		FoodName:     name,
		Calories:     nonNegative(fields.Calories),
		CarbsGrams:   nonNegative(fields.CarbsGrams),
		ProteinGrams: nonNegative(fields.ProteinGrams),
		FatGrams:     nonNegative(fields.FatGrams),
		ImageKey:     imageKey,
	}
}

// Fields returns the nutrition fields of the record.
func (m *MealRecord) Fields() NutritionFields {
	return NutritionFields{
		FoodName:     m.FoodName,
		Calories:     m.Calories,
		CarbsGrams:   m.CarbsGrams,
		ProteinGrams: m.ProteinGrams,
		FatGrams:     m.FatGrams,
	}
}

// Draft is an analyzed photo waiting for the user to pick a slot.
type Draft struct {
	Fields  NutritionFields `json:"fields"`
	RawText string          `json:"rawText"`
	Format  string          `json:"format"`
	Image   []byte          `json:"-"`
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
