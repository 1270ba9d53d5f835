package domain

import (
	"errors"
	"testing"
)

func TestParseMealSlot(t *testing.T) {
	tests := []struct {
		in     string
		want   MealSlot
		wantOK bool
	}{
		{"breakfast", MealSlotBreakfast, true},
		{" Lunch ", MealSlotLunch, true},
		{"저녁", MealSlotDinner, true},
		{"간식", MealSlotSnack, true},
		{"brunch", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMealSlot(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMealSlot(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMealSlotLabel(t *testing.T) {
	if got := MealSlotBreakfast.Label(); got != "아침" {
		t.Errorf("Label() = %q, want 아침", got)
	}
	if got := MealSlot("brunch").Label(); got != "brunch" {
		t.Errorf("Label() of unknown slot = %q", got)
	}
}

func TestNewMealRecord(t *testing.T) {
	rec := NewMealRecord(MealSlotLunch, NutritionFields{
		FoodName:     "  ",
		Calories:     -5,
		CarbsGrams:   30,
		ProteinGrams: -1,
		FatGrams:     7,
	}, "meals/a.png")

	if rec.FoodName != UnnamedFood {
		t.Errorf("FoodName = %q, want %q", rec.FoodName, UnnamedFood)
	}
	if rec.Calories != 0 || rec.ProteinGrams != 0 {
		t.Errorf("negative amounts not clamped: %+v", rec)
	}
	if rec.CarbsGrams != 30 || rec.FatGrams != 7 {
		t.Errorf("amounts changed: %+v", rec)
	}
	if rec.Slot != MealSlotLunch || rec.ImageKey != "meals/a.png" {
		t.Errorf("slot/image = %q/%q", rec.Slot, rec.ImageKey)
	}
	if f := rec.Fields(); f.FoodName != UnnamedFood || f.CarbsGrams != 30 {
		t.Errorf("Fields() = %+v", f)
	}
}

func TestTabNames(t *testing.T) {
	for _, tab := range Tabs {
		got, ok := ParseTab(tab.String())
		if !ok || got != tab {
			t.Errorf("ParseTab(%q) = %v, %v", tab.String(), got, ok)
		}
	}
	if _, ok := ParseTab("settings"); ok {
		t.Error("ParseTab(settings) should fail")
	}
	if Tab(9).String() != "unknown" {
		t.Errorf("Tab(9).String() = %q", Tab(9).String())
	}
}

func TestSessionValidate(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr error
	}{
		{"default", *DefaultSession(), nil},
		{"lower bound", Session{UserID: "a", GoalCalories: 1000}, nil},
		{"upper bound", Session{UserID: "a", GoalCalories: 3000}, nil},
		{"below range", Session{UserID: "a", GoalCalories: 900}, ErrInvalidGoal},
		{"above range", Session{UserID: "a", GoalCalories: 3100}, ErrInvalidGoal},
		{"off step", Session{UserID: "a", GoalCalories: 1550}, ErrInvalidGoal},
		{"blank user", Session{UserID: " ", GoalCalories: 2000}, ErrInvalidUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfileBMI(t *testing.T) {
	tests := []struct {
		height, weight float64
		wantBMI        float64
		wantCategory   string
	}{
		{170, 50, 17.3, "저체중"},
		{170, 65, 22.5, "정상"},
		{170, 80, 27.7, "과체중"},
		{160, 90, 35.2, "비만"},
	}

	for _, tt := range tests {
		p := &Profile{HeightCm: tt.height, WeightKg: tt.weight}
		bmi := p.BMI()
		if bmi != tt.wantBMI {
			t.Errorf("BMI(%v, %v) = %v, want %v", tt.height, tt.weight, bmi, tt.wantBMI)
		}
		if got := BMICategory(bmi); got != tt.wantCategory {
			t.Errorf("BMICategory(%v) = %q, want %q", bmi, got, tt.wantCategory)
		}
	}

	if (&Profile{}).BMI() != 0 {
		t.Error("BMI with zero height should be 0")
	}
}

func TestProfileValidate(t *testing.T) {
	if err := DefaultProfile("guest").Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}

	p := DefaultProfile("guest")
	p.HeightCm = 20
	if !errors.Is(p.Validate(), ErrInvalidProfile) {
		t.Error("height 20 should be rejected")
	}

	p = DefaultProfile("guest")
	p.Activity = "extreme"
	if !errors.Is(p.Validate(), ErrInvalidProfile) {
		t.Error("unknown activity should be rejected")
	}

	p = DefaultProfile("")
	if !errors.Is(p.Validate(), ErrInvalidUserID) {
		t.Error("blank user should be rejected")
	}
}

func TestPostCloneIsDeep(t *testing.T) {
	p := &CommunityPost{Hashtags: []string{"#a"}, Comments: []string{"hi"}}
	c := p.Clone()
	c.Hashtags[0] = "#b"
	c.Comments = append(c.Comments, "more")

	if p.Hashtags[0] != "#a" || len(p.Comments) != 1 {
		t.Errorf("Clone shares state: %+v", p)
	}
	if !p.HasTag("#a") || p.HasTag("#b") {
		t.Error("HasTag mismatch")
	}

	empty := (&CommunityPost{}).Clone()
	if empty.Hashtags == nil || empty.Comments == nil {
		t.Error("Clone should return non-nil slices")
	}
}
