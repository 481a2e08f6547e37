package models

import (
	"strings"

	"gorm.io/gorm"
)

// Meal slots in their fixed planning-grid order.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

// MealPlanEntry occupies a single (date, meal slot) cell of the planning
// grid. The composite unique index enforces at most one entry per cell; a
// second write to an occupied cell must update the existing row. The recipe
// reference is weak: deleting a recipe nulls it rather than removing the
// entry.
type MealPlanEntry struct {
	gorm.Model
	Date     string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_meal_plan_cell" json:"date"`
	MealSlot string  `gorm:"type:varchar(16);not null;uniqueIndex:idx_meal_plan_cell" json:"meal_slot"`
	RecipeID *uint   `gorm:"index" json:"recipe_id,omitempty"`
	Recipe   *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Servings *int    `json:"servings,omitempty"`
	Notes    string  `gorm:"type:varchar(256)" json:"notes,omitempty"`
}

// MealSlots returns the slots in display order.
func MealSlots() []string {
	return []string{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}
}

// ValidMealSlot reports whether the provided value is a known meal slot.
func ValidMealSlot(value string) bool {
	return SlotRank(value) >= 0
}

// SlotRank returns the position of a slot in the fixed breakfast, lunch,
// dinner, snack sequence, or -1 for unknown values.
func SlotRank(value string) int {
	switch strings.TrimSpace(value) {
	case SlotBreakfast:
		return 0
	case SlotLunch:
		return 1
	case SlotDinner:
		return 2
	case SlotSnack:
		return 3
	default:
		return -1
	}
}
