package models

import (
	"strings"

	"gorm.io/gorm"
)

// Source classifications for how a recipe entered the system.
const (
	SourceManual = "manual"
	SourceAI     = "ai"
	SourceImport = "import"
)

// DefaultSource is applied when a recipe is stored without an explicit source.
const DefaultSource = SourceManual

// DefaultServings matches the schema default for recipes saved without a
// serving count.
const DefaultServings = 2

// Recipe is the root of the recipe aggregate. Child rows (sections,
// ingredient lines, instruction steps, notes) are replaced wholesale on edit.
type Recipe struct {
	gorm.Model
	Title          string `gorm:"type:varchar(256);not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	ImageURL       string `gorm:"type:text" json:"image_url,omitempty"`
	Cuisine        string `gorm:"type:varchar(128)" json:"cuisine,omitempty"`
	ServingsAmount int    `gorm:"not null;default:2" json:"servings_amount"`
	TimePrep       string `gorm:"type:varchar(64)" json:"time_prep"`
	TimeCook       string `gorm:"type:varchar(64)" json:"time_cook"`
	TimeTotal      string `gorm:"type:varchar(64)" json:"time_total"`
	SourceType     string `gorm:"type:varchar(16);not null;default:manual" json:"source_type"`
	SourceURL      string `gorm:"type:text" json:"source_url,omitempty"`

	Sections     []Section         `gorm:"foreignKey:RecipeID" json:"sections,omitempty"`
	Ingredients  []IngredientLine  `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Instructions []InstructionStep `gorm:"foreignKey:RecipeID" json:"instructions,omitempty"`
	Notes        []RecipeNote      `gorm:"foreignKey:RecipeID" json:"notes,omitempty"`
}

// ValidSource reports whether the provided value is a known source classification.
func ValidSource(value string) bool {
	switch value {
	case SourceManual, SourceAI, SourceImport:
		return true
	default:
		return false
	}
}

// NormalizeSource trims the input and falls back to the default classification
// when the value is unknown.
func NormalizeSource(value string) string {
	trimmed := strings.TrimSpace(value)
	if ValidSource(trimmed) {
		return trimmed
	}
	return DefaultSource
}
