package models

import "gorm.io/gorm"

// IngredientLine stores one ingredient of a recipe. RawText is the durable
// source of truth; the structured fields are a best-effort decomposition and
// RawText is regenerated whenever they are edited. The quantity is kept as an
// exact rational (numerator over a fixed denominator) so scaling never drifts.
type IngredientLine struct {
	gorm.Model
	RecipeID  uint  `gorm:"not null;index" json:"recipe_id"`
	SectionID *uint `gorm:"index" json:"section_id,omitempty"`

	RawText             string `gorm:"type:text;not null" json:"raw_text"`
	QuantityNumerator   *int   `json:"quantity_numerator,omitempty"`
	QuantityDenominator *int   `json:"quantity_denominator,omitempty"`
	Unit                string `gorm:"type:varchar(64)" json:"unit,omitempty"`
	Preparation         string `gorm:"type:varchar(128)" json:"preparation,omitempty"`
	Notes               string `gorm:"type:varchar(256)" json:"notes,omitempty"`
	OrderIndex          int    `gorm:"not null;default:0" json:"order_index"`
}
