package models

import "gorm.io/gorm"

// UnsectionedLabel is the implicit heading used for ingredient and
// instruction rows that carry no section reference.
const UnsectionedLabel = "Main"

// Section is a named sub-group of a recipe's ingredients and instructions,
// e.g. "Dough" or "Sauce". Order index preserves display order.
type Section struct {
	gorm.Model
	RecipeID   uint   `gorm:"not null;index" json:"recipe_id"`
	Name       string `gorm:"type:varchar(128);not null" json:"name"`
	OrderIndex int    `gorm:"not null;default:0" json:"order_index"`
}
