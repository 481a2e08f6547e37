package models

import "gorm.io/gorm"

// InstructionStep is one numbered step of a recipe. Step numbers are 1-based
// and contiguous within a section; they are reassigned on every full save.
type InstructionStep struct {
	gorm.Model
	RecipeID   uint   `gorm:"not null;index" json:"recipe_id"`
	SectionID  *uint  `gorm:"index" json:"section_id,omitempty"`
	StepNumber int    `gorm:"not null" json:"step_number"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Notes      string `gorm:"type:varchar(256)" json:"notes,omitempty"`
}
