package models

import (
	"strings"

	"gorm.io/gorm"
)

// Recipe note kinds.
const (
	NoteKindNote      = "note"
	NoteKindStorage   = "storage"
	NoteKindTip       = "tip"
	NoteKindVariation = "variation"
)

// RecipeNote is a free-text annotation on a recipe. Order index runs across
// all kinds with a single shared counter.
type RecipeNote struct {
	gorm.Model
	RecipeID   uint   `gorm:"not null;index" json:"recipe_id"`
	Kind       string `gorm:"type:varchar(64);not null;default:note" json:"kind"`
	Text       string `gorm:"type:text;not null" json:"text"`
	OrderIndex int    `gorm:"not null;default:0" json:"order_index"`
}

// ValidNoteKind reports whether the provided value is a known note kind.
func ValidNoteKind(value string) bool {
	switch value {
	case NoteKindNote, NoteKindStorage, NoteKindTip, NoteKindVariation:
		return true
	default:
		return false
	}
}

// NormalizeNoteKind trims the input and falls back to the plain note kind
// when the value is unknown.
func NormalizeNoteKind(value string) string {
	trimmed := strings.TrimSpace(value)
	if ValidNoteKind(trimmed) {
		return trimmed
	}
	return NoteKindNote
}
