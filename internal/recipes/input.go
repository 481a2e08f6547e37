package recipes

import (
	"errors"
	"fmt"
	"strings"

	"larder/models"
)

// ErrInvalid wraps all structural validation failures so callers can map
// them to a 400 without inspecting the message.
var ErrInvalid = errors.New("invalid recipe")

// LineInput is one ingredient line as submitted by the editor or an import
// flow. Amount is optional; when present it is stored as an exact rational
// and the raw display text is regenerated from the structured fields.
type LineInput struct {
	Item   string   `json:"item"`
	Amount *float64 `json:"amount,omitempty"`
	Unit   string   `json:"unit,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// StepInput is one instruction step as submitted. Step numbers are
// reassigned from array position on save, so gaps in the input collapse.
type StepInput struct {
	Step  int    `json:"step"`
	Text  string `json:"text"`
	Notes string `json:"notes,omitempty"`
}

// IngredientGroup pairs a section name with its ingredient lines. Ordered
// pairs, not a name-keyed map, so insertion order survives round trips.
type IngredientGroup struct {
	Section string      `json:"section"`
	Lines   []LineInput `json:"lines"`
}

// InstructionGroup pairs a section name with its instruction steps.
type InstructionGroup struct {
	Section string      `json:"section"`
	Steps   []StepInput `json:"steps"`
}

// NoteInput is one recipe note with its kind.
type NoteInput struct {
	Kind string `json:"kind,omitempty"`
	Text string `json:"text"`
}

// Input is the full replacement payload for a recipe: the recipe fields and
// the complete set of child rows. Saving deletes all existing children and
// reinserts from this shape inside one transaction.
type Input struct {
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	ServingsAmount int                `json:"servings_amount"`
	TimePrep       string             `json:"time_prep"`
	TimeCook       string             `json:"time_cook"`
	TimeTotal      string             `json:"time_total"`
	Cuisine        string             `json:"cuisine,omitempty"`
	ImageURL       string             `json:"image_url,omitempty"`
	SourceType     string             `json:"source_type,omitempty"`
	SourceURL      string             `json:"source_url,omitempty"`
	Ingredients    []IngredientGroup  `json:"ingredients"`
	Instructions   []InstructionGroup `json:"instructions"`
	Notes          []NoteInput        `json:"notes"`
}

// Validate checks the structural contract before any write. Failures report
// the offending field and wrap ErrInvalid.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if in.ServingsAmount < 1 {
		return fmt.Errorf("%w: servings_amount must be at least 1", ErrInvalid)
	}
	if in.SourceType != "" && !models.ValidSource(in.SourceType) {
		return fmt.Errorf("%w: unknown source_type %q", ErrInvalid, in.SourceType)
	}
	for _, group := range in.Instructions {
		for i, step := range group.Steps {
			if strings.TrimSpace(step.Text) == "" {
				return fmt.Errorf("%w: instruction %d in section %q has empty text", ErrInvalid, i+1, sectionLabel(group.Section))
			}
		}
	}
	for _, note := range in.Notes {
		if note.Kind != "" && !models.ValidNoteKind(note.Kind) {
			return fmt.Errorf("%w: unknown note kind %q", ErrInvalid, note.Kind)
		}
		if strings.TrimSpace(note.Text) == "" {
			return fmt.Errorf("%w: note text is required", ErrInvalid)
		}
	}
	return nil
}

func sectionLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return models.UnsectionedLabel
	}
	return name
}
