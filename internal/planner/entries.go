package planner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"

	"larder/models"
)

// ErrInvalid wraps validation failures on dates, slots and servings so
// callers can map them to a 400 without inspecting the message.
var ErrInvalid = errors.New("invalid meal plan input")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Entry is a planning-grid cell joined with its recipe's display title. A
// nil title means the slot references no recipe (or the recipe was deleted).
type Entry struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	MealSlot    string  `json:"meal_slot"`
	RecipeID    *uint   `json:"recipe_id,omitempty"`
	RecipeTitle *string `json:"recipe_title,omitempty"`
	Servings    *int    `json:"servings,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// UpsertInput identifies the target cell and the recipe to plan into it.
type UpsertInput struct {
	Date     string `json:"date"`
	MealSlot string `json:"meal_slot"`
	RecipeID uint   `json:"recipe_id"`
	Servings *int   `json:"servings,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func validDate(value string) bool {
	return datePattern.MatchString(strings.TrimSpace(value))
}

func validateRange(startDate, endDate string) error {
	if !validDate(startDate) {
		return fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrInvalid, startDate)
	}
	if !validDate(endDate) {
		return fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrInvalid, endDate)
	}
	return nil
}

// EntriesInRange returns all planning-grid entries between startDate and
// endDate, inclusive on both bounds, ordered by date then by the fixed
// breakfast, lunch, dinner, snack slot sequence.
func EntriesInRange(ctx context.Context, db *gorm.DB, startDate, endDate string) ([]Entry, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}

	var rows []models.MealPlanEntry
	if err := db.WithContext(ctx).
		Preload("Recipe").
		Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load meal plan entries: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry := Entry{
			ID:       row.ID,
			Date:     row.Date,
			MealSlot: row.MealSlot,
			RecipeID: row.RecipeID,
			Servings: row.Servings,
			Notes:    row.Notes,
		}
		if row.Recipe != nil {
			title := row.Recipe.Title
			entry.RecipeTitle = &title
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return models.SlotRank(entries[i].MealSlot) < models.SlotRank(entries[j].MealSlot)
	})

	return entries, nil
}

// UpsertEntry plans a recipe into one (date, meal slot) cell. An occupied
// cell is updated in place, never duplicated: the check and the write run in
// one transaction and the composite unique index on the cell backs them up
// against concurrent writers.
func UpsertEntry(ctx context.Context, db *gorm.DB, input UpsertInput) (*models.MealPlanEntry, error) {
	if !validDate(input.Date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, input.Date)
	}
	if !models.ValidMealSlot(input.MealSlot) {
		return nil, fmt.Errorf("%w: unknown meal slot %q", ErrInvalid, input.MealSlot)
	}
	if input.RecipeID == 0 {
		return nil, fmt.Errorf("%w: recipe_id is required", ErrInvalid)
	}
	if input.Servings != nil && *input.Servings < 1 {
		return nil, fmt.Errorf("%w: servings must be at least 1", ErrInvalid)
	}

	var result models.MealPlanEntry
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, input.RecipeID).Error; err != nil {
			return fmt.Errorf("load recipe %d: %w", input.RecipeID, err)
		}

		var existing models.MealPlanEntry
		err := tx.Where("date = ? AND meal_slot = ?", input.Date, input.MealSlot).
			First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]any{
				"recipe_id": input.RecipeID,
				"servings":  input.Servings,
				"notes":     input.Notes,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("update meal plan entry %d: %w", existing.ID, err)
			}
			return tx.First(&result, existing.ID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			recipeID := input.RecipeID
			result = models.MealPlanEntry{
				Date:     input.Date,
				MealSlot: input.MealSlot,
				RecipeID: &recipeID,
				Servings: input.Servings,
				Notes:    input.Notes,
			}
			if err := tx.Create(&result).Error; err != nil {
				return fmt.Errorf("create meal plan entry: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("find meal plan entry: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveEntry deletes one entry by id. A missing id reports record not
// found so callers can tell an already-removed slot from a still-empty one.
// The delete is unscoped: a cleared cell must be reusable immediately
// without tripping the unique cell index.
func RemoveEntry(ctx context.Context, db *gorm.DB, entryID uint) error {
	result := db.WithContext(ctx).Unscoped().Delete(&models.MealPlanEntry{}, entryID)
	if result.Error != nil {
		return fmt.Errorf("delete meal plan entry %d: %w", entryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete meal plan entry %d: %w", entryID, gorm.ErrRecordNotFound)
	}
	return nil
}
