package recipes

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"larder/internal/ingredient"
	"larder/models"
)

// Create persists a new recipe with its full child set in one transaction.
// Returns the new recipe id.
func Create(ctx context.Context, db *gorm.DB, input Input) (uint, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	var recipeID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{
			Title:          strings.TrimSpace(input.Title),
			Description:    input.Description,
			ServingsAmount: input.ServingsAmount,
			TimePrep:       input.TimePrep,
			TimeCook:       input.TimeCook,
			TimeTotal:      input.TimeTotal,
			Cuisine:        input.Cuisine,
			ImageURL:       input.ImageURL,
			SourceType:     models.NormalizeSource(input.SourceType),
			SourceURL:      input.SourceURL,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		recipeID = recipe.ID
		return insertChildren(tx, recipe.ID, input)
	})
	if err != nil {
		return 0, err
	}
	return recipeID, nil
}

// Replace applies a full replacement edit: the recipe row is updated and all
// child rows are deleted and reinserted. The delete and reinsert run inside
// one transaction so a partial failure leaves the prior data intact.
func Replace(ctx context.Context, db *gorm.DB, recipeID uint, input Input) error {
	if err := input.Validate(); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Recipe
		if err := tx.First(&existing, recipeID).Error; err != nil {
			return fmt.Errorf("load recipe %d: %w", recipeID, err)
		}

		updates := map[string]any{
			"title":           strings.TrimSpace(input.Title),
			"description":     input.Description,
			"servings_amount": input.ServingsAmount,
			"time_prep":       input.TimePrep,
			"time_cook":       input.TimeCook,
			"time_total":      input.TimeTotal,
			"cuisine":         input.Cuisine,
			"image_url":       input.ImageURL,
			"source_url":      input.SourceURL,
		}
		if input.SourceType != "" {
			updates["source_type"] = models.NormalizeSource(input.SourceType)
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("update recipe %d: %w", recipeID, err)
		}

		if err := deleteChildren(tx, recipeID); err != nil {
			return err
		}
		return insertChildren(tx, recipeID, input)
	})
}

// Delete removes a recipe and all of its children. Meal plan entries keep
// their cell but lose the recipe reference: the reference is a relation plus
// lookup, never ownership.
func Delete(ctx context.Context, db *gorm.DB, recipeID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Recipe
		if err := tx.First(&existing, recipeID).Error; err != nil {
			return fmt.Errorf("load recipe %d: %w", recipeID, err)
		}

		if err := deleteChildren(tx, recipeID); err != nil {
			return err
		}
		if err := tx.Model(&models.MealPlanEntry{}).
			Where("recipe_id = ?", recipeID).
			Update("recipe_id", nil).Error; err != nil {
			return fmt.Errorf("detach meal plan entries for recipe %d: %w", recipeID, err)
		}
		if err := tx.Delete(&models.Recipe{}, recipeID).Error; err != nil {
			return fmt.Errorf("delete recipe %d: %w", recipeID, err)
		}
		return nil
	})
}

func deleteChildren(tx *gorm.DB, recipeID uint) error {
	for _, model := range []any{
		&models.IngredientLine{},
		&models.InstructionStep{},
		&models.RecipeNote{},
		&models.Section{},
	} {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
			return fmt.Errorf("delete recipe %d children: %w", recipeID, err)
		}
	}
	return nil
}

// insertChildren creates sections, ingredient lines, instruction steps and
// notes for a recipe. Section names are deduplicated in first-seen order
// across the ingredient groups then the instruction groups; the implicit
// "Main" label maps to unsectioned rows rather than a stored section.
func insertChildren(tx *gorm.DB, recipeID uint, input Input) error {
	sectionIDs := make(map[string]*uint)
	sectionOrder := 0

	resolveSection := func(name string) (*uint, error) {
		name = strings.TrimSpace(name)
		if name == "" || name == models.UnsectionedLabel {
			return nil, nil
		}
		if id, ok := sectionIDs[name]; ok {
			return id, nil
		}
		section := models.Section{RecipeID: recipeID, Name: name, OrderIndex: sectionOrder}
		if err := tx.Create(&section).Error; err != nil {
			return nil, fmt.Errorf("create section %q: %w", name, err)
		}
		sectionOrder++
		sectionIDs[name] = &section.ID
		return &section.ID, nil
	}

	for _, group := range input.Ingredients {
		sectionID, err := resolveSection(group.Section)
		if err != nil {
			return err
		}
		orderIndex := 0
		for _, line := range group.Lines {
			if strings.TrimSpace(line.Item) == "" {
				continue
			}
			row := buildIngredientRow(recipeID, sectionID, line, orderIndex)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create ingredient line %q: %w", row.RawText, err)
			}
			orderIndex++
		}
	}

	for _, group := range input.Instructions {
		sectionID, err := resolveSection(group.Section)
		if err != nil {
			return err
		}
		stepNumber := 1
		for _, step := range group.Steps {
			if strings.TrimSpace(step.Text) == "" {
				continue
			}
			row := models.InstructionStep{
				RecipeID:   recipeID,
				SectionID:  sectionID,
				StepNumber: stepNumber,
				Text:       step.Text,
				Notes:      step.Notes,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create instruction step %d: %w", stepNumber, err)
			}
			stepNumber++
		}
	}

	// One shared counter across note kinds.
	for i, note := range input.Notes {
		row := models.RecipeNote{
			RecipeID:   recipeID,
			Kind:       models.NormalizeNoteKind(note.Kind),
			Text:       note.Text,
			OrderIndex: i,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create recipe note: %w", err)
		}
	}

	return nil
}

// buildIngredientRow regenerates the raw display text from the structured
// fields so redisplay never loses information, and stores the amount as an
// exact rational over the milli denominator.
func buildIngredientRow(recipeID uint, sectionID *uint, line LineInput, orderIndex int) models.IngredientLine {
	structured := ingredient.Line{
		Item:  strings.TrimSpace(line.Item),
		Unit:  strings.TrimSpace(line.Unit),
		Notes: strings.TrimSpace(line.Notes),
	}

	row := models.IngredientLine{
		RecipeID:   recipeID,
		SectionID:  sectionID,
		Unit:       structured.Unit,
		Notes:      structured.Notes,
		OrderIndex: orderIndex,
	}

	if line.Amount != nil {
		quantity := ingredient.NewQuantity(*line.Amount)
		structured.Amount = &quantity
		numerator := quantity.Numerator
		denominator := quantity.Denominator
		row.QuantityNumerator = &numerator
		row.QuantityDenominator = &denominator
	}

	row.RawText = ingredient.Build(structured)
	return row
}
