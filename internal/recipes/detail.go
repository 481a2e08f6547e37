package recipes

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"larder/models"
)

// SectionDetail groups the ingredient lines and instruction steps belonging
// to one named section, in stored order.
type SectionDetail struct {
	ID           uint                     `json:"id"`
	Name         string                   `json:"name"`
	OrderIndex   int                      `json:"order_index"`
	Ingredients  []models.IngredientLine  `json:"ingredients"`
	Instructions []models.InstructionStep `json:"instructions"`
}

// Detail is the fully assembled view of a recipe: the recipe row plus its
// children partitioned into sections and unsectioned groups. It feeds both
// the editor and the shopping list.
type Detail struct {
	Recipe                  models.Recipe            `json:"recipe"`
	Sections                []SectionDetail          `json:"sections"`
	UnsectionedIngredients  []models.IngredientLine  `json:"unsectioned_ingredients"`
	UnsectionedInstructions []models.InstructionStep `json:"unsectioned_instructions"`
	Notes                   []models.RecipeNote      `json:"notes"`
}

// AllIngredients flattens the detail's ingredient lines across sections and
// the unsectioned group. Section boundaries do not matter for shopping-list
// aggregation.
func (d *Detail) AllIngredients() []models.IngredientLine {
	lines := make([]models.IngredientLine, 0, len(d.UnsectionedIngredients))
	for _, section := range d.Sections {
		lines = append(lines, section.Ingredients...)
	}
	lines = append(lines, d.UnsectionedIngredients...)
	return lines
}

// LoadDetail fetches a recipe and all of its children. The four child
// fetches are independent and issued concurrently, then merged by section
// id. A recipe with no children yields empty collections, not an error; a
// missing recipe yields gorm.ErrRecordNotFound.
func LoadDetail(ctx context.Context, db *gorm.DB, recipeID uint) (*Detail, error) {
	var recipe models.Recipe
	if err := db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		return nil, fmt.Errorf("load recipe %d: %w", recipeID, err)
	}

	var (
		sections     []models.Section
		ingredients  []models.IngredientLine
		instructions []models.InstructionStep
		notes        []models.RecipeNote
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return db.WithContext(groupCtx).
			Where("recipe_id = ?", recipeID).
			Order("order_index asc").
			Find(&sections).Error
	})
	group.Go(func() error {
		return db.WithContext(groupCtx).
			Where("recipe_id = ?", recipeID).
			Order("order_index asc, id asc").
			Find(&ingredients).Error
	})
	group.Go(func() error {
		return db.WithContext(groupCtx).
			Where("recipe_id = ?", recipeID).
			Order("step_number asc, id asc").
			Find(&instructions).Error
	})
	group.Go(func() error {
		return db.WithContext(groupCtx).
			Where("recipe_id = ?", recipeID).
			Order("order_index asc").
			Find(&notes).Error
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("load recipe %d children: %w", recipeID, err)
	}

	detail := &Detail{
		Recipe:                  recipe,
		Sections:                make([]SectionDetail, 0, len(sections)),
		UnsectionedIngredients:  []models.IngredientLine{},
		UnsectionedInstructions: []models.InstructionStep{},
		Notes:                   notes,
	}

	index := make(map[uint]int, len(sections))
	for _, section := range sections {
		index[section.ID] = len(detail.Sections)
		detail.Sections = append(detail.Sections, SectionDetail{
			ID:           section.ID,
			Name:         section.Name,
			OrderIndex:   section.OrderIndex,
			Ingredients:  []models.IngredientLine{},
			Instructions: []models.InstructionStep{},
		})
	}

	for _, line := range ingredients {
		if line.SectionID != nil {
			if at, ok := index[*line.SectionID]; ok {
				detail.Sections[at].Ingredients = append(detail.Sections[at].Ingredients, line)
				continue
			}
		}
		detail.UnsectionedIngredients = append(detail.UnsectionedIngredients, line)
	}

	for _, step := range instructions {
		if step.SectionID != nil {
			if at, ok := index[*step.SectionID]; ok {
				detail.Sections[at].Instructions = append(detail.Sections[at].Instructions, step)
				continue
			}
		}
		detail.UnsectionedInstructions = append(detail.UnsectionedInstructions, step)
	}

	return detail, nil
}
