package planner

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"larder/internal/ingredient"
	"larder/models"
)

// ShoppingItem is one aggregated shopping-list line and the titles of every
// recipe that contributed to it.
type ShoppingItem struct {
	Ingredient string   `json:"ingredient"`
	Recipes    []string `json:"recipes"`
}

// RecipeDemand reports how many servings of a recipe the plan requires
// across the requested range.
type RecipeDemand struct {
	Title         string `json:"title"`
	TotalServings int    `json:"total_servings"`
}

// ShoppingList is the aggregation result. Both slices are empty, never nil,
// when the range holds no planned recipes.
type ShoppingList struct {
	Ingredients []ShoppingItem `json:"ingredients"`
	Recipes     []RecipeDemand `json:"recipes"`
}

type recipeDemand struct {
	recipeID      uint
	title         string
	baseServings  int
	totalServings int
}

// GenerateShoppingList aggregates ingredient demand across every planned
// meal in [startDate, endDate]. Per recipe, servings overrides (or the base
// serving count when absent) are summed; each ingredient line is scaled by
// total over base servings and re-rendered as amount, unit and item with
// notes dropped. Lines without a structured quantity pass through verbatim.
// Identical display strings merge across recipes, keeping the distinct set
// of contributing titles, and the final list sorts with a locale-aware
// collator.
func GenerateShoppingList(ctx context.Context, db *gorm.DB, startDate, endDate string) (*ShoppingList, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}

	var rows []models.MealPlanEntry
	if err := db.WithContext(ctx).
		Preload("Recipe").
		Where("date >= ? AND date <= ? AND recipe_id IS NOT NULL", startDate, endDate).
		Order("date asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load meal plan entries: %w", err)
	}

	// Accumulate per-recipe demand in first-seen order.
	demandIndex := make(map[uint]*recipeDemand)
	var demands []*recipeDemand
	for _, row := range rows {
		if row.RecipeID == nil || row.Recipe == nil {
			continue
		}
		demand, ok := demandIndex[*row.RecipeID]
		if !ok {
			demand = &recipeDemand{
				recipeID:     *row.RecipeID,
				title:        row.Recipe.Title,
				baseServings: row.Recipe.ServingsAmount,
			}
			demandIndex[*row.RecipeID] = demand
			demands = append(demands, demand)
		}
		if row.Servings != nil {
			demand.totalServings += *row.Servings
		} else {
			demand.totalServings += row.Recipe.ServingsAmount
		}
	}

	list := &ShoppingList{
		Ingredients: []ShoppingItem{},
		Recipes:     []RecipeDemand{},
	}
	if len(demands) == 0 {
		return list, nil
	}

	// Ingredient fetches per recipe are independent; issue them together.
	lineSets := make([][]models.IngredientLine, len(demands))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, demand := range demands {
		i, demand := i, demand
		group.Go(func() error {
			return db.WithContext(groupCtx).
				Where("recipe_id = ?", demand.recipeID).
				Order("order_index asc, id asc").
				Find(&lineSets[i]).Error
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}

	grouped := make(map[string][]string)
	var order []string
	for i, demand := range demands {
		factor := 1.0
		if demand.baseServings > 0 {
			factor = float64(demand.totalServings) / float64(demand.baseServings)
		}
		for _, line := range lineSets[i] {
			display := scaledDisplay(line, factor)
			titles, seen := grouped[display]
			if !seen {
				order = append(order, display)
			}
			if !contains(titles, demand.title) {
				grouped[display] = append(titles, demand.title)
			}
		}
		list.Recipes = append(list.Recipes, RecipeDemand{
			Title:         demand.title,
			TotalServings: demand.totalServings,
		})
	}

	collator := collate.New(language.English)
	sort.SliceStable(order, func(i, j int) bool {
		return collator.CompareString(order[i], order[j]) < 0
	})
	for _, display := range order {
		list.Ingredients = append(list.Ingredients, ShoppingItem{
			Ingredient: display,
			Recipes:    grouped[display],
		})
	}

	return list, nil
}

// scaledDisplay renders one shopping-list line. Lines with a stored exact
// quantity are scaled and recomposed from amount, unit and item only; notes
// stay out of the list to keep it terse. Lines without a quantity pass
// their raw text through unscaled.
func scaledDisplay(line models.IngredientLine, factor float64) string {
	if line.QuantityNumerator == nil || line.QuantityDenominator == nil || *line.QuantityDenominator == 0 {
		return line.RawText
	}

	base := ingredient.Quantity{
		Numerator:   *line.QuantityNumerator,
		Denominator: *line.QuantityDenominator,
	}
	scaled := base.Scale(factor)

	return ingredient.Build(ingredient.Line{
		Amount: &scaled,
		Unit:   line.Unit,
		Item:   ingredient.Parse(line.RawText).Item,
	})
}

func contains(values []string, value string) bool {
	for _, existing := range values {
		if existing == value {
			return true
		}
	}
	return false
}
