package planner

import (
	"context"
	"errors"
	"testing"

	"larder/models"
)

func TestGenerateShoppingListScalesAcrossEntries(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	pancakes := createRecipe(t, db, "Pancakes", 4)
	addIngredient(t, db, pancakes.ID, "2 cups flour", 2000, "cups")

	entries := []models.MealPlanEntry{
		{Date: "2024-01-01", MealSlot: models.SlotBreakfast, RecipeID: &pancakes.ID},
	}
	override := 8
	entries = append(entries, models.MealPlanEntry{
		Date:     "2024-01-02",
		MealSlot: models.SlotBreakfast,
		RecipeID: &pancakes.ID,
		Servings: &override,
	})
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	list, err := GenerateShoppingList(ctx, db, "2024-01-01", "2024-01-02")
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}

	if len(list.Recipes) != 1 {
		t.Fatalf("expected one recipe demand, got %+v", list.Recipes)
	}
	if list.Recipes[0].Title != "Pancakes" || list.Recipes[0].TotalServings != 12 {
		t.Fatalf("unexpected demand: %+v", list.Recipes[0])
	}

	if len(list.Ingredients) != 1 {
		t.Fatalf("expected one aggregated line, got %+v", list.Ingredients)
	}
	if list.Ingredients[0].Ingredient != "6 cups flour" {
		t.Fatalf("scaled line = %q, want %q", list.Ingredients[0].Ingredient, "6 cups flour")
	}
	if len(list.Ingredients[0].Recipes) != 1 || list.Ingredients[0].Recipes[0] != "Pancakes" {
		t.Fatalf("unexpected contributing recipes: %+v", list.Ingredients[0].Recipes)
	}
}

func TestGenerateShoppingListEmptyRange(t *testing.T) {
	db := newTestDatabase(t)

	list, err := GenerateShoppingList(context.Background(), db, "2024-06-01", "2024-06-07")
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}
	if list.Ingredients == nil || len(list.Ingredients) != 0 {
		t.Fatalf("expected empty, non-nil ingredients, got %+v", list.Ingredients)
	}
	if list.Recipes == nil || len(list.Recipes) != 0 {
		t.Fatalf("expected empty, non-nil recipes, got %+v", list.Recipes)
	}
}

func TestGenerateShoppingListMergesIdenticalLines(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	cake := createRecipe(t, db, "Cake", 2)
	cookies := createRecipe(t, db, "Cookies", 2)
	addIngredient(t, db, cake.ID, "1 cup sugar", 1000, "cup")
	addIngredient(t, db, cookies.ID, "1 cup sugar", 1000, "cup")

	for _, recipeID := range []uint{cake.ID, cookies.ID} {
		id := recipeID
		slot := models.SlotDinner
		if id == cookies.ID {
			slot = models.SlotSnack
		}
		entry := models.MealPlanEntry{Date: "2024-03-10", MealSlot: slot, RecipeID: &id}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	list, err := GenerateShoppingList(ctx, db, "2024-03-10", "2024-03-10")
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}

	if len(list.Ingredients) != 1 {
		t.Fatalf("expected identical lines merged, got %+v", list.Ingredients)
	}
	item := list.Ingredients[0]
	if item.Ingredient != "1 cup sugar" {
		t.Fatalf("merged line = %q, want %q", item.Ingredient, "1 cup sugar")
	}
	if len(item.Recipes) != 2 || item.Recipes[0] != "Cake" || item.Recipes[1] != "Cookies" {
		t.Fatalf("unexpected contributing recipes: %+v", item.Recipes)
	}
}

func TestGenerateShoppingListPassesUnparseableLinesThrough(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	salad := createRecipe(t, db, "Salad", 2)
	line := models.IngredientLine{RecipeID: salad.ID, RawText: "a handful of herbs"}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	four := 4
	entry := models.MealPlanEntry{Date: "2024-04-01", MealSlot: models.SlotLunch, RecipeID: &salad.ID, Servings: &four}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}

	list, err := GenerateShoppingList(ctx, db, "2024-04-01", "2024-04-01")
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}
	if len(list.Ingredients) != 1 || list.Ingredients[0].Ingredient != "a handful of herbs" {
		t.Fatalf("expected raw text passthrough despite doubled servings, got %+v", list.Ingredients)
	}
}

func TestGenerateShoppingListDropsNotesFromDisplay(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	carbonara := createRecipe(t, db, "Carbonara", 2)
	numerator := 1000
	denominator := 1000
	line := models.IngredientLine{
		RecipeID:            carbonara.ID,
		RawText:             "1 cup pecorino (finely grated)",
		QuantityNumerator:   &numerator,
		QuantityDenominator: &denominator,
		Unit:                "cup",
		Notes:               "finely grated",
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	entry := models.MealPlanEntry{Date: "2024-05-01", MealSlot: models.SlotDinner, RecipeID: &carbonara.ID}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}

	list, err := GenerateShoppingList(ctx, db, "2024-05-01", "2024-05-01")
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}
	if len(list.Ingredients) != 1 || list.Ingredients[0].Ingredient != "1 cup pecorino" {
		t.Fatalf("expected notes dropped from display, got %+v", list.Ingredients)
	}
}

func TestGenerateShoppingListZeroBaseServings(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	legacy := models.Recipe{Title: "Legacy Import", ServingsAmount: 0, SourceType: models.SourceImport}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	addIngredient(t, db, legacy.ID, "2 cups rice", 2000, "cups")

	ten := 10
	entry := models.MealPlanEntry{Date: "2024-07-01", MealSlot: models.SlotDinner, RecipeID: &legacy.ID, Servings: &ten}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}

	list, err := GenerateShoppingList(ctx, db, "2024-07-01", "2024-07-01")
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}

	// Zero base servings cannot produce a scale factor; quantities stay as stored.
	if len(list.Ingredients) != 1 || list.Ingredients[0].Ingredient != "2 cups rice" {
		t.Fatalf("expected unscaled line for zero-base recipe, got %+v", list.Ingredients)
	}
	if len(list.Recipes) != 1 || list.Recipes[0].TotalServings != 10 {
		t.Fatalf("unexpected demand: %+v", list.Recipes)
	}
}

func TestGenerateShoppingListRejectsMalformedRange(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := GenerateShoppingList(context.Background(), db, "next week", "2024-01-02"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
