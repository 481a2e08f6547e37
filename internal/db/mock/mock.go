package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "larder/internal/log"
	"larder/models"
)

// New returns an in-memory sqlite database seeded with a small kitchen's
// worth of recipes and a planned week.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:larder-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Section{},
		&models.IngredientLine{},
		&models.InstructionStep{},
		&models.RecipeNote{},
		&models.MealPlanEntry{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("pantry"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Robin Kitchen",
		Email:        "robin@larder.app",
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	pancakes := models.Recipe{
		Title:          "Buttermilk Pancakes",
		Description:    "Fluffy weekend pancakes with a light tang.",
		ServingsAmount: 4,
		TimePrep:       "10 min",
		TimeCook:       "20 min",
		TimeTotal:      "30 min",
		Cuisine:        "American",
		SourceType:     models.SourceManual,
	}
	carbonara := models.Recipe{
		Title:          "Spaghetti Carbonara",
		Description:    "Roman classic with guanciale and pecorino.",
		ServingsAmount: 2,
		TimePrep:       "10 min",
		TimeCook:       "15 min",
		TimeTotal:      "25 min",
		Cuisine:        "Italian",
		SourceType:     models.SourceManual,
	}

	for _, recipe := range []*models.Recipe{&pancakes, &carbonara} {
		if err := db.WithContext(ctx).Create(recipe).Error; err != nil {
			return err
		}
	}

	batter := models.Section{RecipeID: pancakes.ID, Name: "Batter", OrderIndex: 0}
	if err := db.WithContext(ctx).Create(&batter).Error; err != nil {
		return err
	}

	two := 2000
	one := 1000
	three := 3000
	denominator := 1000
	ingredients := []models.IngredientLine{
		{
			RecipeID:            pancakes.ID,
			SectionID:           &batter.ID,
			RawText:             "2 cups flour",
			QuantityNumerator:   &two,
			QuantityDenominator: &denominator,
			Unit:                "cups",
			OrderIndex:          0,
		},
		{
			RecipeID:            pancakes.ID,
			SectionID:           &batter.ID,
			RawText:             "3 eggs",
			QuantityNumerator:   &three,
			QuantityDenominator: &denominator,
			OrderIndex:          1,
		},
		{
			RecipeID:   pancakes.ID,
			RawText:    "butter for the pan",
			OrderIndex: 0,
		},
		{
			RecipeID:            carbonara.ID,
			RawText:             "1 cup pecorino (finely grated)",
			QuantityNumerator:   &one,
			QuantityDenominator: &denominator,
			Unit:                "cup",
			Notes:               "finely grated",
			OrderIndex:          0,
		},
	}
	for _, ingredient := range ingredients {
		ingredientCopy := ingredient
		if err := db.WithContext(ctx).Create(&ingredientCopy).Error; err != nil {
			return err
		}
	}

	steps := []models.InstructionStep{
		{RecipeID: pancakes.ID, SectionID: &batter.ID, StepNumber: 1, Text: "Whisk the dry ingredients together."},
		{RecipeID: pancakes.ID, SectionID: &batter.ID, StepNumber: 2, Text: "Fold in eggs and buttermilk until just combined."},
		{RecipeID: carbonara.ID, StepNumber: 1, Text: "Render the guanciale while the pasta boils."},
		{RecipeID: carbonara.ID, StepNumber: 2, Text: "Toss pasta with egg and cheese off the heat."},
	}
	for _, step := range steps {
		stepCopy := step
		if err := db.WithContext(ctx).Create(&stepCopy).Error; err != nil {
			return err
		}
	}

	notes := []models.RecipeNote{
		{RecipeID: pancakes.ID, Kind: models.NoteKindStorage, Text: "Batter keeps overnight in the fridge.", OrderIndex: 0},
		{RecipeID: carbonara.ID, Kind: models.NoteKindTip, Text: "Save a cup of pasta water for the sauce.", OrderIndex: 0},
	}
	for _, note := range notes {
		noteCopy := note
		if err := db.WithContext(ctx).Create(&noteCopy).Error; err != nil {
			return err
		}
	}

	monday := time.Now().UTC().Format("2006-01-02")
	servings := 8
	entries := []models.MealPlanEntry{
		{Date: monday, MealSlot: models.SlotBreakfast, RecipeID: &pancakes.ID},
		{Date: monday, MealSlot: models.SlotDinner, RecipeID: &carbonara.ID, Servings: &servings},
	}
	for _, entry := range entries {
		entryCopy := entry
		if err := db.WithContext(ctx).Create(&entryCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
