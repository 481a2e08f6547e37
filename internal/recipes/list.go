package recipes

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"larder/models"
)

const defaultListLimit = 20

// Summary is the lightweight projection used by pickers and search results.
type Summary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Cuisine        string `json:"cuisine,omitempty"`
	ServingsAmount int    `json:"servings_amount"`
	TimeTotal      string `json:"time_total"`
	SourceType     string `json:"source_type"`
}

// List returns recipe summaries, newest first, optionally filtered by a
// case-insensitive title substring match.
func List(ctx context.Context, db *gorm.DB, query string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	tx := db.WithContext(ctx).Model(&models.Recipe{}).
		Order("created_at desc, id desc").
		Limit(limit)
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		tx = tx.Where("lower(title) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}

	var rows []models.Recipe
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			ID:             row.ID,
			Title:          row.Title,
			Cuisine:        row.Cuisine,
			ServingsAmount: row.ServingsAmount,
			TimeTotal:      row.TimeTotal,
			SourceType:     row.SourceType,
		})
	}
	return summaries, nil
}
