package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"

	"larder/internal/ai"
	"larder/internal/config"
	"larder/internal/db"
	"larder/internal/recipes"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_recipes <file.pdf|file.txt> [...]")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, paths []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	client, err := ai.NewClient(ai.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("configure ai client: %w", err)
	}

	imported := 0
	for _, path := range paths {
		text, err := extractText(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		input, err := client.ExtractRecipe(ctx, text, ai.FetchOptions{})
		if err != nil {
			return fmt.Errorf("%s: extract recipe: %w", path, err)
		}

		recipeID, err := recipes.Create(ctx, database, input)
		if err != nil {
			return fmt.Errorf("%s: save recipe: %w", path, err)
		}

		fmt.Fprintf(os.Stdout, "Imported %q from %s (id %d)\n", input.Title, filepath.Base(path), recipeID)
		imported++
	}

	fmt.Fprintf(os.Stdout, "Imported %d recipes\n", imported)
	return nil
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractTextFromPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
	default:
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found")
	}
	return text, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
