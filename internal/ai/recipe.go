package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"larder/internal/recipes"
	"larder/models"
)

const maxExtractChars = 24000

// GenerateRecipe asks the model to invent a complete recipe for a free-text
// prompt and returns it as a save-ready input with source type "ai".
func (c *Client) GenerateRecipe(ctx context.Context, prompt string, opts FetchOptions) (recipes.Input, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return recipes.Input{}, errors.New("ai: prompt must not be empty")
	}

	payload := map[string]any{
		"model":       c.effectiveModel(opts),
		"temperature": c.temperature,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a professional recipe developer. Produce realistic, cookable recipes as JSON only.",
			},
			{
				"role":    "user",
				"content": buildGeneratePrompt(prompt),
			},
		},
	}

	input, err := c.fetchRecipe(ctx, payload)
	if err != nil {
		return recipes.Input{}, err
	}
	input.SourceType = models.SourceAI
	return input, nil
}

// ExtractRecipe parses free-form recipe text, typically pulled from a PDF or
// pasted from a website, into the same save-ready shape with source type
// "import". The model transcribes; it must not invent ingredients or steps.
func (c *Client) ExtractRecipe(ctx context.Context, text string, opts FetchOptions) (recipes.Input, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return recipes.Input{}, errors.New("ai: text must not be empty")
	}
	if len(text) > maxExtractChars {
		text = text[:maxExtractChars]
	}

	payload := map[string]any{
		"model":       c.effectiveModel(opts),
		"temperature": c.temperature,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You transcribe recipes into structured JSON. Copy faithfully; never add ingredients or steps that are not in the source text.",
			},
			{
				"role":    "user",
				"content": buildExtractPrompt(text),
			},
		},
	}

	input, err := c.fetchRecipe(ctx, payload)
	if err != nil {
		return recipes.Input{}, err
	}
	input.SourceType = models.SourceImport
	return input, nil
}

func (c *Client) fetchRecipe(ctx context.Context, payload map[string]any) (recipes.Input, error) {
	content, err := c.performChatCompletion(ctx, payload)
	if err != nil {
		return recipes.Input{}, err
	}

	var parsed aiRecipeResponse
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(&parsed); err != nil {
		return recipes.Input{}, fmt.Errorf("ai: parse JSON payload: %w", err)
	}

	return normaliseRecipeData(parsed)
}

func recipeSchema() string {
	return `{
  "title": string,
  "description": short string,
  "cuisine": string | "",
  "servings": integer >= 1,
  "time_prep": string (e.g., "10 min") | "",
  "time_cook": string | "",
  "time_total": string | "",
  "ingredients": [
    {"section": string ("Main" when the recipe has no named sections),
     "lines": [{"item": string, "amount": number or null, "unit": string | "", "notes": string | ""}]}
  ],
  "instructions": [
    {"section": string, "steps": [string]}
  ],
  "notes": [{"kind": one of "note", "storage", "tip", "variation", "text": string}]
}
Strict rules: respond with raw JSON, no Markdown, no comments. Amounts are plain numbers, never fractions like "1/2". Use empty string instead of unknown text fields and an empty list when a collection is empty.`
}

func buildGeneratePrompt(prompt string) string {
	return fmt.Sprintf("Create one complete recipe for the following request: %q. Return JSON with these fields:\n%s", prompt, recipeSchema())
}

func buildExtractPrompt(text string) string {
	return fmt.Sprintf("Transcribe the recipe in the text below into JSON with these fields:\n%s\n\nSource text:\n%s", recipeSchema(), text)
}

type aiRecipeResponse struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Cuisine      string               `json:"cuisine"`
	Servings     any                  `json:"servings"`
	TimePrep     string               `json:"time_prep"`
	TimeCook     string               `json:"time_cook"`
	TimeTotal    string               `json:"time_total"`
	Ingredients  []aiIngredientGroup  `json:"ingredients"`
	Instructions []aiInstructionGroup `json:"instructions"`
	Notes        []aiNote             `json:"notes"`
}

type aiIngredientGroup struct {
	Section string   `json:"section"`
	Lines   []aiLine `json:"lines"`
}

type aiLine struct {
	Item   string `json:"item"`
	Amount any    `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes"`
}

type aiInstructionGroup struct {
	Section string   `json:"section"`
	Steps   []string `json:"steps"`
}

type aiNote struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func normaliseRecipeData(data aiRecipeResponse) (recipes.Input, error) {
	title := normaliseText(data.Title)
	if title == "" {
		return recipes.Input{}, errors.New("ai: recipe title missing from response")
	}

	servings := int(parseNumeric(data.Servings))
	if servings < 1 {
		servings = models.DefaultServings
	}

	input := recipes.Input{
		Title:          title,
		Description:    normaliseText(data.Description),
		Cuisine:        normaliseValue(data.Cuisine),
		ServingsAmount: servings,
		TimePrep:       normaliseValue(data.TimePrep),
		TimeCook:       normaliseValue(data.TimeCook),
		TimeTotal:      normaliseValue(data.TimeTotal),
	}

	for _, group := range data.Ingredients {
		lines := make([]recipes.LineInput, 0, len(group.Lines))
		for _, line := range group.Lines {
			item := normaliseText(line.Item)
			if item == "" {
				continue
			}
			converted := recipes.LineInput{
				Item:  item,
				Unit:  normaliseValue(line.Unit),
				Notes: normaliseText(line.Notes),
			}
			if amount := parseNumeric(line.Amount); amount > 0 {
				converted.Amount = &amount
			}
			lines = append(lines, converted)
		}
		if len(lines) == 0 {
			continue
		}
		input.Ingredients = append(input.Ingredients, recipes.IngredientGroup{
			Section: normaliseValue(group.Section),
			Lines:   lines,
		})
	}

	for _, group := range data.Instructions {
		steps := make([]recipes.StepInput, 0, len(group.Steps))
		for _, text := range group.Steps {
			text = normaliseText(text)
			if text == "" {
				continue
			}
			steps = append(steps, recipes.StepInput{Step: len(steps) + 1, Text: text})
		}
		if len(steps) == 0 {
			continue
		}
		input.Instructions = append(input.Instructions, recipes.InstructionGroup{
			Section: normaliseValue(group.Section),
			Steps:   steps,
		})
	}

	for _, note := range data.Notes {
		text := normaliseText(note.Text)
		if text == "" {
			continue
		}
		kind := models.NormalizeNoteKind(note.Kind)
		input.Notes = append(input.Notes, recipes.NoteInput{Kind: kind, Text: text})
	}

	if len(input.Ingredients) == 0 {
		return recipes.Input{}, errors.New("ai: recipe has no ingredients")
	}
	if len(input.Instructions) == 0 {
		return recipes.Input{}, errors.New("ai: recipe has no instructions")
	}

	return input, nil
}
