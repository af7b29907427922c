// Package suggest proposes a category for a free-text record description
// using Gemini, constrained to the user's configured category list. The
// suggestion is advisory: records accept any category string.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ModelName is the Gemini model used for suggestions.
const ModelName = "gemini-2.5-flash"

// Category asks the model to pick the best-fitting category for the
// description. The answer is always one of the given categories; when the
// model returns anything else, the last category (conventionally "Other" /
// "Outros") is used.
func Category(ctx context.Context, description string, categories []string) (string, error) {
	if len(categories) == 0 {
		return "", fmt.Errorf("suggest: no categories configured")
	}

	prompt := "You classify personal finance entries.\n\n" +
		"Task:\n" +
		"- Pick the single best category for the entry description below.\n" +
		"- Answer with the category name EXACTLY as written in the list.\n" +
		"- Answer with the category name only: no punctuation, no explanation.\n\n" +
		"Categories:\n- " + strings.Join(categories, "\n- ") + "\n\n" +
		"Entry description: " + description + "\n"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("suggest: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, ModelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("suggest: generate content: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("suggest: empty response from model")
	}
	return normalizeAnswer(answer, categories), nil
}

// normalizeAnswer maps the model output onto the configured list, tolerating
// stray quotes and case drift.
func normalizeAnswer(answer string, categories []string) string {
	answer = strings.Trim(answer, "\"'` \n")
	for _, c := range categories {
		if strings.EqualFold(answer, c) {
			return c
		}
	}
	return categories[len(categories)-1]
}
