package ai

import (
	"context"
	"fmt"
	"strings"

	"zapagenda/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Extractor on top of the Gemini API.
type GeminiClient struct {
	model        *genai.GenerativeModel
	systemPrompt string
}

// NewGeminiClient creates a Gemini-backed extractor.
func NewGeminiClient(apiKey, systemPrompt string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-2.0-flash")
	return &GeminiClient{model: model, systemPrompt: systemPrompt}, nil
}

// GenerateReply sends the assembled prompt and returns the raw model
// output, trimmed.
func (g *GeminiClient) GenerateReply(ctx context.Context, history []models.ChatMessage, knowledge map[string]string) (string, error) {
	prompt := BuildPrompt(g.systemPrompt, knowledge, history)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
