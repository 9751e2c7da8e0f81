package moderation

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/societyfixer/hustings/internal/config"
)

const systemInstruction = `You are a content moderation expert. Your task is to determine if the provided text contains any harmful content, including but not limited to hate speech, harassment, incitement of violence, or explicit material. Respond with only a single word: "SAFE" if the content is acceptable, or "UNSAFE" if it violates these policies. Do not provide any explanation or additional text.`

// GeminiClassifier classifies text with a Gemini model at temperature zero.
type GeminiClassifier struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClassifier creates a classifier from the moderation config.
// Returns nil without error when the config carries no API key, leaving
// the gate unconfigured.
func NewGeminiClassifier(ctx context.Context, cfg *config.ModerationConfig) (*GeminiClassifier, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create classifier client: %w", err)
	}

	return &GeminiClassifier{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.TimeoutDuration(),
	}, nil
}

// Classify submits text and returns the model's verdict token.
func (c *GeminiClassifier) Classify(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0),
		},
	)
	if err != nil {
		return "", fmt.Errorf("classify content: %w", err)
	}

	return resp.Text(), nil
}
