package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"estateportal/internal/model"
)

const (
	assistantSystemPrompt = "You are a helpful AI assistant for a real estate platform. Provide helpful, accurate, and professional responses about properties, real estate market trends, and property-related advice."
	analystSystemPrompt   = "You are a professional real estate market analyst. Provide concise, actionable insights based on property data."

	noPropertiesAnalysis = "No properties provided for analysis"
	candidateKeyPrefix   = "sk-"
)

// Completer turns a prompt plus optional context into generated text
type Completer interface {
	Complete(ctx context.Context, prompt string, promptContext any) (string, error)
}

// CompletionGateway forwards prompts to the completion API and classifies failures.
// It holds no mutable state; calls may run concurrently.
type CompletionGateway struct {
	client *OpenAIClient
	now    func() time.Time
}

// NewCompletionGateway creates a gateway over the given client
func NewCompletionGateway(client *OpenAIClient) *CompletionGateway {
	return &CompletionGateway{client: client, now: time.Now}
}

// Status reports whether the server-side key is present without revealing it
func (g *CompletionGateway) Status() model.KeyStatusResponse {
	configured := g.client.IsEnabled()
	message := "API key is not configured"
	if configured {
		message = "API key is configured"
	}
	return model.KeyStatusResponse{
		Configured: configured,
		Message:    message,
		Timestamp:  g.now().UTC(),
	}
}

// ValidateKey probes the completion API once with a candidate key.
// The key is never stored or logged.
func (g *CompletionGateway) ValidateKey(ctx context.Context, apiKey string) (*model.ValidateKeyResponse, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, inputError("API key is required and must be a string")
	}
	if !strings.HasPrefix(apiKey, candidateKeyPrefix) {
		return nil, inputError(`Invalid OpenAI API key format. API key should start with "sk-"`)
	}

	err := g.client.ListModels(ctx, apiKey)
	if err == nil {
		log.Printf("✅ Candidate API key validated")
		return &model.ValidateKeyResponse{
			Valid:   true,
			Message: "API key validated successfully! To complete the setup, add it to the server environment as OPENAI_API_KEY and restart the service. Once added, all AI features will be activated.",
			NextSteps: []string{
				"Add OPENAI_API_KEY to the server environment",
				"Restart the server to activate AI features",
			},
		}, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		log.Printf("Warning: API key validation failed with status %d: %s", apiErr.StatusCode, apiErr.Body)
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &model.ValidateKeyResponse{
				Valid:   false,
				Message: "Invalid API key - unable to authenticate with OpenAI. Please check that your API key is correct and active.",
			}, nil
		case http.StatusTooManyRequests:
			return nil, &GatewayError{Kind: KindQuotaExceeded, Message: msgQuotaExceeded, Err: err}
		}
	} else {
		log.Printf("Warning: API key validation request failed: %v", err)
	}
	return nil, &GatewayError{Kind: KindUpstream, Message: "Failed to validate API key", Err: err}
}

// Complete generates text for a prompt with optional structured context
func (g *CompletionGateway) Complete(ctx context.Context, prompt string, promptContext any) (string, error) {
	if !g.client.IsEnabled() {
		return "", configMissingError()
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", inputError("Prompt is required")
	}

	content := prompt
	if promptContext != nil {
		data, err := json.Marshal(promptContext)
		if err != nil || len(data) == 0 || data[0] != '{' {
			return "", inputError("Context must be a JSON object")
		}
		content += "\n\nContext: " + string(data)
	}

	return g.generate(ctx, assistantSystemPrompt, content, 500, 0.7)
}

// Analyze produces a market analysis of the given properties
func (g *CompletionGateway) Analyze(ctx context.Context, properties []model.Property) (string, error) {
	if !g.client.IsEnabled() {
		return "", configMissingError()
	}
	if len(properties) == 0 {
		return noPropertiesAnalysis, nil
	}

	prompt, err := BuildAnalysisPrompt(properties)
	if err != nil {
		return "", inputError("Properties could not be encoded")
	}

	return g.generate(ctx, analystSystemPrompt, prompt, 600, 0.3)
}

func (g *CompletionGateway) generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	resp, err := g.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		gwErr := classifyUpstream(err)
		log.Printf("Warning: completion failed (%s): %v", gwErr.Kind, err)
		return "", gwErr
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Printf("Warning: completion returned no content (model %s)", resp.Model)
		return "", &GatewayError{Kind: KindUpstream, Message: msgUpstream, Err: errors.New("no content generated")}
	}

	return resp.Choices[0].Message.Content, nil
}

var _ Completer = (*CompletionGateway)(nil)
