package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"estateportal/internal/config"
)

const embeddingBatchSize = 100

// errNotConfigured is returned when the client has no server-side key
var errNotConfigured = errors.New("OpenAI API is not enabled (missing API key)")

// APIError is a non-success response from the completion API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled && c.config.APIKey != ""
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// EmbeddingRequest represents an embedding request
type EmbeddingRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

// EmbeddingResponse represents the embedding API response
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.IsEnabled() {
		return nil, errNotConfigured
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	var result ChatCompletionResponse
	if err := c.do(ctx, http.MethodPost, "/chat/completions", c.config.APIKey, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListModels probes the API with the given key. A nil error means the key authenticated.
func (c *OpenAIClient) ListModels(ctx context.Context, apiKey string) error {
	return c.do(ctx, http.MethodGet, "/models", apiKey, nil, nil)
}

// CreateEmbeddings creates embeddings for the given texts
func (c *OpenAIClient) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if !c.IsEnabled() {
		return nil, errNotConfigured
	}

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	allEmbeddings := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		req := EmbeddingRequest{
			Model:          c.config.EmbeddingModel,
			Input:          batch,
			EncodingFormat: "float",
		}
		var result EmbeddingResponse
		if err := c.do(ctx, http.MethodPost, "/embeddings", c.config.APIKey, req, &result); err != nil {
			return nil, fmt.Errorf("failed to create embeddings for batch %d: %w", i/embeddingBatchSize, err)
		}

		// Extract embeddings in order
		embeddings := make([][]float32, len(batch))
		for _, item := range result.Data {
			if item.Index >= 0 && item.Index < len(embeddings) {
				embeddings[item.Index] = item.Embedding
			}
		}
		allEmbeddings = append(allEmbeddings, embeddings...)

		log.Printf("Created %d embeddings using model %s (tokens: %d)", len(embeddings), result.Model, result.Usage.TotalTokens)
	}

	return allEmbeddings, nil
}

// do sends one JSON request. Non-2xx responses come back as *APIError.
func (c *OpenAIClient) do(ctx context.Context, method, path, apiKey string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.config.APIBase+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
