package model

import "time"

// KeyStatusResponse reports whether the server-side completion credential is present
type KeyStatusResponse struct {
	Configured bool      `json:"configured"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// ValidateKeyRequest carries a candidate credential. It is never stored.
type ValidateKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// ValidateKeyResponse is the outcome of probing a candidate credential
type ValidateKeyResponse struct {
	Valid     bool     `json:"valid"`
	Message   string   `json:"message"`
	NextSteps []string `json:"next_steps,omitempty"`
}

// CompleteRequest asks the gateway for generated text.
// Context, when present, must be a JSON object.
type CompleteRequest struct {
	Prompt  string `json:"prompt"`
	Context any    `json:"context,omitempty"`
}

// CompleteResponse carries generated text
type CompleteResponse struct {
	Text string `json:"text"`
}

// AnalyzeRequest asks for a market analysis of a set of listings
type AnalyzeRequest struct {
	Properties []Property `json:"properties"`
}

// AnalyzeResponse carries the generated analysis
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
