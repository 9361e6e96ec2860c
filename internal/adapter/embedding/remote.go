// Package embedding provides the embedding strategies: a remote
// OpenAI-compatible model call, a part-of-speech-weighted fallback, and a
// deterministic hashing embedder, combined by a Chain that tries each in
// order and L2-normalizes the result.
package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Remote calls an OpenAI-compatible embeddings endpoint. It is safe for
// concurrent use; the underlying http.Client handles connection reuse.
type Remote struct {
	apiKey    string
	model     string
	baseURL   string
	dimension int
	client    *http.Client
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewRemote creates a Remote reading the API key from the named environment
// variable. The dimension is derived from the model name.
func NewRemote(apiKeyEnv, model, baseURL string) (*Remote, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	dimension := 1536
	switch model {
	case "text-embedding-3-small", "text-embedding-ada-002":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	case "nomic-embed-text":
		dimension = 768
	case "mxbai-embed-large":
		dimension = 1024
	case "all-minilm":
		dimension = 384
	}

	return &Remote{
		apiKey:    apiKey,
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// NewOllamaRemote creates a Remote against a local Ollama server, which
// accepts any API key.
func NewOllamaRemote(model, baseURL string) *Remote {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}

	dimension := 768
	switch model {
	case "mxbai-embed-large":
		dimension = 1024
	case "all-minilm":
		dimension = 384
	}

	return &Remote{
		apiKey:    "ollama",
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Embed requests a vector for text. A transport or API failure is returned
// as an error; an empty response yields a nil vector.
func (e *Remote) Embed(text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}

	reqBody := embeddingRequest{
		Input: []string{text},
		Model: e.model,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", e.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("failed to parse embedding response: %w", err)
	}
	if embResp.Error != nil {
		return nil, fmt.Errorf("embedding API error: %s", embResp.Error.Message)
	}
	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return nil, nil
	}

	return embResp.Data[0].Embedding, nil
}

// WordVector resolves a single word through the same endpoint, letting Remote
// double as the word source for the fallback strategy. Lookup failures are
// treated as unknown words.
func (e *Remote) WordVector(word string) []float32 {
	vec, err := e.Embed(word)
	if err != nil {
		return nil
	}
	return vec
}

// Dimension returns the embedding vector dimension.
func (e *Remote) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *Remote) ModelName() string {
	return e.model
}
