package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	defaultModel   = "claude-3-5-haiku-latest"
	apiVersion     = "2023-06-01"
)

// Client is the Anthropic messages API client
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a new Anthropic client
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey:      apiKey,
		model:       model,
		baseURL:     defaultBaseURL,
		maxTokens:   500,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint, used in tests
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Chat sends a single-turn request and returns the generated text.
// The response text lives at content[0].text in the Anthropic payload.
func (c *Client) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	reqBody, err := json.Marshal(messagesRequest{
		Model:       c.model,
		System:      systemPrompt,
		Messages:    []message{{Role: "user", Content: userMessage}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("messages request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := gjson.GetBytes(body, "error.message").String()
		if apiErr == "" {
			apiErr = string(body)
		}
		return "", fmt.Errorf("messages request failed (%d): %s", resp.StatusCode, apiErr)
	}

	text := gjson.GetBytes(body, "content.0.text")
	if !text.Exists() {
		return "", fmt.Errorf("malformed response: missing content text")
	}

	return text.String(), nil
}
