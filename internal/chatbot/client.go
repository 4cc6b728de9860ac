package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatMessage is one turn in the completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces a completion for one model. *Client is the Groq-backed
// implementation; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, model string, messages []ChatMessage) (string, error)
}

// APIError is a non-2xx response from the completion API. The service uses
// the status code and message to decide whether to fall back to the next
// model.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion API status %d: %s", e.StatusCode, e.Message)
}

// Client calls the Groq chat-completions API (OpenAI-compatible).
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the message list to the given model and returns the reply
// text. Non-2xx statuses come back as *APIError.
func (c *Client) Complete(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var cr completionResponse
	// decode even on errors: the API reports failures as JSON bodies
	_ = json.Unmarshal(respBody, &cr)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(respBody)
		if cr.Error != nil {
			msg = cr.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
