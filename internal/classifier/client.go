// Package classifier wraps the external structured-output AI service used to
// score journal entries and generate workout programs.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// SchemaFormat describes the strict JSON schema the model must reply with.
type SchemaFormat struct {
	Name   string
	Schema json.RawMessage
	Strict bool
}

// Client calls an OpenAI-compatible responses endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient creates a new classifier client. An empty baseURL selects the
// public OpenAI endpoint.
func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second, // LLM calls can be slow
		},
	}
}

// request/response bodies for the responses API

type responsesRequest struct {
	Model string           `json:"model"`
	Input []requestMessage `json:"input"`
	Text  *textOptions     `json:"text,omitempty"`
}

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textOptions struct {
	Format formatSpec `json:"format"`
}

type formatSpec struct {
	Type   string          `json:"type"`
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

type responsesResponse struct {
	Output []outputItem `json:"output"`
	Error  *apiError    `json:"error,omitempty"`
}

type outputItem struct {
	Type    string          `json:"type"`
	Content []outputContent `json:"content"`
}

type outputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// CreateStructured sends a system instruction and user message constrained to
// the given JSON schema and returns the raw JSON text of the reply.
func (c *Client) CreateStructured(ctx context.Context, system, user string, format SchemaFormat) (string, error) {
	reqBody := responsesRequest{
		Model: c.model,
		Input: []requestMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Text: &textOptions{
			Format: formatSpec{
				Type:   "json_schema",
				Name:   format.Name,
				Schema: format.Schema,
				Strict: format.Strict,
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/responses", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call model API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp responsesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse API response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("model API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var responseText string
	for _, item := range apiResp.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				responseText = content.Text
				break
			}
		}
		if responseText != "" {
			break
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("model returned empty response")
	}

	return extractJSON(responseText), nil
}

// extractJSON pulls a JSON object out of a model reply, handling markdown
// code blocks. Schema enforcement should make this unnecessary, but upstream
// strictness is not trusted as a hard guarantee.
func extractJSON(text string) string {
	re := regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(\{.*?\})\s*\n?` + "```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return matches[1]
	}

	re = regexp.MustCompile(`(?s)(\{.*\})`)
	matches = re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return matches[1]
	}

	return text
}
