package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStructured(t *testing.T) {
	var captured responsesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(responsesResponse{
			Output: []outputItem{{
				Type: "message",
				Content: []outputContent{
					{Type: "output_text", Text: `{"sentiment": 0.4}`},
				},
			}},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "gpt-4o-mini", server.URL)
	text, err := c.CreateStructured(context.Background(), "system prompt", "user prompt", sentimentFormat)
	require.NoError(t, err)
	assert.Equal(t, `{"sentiment": 0.4}`, text)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Input, 2)
	assert.Equal(t, "system", captured.Input[0].Role)
	assert.Equal(t, "user prompt", captured.Input[1].Content)
	require.NotNil(t, captured.Text)
	assert.Equal(t, "json_schema", captured.Text.Format.Type)
	assert.Equal(t, "journal_sentiment_enriched", captured.Text.Format.Name)
	assert.True(t, captured.Text.Format.Strict)
}

func TestCreateStructuredHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient("test-key", "gpt-4o-mini", server.URL)
	_, err := c.CreateStructured(context.Background(), "s", "u", sentimentFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCreateStructuredAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(responsesResponse{
			Error: &apiError{Type: "invalid_request_error", Message: "bad schema"},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "gpt-4o-mini", server.URL)
	_, err := c.CreateStructured(context.Background(), "s", "u", sentimentFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad schema")
}

func TestCreateStructuredEmptyOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(responsesResponse{})
	}))
	defer server.Close()

	c := NewClient("test-key", "gpt-4o-mini", server.URL)
	_, err := c.CreateStructured(context.Background(), "s", "u", sentimentFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
