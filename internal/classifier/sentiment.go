package classifier

import (
	"context"
	"encoding/json"
	"fmt"
)

// Urgency levels the model may assign to an entry.
const (
	UrgencyNone     = "None"
	UrgencyLow      = "Low"
	UrgencyMedium   = "Medium"
	UrgencyHigh     = "High"
	UrgencyCritical = "Critical"
)

// Sentiment labels.
const (
	LabelPositive = "Positive"
	LabelNeutral  = "Neutral"
	LabelNegative = "Negative"
)

// Sentiment is the validated payload returned for one journal entry.
type Sentiment struct {
	Sentiment float64  `json:"sentiment"`
	Label     string   `json:"label"`
	Tones     []string `json:"tones"`
	Stressors []string `json:"stressors"`
	Urgency   string   `json:"urgency"`
	Summary   string   `json:"summary"`
}

const sentimentSystemPrompt = "You are a mental health copilot that rates sentiment on a scale of -1 to 1 and classifies it as Positive, Neutral, or Negative."

var sentimentFormat = SchemaFormat{
	Name: "journal_sentiment_enriched",
	Schema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"sentiment": {"type": "number", "minimum": -1, "maximum": 1},
			"label": {"type": "string", "enum": ["Positive", "Neutral", "Negative"]},
			"tones": {"type": "array", "items": {"type": "string"}},
			"stressors": {"type": "array", "items": {"type": "string"}},
			"urgency": {"type": "string", "enum": ["None", "Low", "Medium", "High", "Critical"]},
			"summary": {"type": "string"}
		},
		"required": ["sentiment", "label", "tones", "stressors", "urgency", "summary"],
		"additionalProperties": false
	}`),
	Strict: true,
}

// ClassifyEntry scores one journal entry for sentiment, tone, urgency, and
// stressors.
func (c *Client) ClassifyEntry(ctx context.Context, content string) (Sentiment, error) {
	prompt := fmt.Sprintf(
		`Journal entry: %q. Evaluate the tone, urgency, and primary stressors. Reply in JSON that includes sentiment (-1 to 1), label (Positive|Neutral|Negative), tones (array of concise emotional descriptors), stressors (array of distinct stress triggers mentioned), urgency (None|Low|Medium|High|Critical), and a one sentence summary contextualizing the entry. Always include every field even if arrays are empty or urgency is None.`,
		content)

	text, err := c.CreateStructured(ctx, sentimentSystemPrompt, prompt, sentimentFormat)
	if err != nil {
		return Sentiment{}, err
	}

	return DecodeSentiment([]byte(text))
}

// DecodeSentiment parses a sentiment payload with per-field defaults. Valid
// JSON with missing or mistyped fields is not an error: each field is coerced
// independently so one bad field never discards the rest of the payload.
func DecodeSentiment(data []byte) (Sentiment, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Sentiment{}, fmt.Errorf("failed to parse sentiment payload: %w", err)
	}

	out := Sentiment{
		Label:   LabelNeutral,
		Urgency: UrgencyLow,
	}

	if v, ok := raw["sentiment"].(float64); ok {
		out.Sentiment = v
	}
	if v, ok := raw["label"].(string); ok {
		out.Label = v
	}
	if v, ok := raw["urgency"].(string); ok {
		out.Urgency = v
	}
	if v, ok := raw["summary"].(string); ok {
		out.Summary = v
	}
	out.Tones = stringSlice(raw["tones"])
	out.Stressors = stringSlice(raw["stressors"])

	return out, nil
}

// stringSlice coerces a decoded JSON value into a string slice, dropping any
// non-string elements. Anything that is not an array yields an empty slice.
func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
