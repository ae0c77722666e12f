package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIClassifier is a fallback backend that asks a chat model for the same
// closed three-label verdict. It follows the same normalization contract as
// the hosted model: labels outside the set fail the request.
type OpenAIClassifier struct {
	client chatCompleter
	model  string
}

// NewOpenAIClassifier returns nil when no API key is configured.
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClassifier{
		client: &openAIChatClient{client: client},
		model:  model,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, headlines []string) ([]Prediction, error) {
	if len(headlines) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, headline := range headlines {
		sb.WriteString(fmt.Sprintf("id=%d\n", i))
		sb.WriteString(fmt.Sprintf("headline=%s\n\n", strings.TrimSpace(headline)))
	}

	systemPrompt := "You classify financial news headline sentiment. Return ONLY a JSON array with one object per input id. Each object requires: id (int), label (POSITIVE|NEGATIVE|NEUTRAL), confidence (0..1). Include every id exactly once. No markdown."
	userPrompt := "Headlines:\n" + sb.String()

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty classifier completion")
	}

	raw := trimCodeFence(completion.Choices[0].Message.Content)

	var parsed []struct {
		ID         int     `json:"id"`
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse classifier json: %w", err)
	}

	out := make([]Prediction, len(headlines))
	seen := make([]bool, len(headlines))
	for _, row := range parsed {
		if row.ID < 0 || row.ID >= len(headlines) {
			continue
		}
		label, err := NormalizeLabel(row.Label)
		if err != nil {
			return nil, err
		}
		confidence := row.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		out[row.ID] = Prediction{Label: label, Confidence: confidence}
		seen[row.ID] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("classifier response missing prediction for input %d", i)
		}
	}
	return out, nil
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

type openAIChatClient struct {
	client openai.Client
}

func (c *openAIChatClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
