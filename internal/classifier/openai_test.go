package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"github.com/openai/openai-go"
)

type stubChatCompleter struct {
	content string
	err     error
}

func (s stubChatCompleter) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestNewOpenAIClassifierRequiresKey(t *testing.T) {
	if c := NewOpenAIClassifier("", ""); c != nil {
		t.Fatal("expected nil classifier without an API key")
	}
}

func TestOpenAIClassifyParsesPredictions(t *testing.T) {
	c := &OpenAIClassifier{
		client: stubChatCompleter{content: "```json\n[{\"id\":0,\"label\":\"POSITIVE\",\"confidence\":0.9},{\"id\":1,\"label\":\"neutral\",\"confidence\":0.6}]\n```"},
		model:  "gpt-4o-mini",
	}

	out, err := c.Classify(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(out))
	}
	if out[0].Label != domain.SentimentPositive || out[0].Confidence != 0.9 {
		t.Fatalf("unexpected first prediction: %+v", out[0])
	}
	if out[1].Label != domain.SentimentNeutral {
		t.Fatalf("unexpected second prediction: %+v", out[1])
	}
}

func TestOpenAIClassifyRejectsUnknownLabel(t *testing.T) {
	c := &OpenAIClassifier{
		client: stubChatCompleter{content: `[{"id":0,"label":"MIXED","confidence":0.9}]`},
		model:  "gpt-4o-mini",
	}

	_, err := c.Classify(context.Background(), []string{"a"})
	var cerr *domain.ClassificationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}
}

func TestOpenAIClassifyRejectsMissingIDs(t *testing.T) {
	c := &OpenAIClassifier{
		client: stubChatCompleter{content: `[{"id":0,"label":"POSITIVE","confidence":0.9}]`},
		model:  "gpt-4o-mini",
	}

	if _, err := c.Classify(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error for missing prediction")
	}
}

func TestOpenAIClassifyEmptyInput(t *testing.T) {
	c := &OpenAIClassifier{client: stubChatCompleter{err: errors.New("must not be called")}, model: "gpt-4o-mini"}
	out, err := c.Classify(context.Background(), nil)
	if err != nil || out != nil {
		t.Fatalf("empty input must short-circuit, got %v %v", out, err)
	}
}

var _ Classifier = (*HuggingFaceClassifier)(nil)
var _ Classifier = (*OpenAIClassifier)(nil)
