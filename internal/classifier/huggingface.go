package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	huggingFaceBaseURL = "https://api-inference.huggingface.co/models"

	// DefaultModelID is the three-class sentiment checkpoint the pipeline was
	// built against.
	DefaultModelID = "cardiffnlp/twitter-roberta-base-sentiment-latest"
)

// HuggingFaceClassifier calls the hosted inference API for a pretrained
// three-class sentiment model. The handle is created once at process start
// and is read-only afterwards; each Classify call is stateless.
type HuggingFaceClassifier struct {
	client  *http.Client
	baseURL string
	modelID string
	token   string
	tracer  trace.Tracer
}

// NewHuggingFaceClassifier returns nil when no API token is configured.
func NewHuggingFaceClassifier(token, modelID string, tracer trace.Tracer) *HuggingFaceClassifier {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultModelID
	}
	return &HuggingFaceClassifier{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: huggingFaceBaseURL,
		modelID: modelID,
		token:   token,
		tracer:  tracer,
	}
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify scores headlines through the inference API. The model may answer
// with one top label per input or with a full per-class distribution; for
// distributions the argmax class wins and its probability becomes the
// confidence.
func (c *HuggingFaceClassifier) Classify(ctx context.Context, headlines []string) ([]Prediction, error) {
	_, span := c.tracer.Start(ctx, "huggingface.classify")
	defer span.End()

	if len(headlines) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(map[string]any{
		"inputs":  headlines,
		"options": map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/" + c.modelID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API error %d: %s", resp.StatusCode, string(body))
	}

	return parsePredictions(body, len(headlines))
}

func parsePredictions(body []byte, want int) ([]Prediction, error) {
	// Per-input class distributions: [[{label,score},...], ...]
	var distributions [][]labelScore
	if err := json.Unmarshal(body, &distributions); err == nil {
		out := make([]Prediction, 0, len(distributions))
		for _, classes := range distributions {
			if len(classes) == 0 {
				return nil, fmt.Errorf("inference response has an empty class distribution")
			}
			top := classes[0]
			for _, class := range classes[1:] {
				if class.Score > top.Score {
					top = class
				}
			}
			label, err := NormalizeLabel(top.Label)
			if err != nil {
				return nil, err
			}
			out = append(out, Prediction{Label: label, Confidence: top.Score})
		}
		return checkAlignment(out, want)
	}

	// One top label per input: [{label,score}, ...]
	var tops []labelScore
	if err := json.Unmarshal(body, &tops); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}
	out := make([]Prediction, 0, len(tops))
	for _, top := range tops {
		label, err := NormalizeLabel(top.Label)
		if err != nil {
			return nil, err
		}
		out = append(out, Prediction{Label: label, Confidence: top.Score})
	}
	return checkAlignment(out, want)
}

func checkAlignment(out []Prediction, want int) ([]Prediction, error) {
	if len(out) != want {
		return nil, fmt.Errorf("inference response has %d predictions for %d inputs", len(out), want)
	}
	return out, nil
}
