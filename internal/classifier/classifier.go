package classifier

import (
	"context"
	"strings"

	"github.com/Shamanth-8/stocksenti/internal/domain"
)

// Prediction is the classifier's verdict for one headline.
type Prediction struct {
	Label      domain.SentimentLabel
	Confidence float64
}

// Classifier scores a batch of headlines. Output is aligned index-for-index
// with input; empty input yields empty output without a model call.
// Implementations hold only an immutable model handle and are safe for
// concurrent use.
type Classifier interface {
	Classify(ctx context.Context, headlines []string) ([]Prediction, error)
}

// NormalizeLabel maps raw model output into the canonical label set. The
// three-class RoBERTa checkpoint emits positional tags (LABEL_0/1/2); other
// checkpoints emit the literal class names. Anything outside this closed set
// is a contract violation and fails the request — a default label would
// silently mask a model/version mismatch.
func NormalizeLabel(raw string) (domain.SentimentLabel, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LABEL_0", "NEGATIVE":
		return domain.SentimentNegative, nil
	case "LABEL_1", "NEUTRAL":
		return domain.SentimentNeutral, nil
	case "LABEL_2", "POSITIVE":
		return domain.SentimentPositive, nil
	default:
		return "", &domain.ClassificationError{Label: raw}
	}
}
