package analysis

import (
	"math"
	"testing"

	"github.com/Shamanth-8/stocksenti/internal/domain"
)

func classified(title string, label domain.SentimentLabel, confidence float64) domain.ClassifiedArticle {
	return domain.ClassifiedArticle{
		Article:    domain.Article{Title: title},
		Label:      label,
		Confidence: confidence,
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	result := Aggregate(nil)
	if result.DominantLabel != domain.SentimentNeutral {
		t.Fatalf("expected NEUTRAL for empty input, got %s", result.DominantLabel)
	}
	if result.Total != 0 || result.AverageConfidence != 0 {
		t.Fatalf("expected zero totals, got %+v", result)
	}
	if result.TopPositive != nil || result.TopNegative != nil {
		t.Fatal("expected no exemplars for empty input")
	}
}

func TestAggregateMajorityWins(t *testing.T) {
	result := Aggregate([]domain.ClassifiedArticle{
		classified("a", domain.SentimentPositive, 0.9),
		classified("b", domain.SentimentPositive, 0.8),
		classified("c", domain.SentimentNegative, 0.7),
		classified("d", domain.SentimentNeutral, 0.6),
		classified("e", domain.SentimentPositive, 0.5),
	})

	if result.DominantLabel != domain.SentimentPositive {
		t.Fatalf("expected POSITIVE, got %s", result.DominantLabel)
	}
	if result.Counts.Positive != 3 || result.Counts.Negative != 1 || result.Counts.Neutral != 1 {
		t.Fatalf("unexpected counts: %+v", result.Counts)
	}
	if math.Abs(result.AverageConfidence-0.70) > 1e-9 {
		t.Fatalf("expected average 0.70, got %f", result.AverageConfidence)
	}
	if result.TopPositive == nil || result.TopPositive.Title != "a" {
		t.Fatalf("unexpected top positive: %+v", result.TopPositive)
	}
	if result.TopNegative == nil || result.TopNegative.Title != "c" {
		t.Fatalf("unexpected top negative: %+v", result.TopNegative)
	}
}

func TestAggregateTieResolvesNeutral(t *testing.T) {
	cases := map[string][]domain.ClassifiedArticle{
		"positive vs negative": {
			classified("a", domain.SentimentPositive, 0.9),
			classified("b", domain.SentimentNegative, 0.9),
		},
		"three-way": {
			classified("a", domain.SentimentPositive, 0.9),
			classified("b", domain.SentimentNegative, 0.8),
			classified("c", domain.SentimentNeutral, 0.7),
		},
		"positive vs neutral": {
			classified("a", domain.SentimentPositive, 0.9),
			classified("b", domain.SentimentPositive, 0.9),
			classified("c", domain.SentimentNeutral, 0.8),
			classified("d", domain.SentimentNeutral, 0.8),
			classified("e", domain.SentimentNegative, 0.5),
		},
	}

	for name, articles := range cases {
		if got := Aggregate(articles).DominantLabel; got != domain.SentimentNeutral {
			t.Errorf("%s: expected NEUTRAL on tie, got %s", name, got)
		}
	}
}

func TestAggregateTopExemplarFirstWinsOnTie(t *testing.T) {
	result := Aggregate([]domain.ClassifiedArticle{
		classified("A", domain.SentimentPositive, 0.6),
		classified("B", domain.SentimentPositive, 0.9),
		classified("C", domain.SentimentPositive, 0.9),
	})

	if result.TopPositive == nil || result.TopPositive.Title != "B" {
		t.Fatalf("expected first max-confidence article B, got %+v", result.TopPositive)
	}
}

func TestAggregateMissingLabelHasNoExemplar(t *testing.T) {
	result := Aggregate([]domain.ClassifiedArticle{
		classified("a", domain.SentimentPositive, 0.9),
		classified("b", domain.SentimentNeutral, 0.4),
	})

	if result.TopNegative != nil {
		t.Fatalf("expected nil top negative, got %+v", result.TopNegative)
	}
	if result.TopPositive == nil {
		t.Fatal("expected a top positive exemplar")
	}
}
