package domain

import (
	"strings"
	"testing"
)

func TestSentimentLabelIsValid(t *testing.T) {
	for _, label := range []SentimentLabel{SentimentPositive, SentimentNegative, SentimentNeutral} {
		if !label.IsValid() {
			t.Errorf("expected %s to be valid", label)
		}
	}
	if SentimentLabel("LABEL_2").IsValid() {
		t.Errorf("raw model tag must not be a valid canonical label")
	}
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(" Finnhub ")
	if err != nil || p != ProviderFinnhub {
		t.Errorf("expected finnhub, got %q err=%v", p, err)
	}
	p, err = ParseProvider("NEWSAPI")
	if err != nil || p != ProviderNewsAPI {
		t.Errorf("expected newsapi, got %q err=%v", p, err)
	}
	if _, err := ParseProvider("bloomberg"); err == nil {
		t.Errorf("expected error for unknown provider")
	}
}

func TestFetchRequestValidate(t *testing.T) {
	valid := FetchRequest{Company: "Apple", Provider: ProviderFinnhub, MaxArticles: 20, LookbackDays: 7}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]FetchRequest{
		"empty company":     {Provider: ProviderFinnhub, MaxArticles: 20, LookbackDays: 7},
		"bad provider":      {Company: "Apple", Provider: "reuters", MaxArticles: 20, LookbackDays: 7},
		"too few articles":  {Company: "Apple", Provider: ProviderFinnhub, MaxArticles: 4, LookbackDays: 7},
		"too many articles": {Company: "Apple", Provider: ProviderFinnhub, MaxArticles: 51, LookbackDays: 7},
		"zero lookback":     {Company: "Apple", Provider: ProviderFinnhub, MaxArticles: 20, LookbackDays: 0},
		"long lookback":     {Company: "Apple", Provider: ProviderFinnhub, MaxArticles: 20, LookbackDays: 31},
	}
	for name, req := range cases {
		if err := req.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestAggregateResultPercentage(t *testing.T) {
	r := AggregateResult{Counts: SentimentCounts{Positive: 2, Negative: 1, Neutral: 1}, Total: 4}
	if got := r.Percentage(SentimentPositive); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := r.Percentage(SentimentNeutral); got != 0.25 {
		t.Errorf("expected 0.25, got %f", got)
	}

	empty := AggregateResult{}
	if got := empty.Percentage(SentimentPositive); got != 0 {
		t.Errorf("empty result percentage must be 0, got %f", got)
	}
}

func TestSentimentCountsTotal(t *testing.T) {
	c := SentimentCounts{Positive: 3, Negative: 2, Neutral: 5}
	if c.Total() != 10 {
		t.Errorf("expected 10, got %d", c.Total())
	}
}

func TestClassificationErrorMessage(t *testing.T) {
	err := &ClassificationError{Label: "LABEL_7"}
	if !strings.Contains(err.Error(), "LABEL_7") {
		t.Errorf("error should name the offending label: %s", err.Error())
	}
}
