package analysis

import "github.com/Shamanth-8/stocksenti/internal/domain"

// Aggregate combines per-article sentiment into one directional verdict.
//
// The dominant label needs a strictly greatest count; any tie for the maximum
// (including POSITIVE vs NEGATIVE) resolves to NEUTRAL so no directional
// signal is asserted under ambiguity. Average confidence runs over every
// article, not just the dominant label's. The top exemplars are the single
// highest-confidence POSITIVE and NEGATIVE articles, first-wins on confidence
// ties, nil when that label never occurs.
func Aggregate(classified []domain.ClassifiedArticle) domain.AggregateResult {
	result := domain.AggregateResult{
		DominantLabel: domain.SentimentNeutral,
		Total:         len(classified),
	}
	if len(classified) == 0 {
		return result
	}

	var confidenceSum float64
	var topPositive, topNegative *domain.ClassifiedArticle
	for i := range classified {
		article := classified[i]
		confidenceSum += article.Confidence
		switch article.Label {
		case domain.SentimentPositive:
			result.Counts.Positive++
			if topPositive == nil || article.Confidence > topPositive.Confidence {
				copied := article
				topPositive = &copied
			}
		case domain.SentimentNegative:
			result.Counts.Negative++
			if topNegative == nil || article.Confidence > topNegative.Confidence {
				copied := article
				topNegative = &copied
			}
		default:
			result.Counts.Neutral++
		}
	}

	result.AverageConfidence = confidenceSum / float64(len(classified))
	result.TopPositive = topPositive
	result.TopNegative = topNegative
	result.DominantLabel = dominantLabel(result.Counts)
	return result
}

func dominantLabel(counts domain.SentimentCounts) domain.SentimentLabel {
	max := counts.Positive
	label := domain.SentimentPositive
	tied := false

	if counts.Negative > max {
		max = counts.Negative
		label = domain.SentimentNegative
		tied = false
	} else if counts.Negative == max {
		tied = true
	}

	if counts.Neutral > max {
		max = counts.Neutral
		label = domain.SentimentNeutral
		tied = false
	} else if counts.Neutral == max {
		tied = true
	}

	if tied {
		return domain.SentimentNeutral
	}
	return label
}
