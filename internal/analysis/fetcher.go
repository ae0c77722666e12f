package analysis

import (
	"fmt"
	"strings"
)

// buildSearchQuery expands a company name into the disjunctive phrase query
// used for keyword search. Known non-US issuers get region-qualified variants
// so results are not crowded out by unrelated global coverage.
func buildSearchQuery(company string, regions *RegionTable) string {
	company = strings.TrimSpace(company)
	terms := []string{
		fmt.Sprintf("%q", company),
		fmt.Sprintf("%q", company+" stock"),
		fmt.Sprintf("%q", company+" shares"),
	}
	if regions != nil && regions.Matches(company) {
		terms = append(terms,
			fmt.Sprintf("%q", company+" India"),
			fmt.Sprintf("%q", company+" NSE"),
			fmt.Sprintf("%q", company+" BSE"),
		)
	}
	return strings.Join(terms, " OR ")
}
