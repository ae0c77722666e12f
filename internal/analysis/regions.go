package analysis

import "strings"

// defaultNonUSIssuers are company names with weak coverage in NewsAPI's
// default corpus. Queries for them get region-qualified variants appended.
var defaultNonUSIssuers = []string{
	"reliance", "tcs", "infosys", "hdfc", "wipro",
	"icici", "bharti", "airtel", "sbi", "maruti", "tata",
}

// RegionTable classifies company names as known non-US issuers. The table is
// data, not code: deployments override it through configuration instead of
// editing a matching routine.
type RegionTable struct {
	names []string
}

// NewRegionTable builds a table from the given names; empty input falls back
// to the curated default list.
func NewRegionTable(names []string) *RegionTable {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, defaultNonUSIssuers...)
	}
	return &RegionTable{names: cleaned}
}

// Matches reports whether the company name contains any listed issuer name.
func (t *RegionTable) Matches(company string) bool {
	company = strings.ToLower(strings.TrimSpace(company))
	if company == "" {
		return false
	}
	for _, name := range t.names {
		if strings.Contains(company, name) {
			return true
		}
	}
	return false
}
