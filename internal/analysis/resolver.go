package analysis

import (
	"strings"

	"github.com/Shamanth-8/stocksenti/internal/provider"
)

const commonStockType = "Common Stock"

// ResolveSymbol picks a ticker from symbol-search candidates. Only common
// stock counts; among those, a symbol without an exchange-suffix separator is
// preferred as a proxy for the primary domestic listing, falling back to the
// first common stock in provider order. Returns false when no candidate
// qualifies.
func ResolveSymbol(candidates []provider.SymbolCandidate) (string, bool) {
	var fallback string
	for _, candidate := range candidates {
		if candidate.Type != commonStockType {
			continue
		}
		symbol := strings.TrimSpace(candidate.Symbol)
		if symbol == "" {
			continue
		}
		if !strings.Contains(symbol, ".") {
			return symbol, true
		}
		if fallback == "" {
			fallback = symbol
		}
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}
