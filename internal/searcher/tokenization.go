// Package searcher executes BM25 queries against a bleve index: plain
// query-string search delegated to bleve's query parser, and the
// language-tokenized OR search that splits a query with the same
// analyzer used at index time and unions per-token matches.
package searcher

import (
	"github.com/blevesearch/bleve/v2/analysis"
)

// TokenizationResult is the outcome of splitting a query string with a
// language's analyzer: deduplicated, order-preserving token text ready
// to build match queries from.
type TokenizationResult struct {
	// Tokens holds each distinct token's surface text, in first-seen
	// order.
	Tokens []string
}

// tokenizeWithAnalyzer runs the full analyzer chain (tokenizer plus
// every token filter, e.g. lower-casing and stemming for English) over
// queryStr, so a query is split exactly the way the same text would
// have been split at index time, then returns the unique, non-empty
// token strings in first-occurrence order. Mirrors the Rust
// tokenize_from_stream helper.
func tokenizeWithAnalyzer(analyzer *analysis.DefaultAnalyzer, queryStr string) TokenizationResult {
	stream := analyzer.Analyze([]byte(queryStr))

	seen := make(map[string]bool, len(stream))
	tokens := make([]string, 0, len(stream))

	for _, t := range stream {
		text := string(t.Term)
		if text == "" {
			continue
		}
		if seen[text] {
			continue
		}
		seen[text] = true
		tokens = append(tokens, text)
	}

	return TokenizationResult{Tokens: tokens}
}
