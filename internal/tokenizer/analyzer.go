package tokenizer

import (
	"github.com/blevesearch/bleve/v2/analysis"
)

// JapaneseAnalysisTokenizer adapts a JapaneseTokenizer to bleve's
// analysis.Tokenizer interface for use inside a custom analyzer.
// Unlike JapaneseTokenizer.Tokenize (which returns every morpheme, for
// the HTTP /wakeru inspection endpoint), this adapter drops every
// token the content-word filter rejects, so the index only ever
// stores content words.
type JapaneseAnalysisTokenizer struct {
	inner *JapaneseTokenizer
}

// NewJapaneseAnalysisTokenizer builds the bleve-facing adapter over an
// already-constructed JapaneseTokenizer.
func NewJapaneseAnalysisTokenizer(inner *JapaneseTokenizer) *JapaneseAnalysisTokenizer {
	return &JapaneseAnalysisTokenizer{inner: inner}
}

// Tokenize implements analysis.Tokenizer.
func (t *JapaneseAnalysisTokenizer) Tokenize(input []byte) analysis.TokenStream {
	text := string(input)
	morphemes := t.inner.Tokenize(text)

	stream := make(analysis.TokenStream, 0, len(morphemes))
	position := 1
	for _, m := range morphemes {
		if !m.ShouldIndex {
			continue
		}
		stream = append(stream, &analysis.Token{
			Term:     []byte(m.Surface),
			Start:    m.StartByte,
			End:      m.EndByte,
			Position: position,
			Type:     analysis.Ideo,
		})
		position++
	}
	return stream
}
