package tokenizer

import (
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// JapaneseTokenizer wraps a kagome morphological analyzer, producing
// byte-accurate Token values annotated with the content-word filter.
// A fresh kagome.Tokenizer is cheap to reuse concurrently (kagome's
// Tokenizer is safe for concurrent Tokenize calls), so one instance
// is shared across all callers.
type JapaneseTokenizer struct {
	inner *tokenizer.Tokenizer
}

// NewJapaneseTokenizer builds a JapaneseTokenizer over the given
// dictionary.
func NewJapaneseTokenizer(d *dict.Dict) (*JapaneseTokenizer, error) {
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &JapaneseTokenizer{inner: t}, nil
}

// Tokenize morphologically analyzes text, returning one Token per
// morpheme in surface order, each carrying byte offsets into text and
// the content-word filter decision.
func (t *JapaneseTokenizer) Tokenize(text string) []Token {
	morphemes := t.inner.Tokenize(text)
	tokens := make([]Token, 0, len(morphemes))

	for i, m := range morphemes {
		start, end := m.Position, m.Position+len(m.Surface)
		// kagome reports the byte offset into the tokenized input as
		// Position (Start/End count runes); guard against any drift by
		// re-deriving the offsets from the surface
		// text when they disagree, so the byte-range invariant always
		// holds for callers.
		if start < 0 || end > len(text) || start > end || text[start:end] != m.Surface {
			if idx := strings.Index(text[minInt(start, len(text)):], m.Surface); idx >= 0 {
				start = minInt(start, len(text)) + idx
				end = start + len(m.Surface)
			}
		}

		feature := strings.Join(m.Features(), ",")
		tokens = append(tokens, Token{
			Surface:     m.Surface,
			Feature:     feature,
			StartByte:   start,
			EndByte:     end,
			Position:    i,
			ShouldIndex: ShouldIndexFeature(feature),
		})
	}
	return tokens
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
