// Package tokenizer provides the Token model, the Japanese content-
// word filter, and the adapter that lets kagome's morphological
// analyzer act as a bleve analysis.Tokenizer implementation.
package tokenizer

import "strings"

// Token is one morphological unit produced by tokenizing a string.
// Surface must always equal text[StartByte:EndByte] for the text the
// token was produced from.
type Token struct {
	// Surface is the literal substring this token covers.
	Surface string
	// Feature is the raw, comma-joined morphological feature string
	// (part-of-speech and inflection info) as produced by the
	// dictionary. Empty for non-morphological tokenizers (English,
	// N-gram).
	Feature string
	// StartByte and EndByte are the byte offsets of Surface within the
	// original input.
	StartByte int
	EndByte   int
	// Position is the 0-based token position within the stream,
	// incremented once per token regardless of any gaps.
	Position int
	// ShouldIndex reports whether this token is a content word worth
	// indexing (always true for non-Japanese tokenizers).
	ShouldIndex bool
}

// ShouldIndexFeature implements the Japanese content-word filter:
// decide, from a UniDic/IPADIC feature string, whether a token
// carries enough meaning to index.
//
// Particles, auxiliary verbs, symbols, fillers, interjections,
// conjunctions, prefixes, and adnominal adjectives are always
// excluded. Nouns are included except pronouns and non-independent
// nouns. Verbs, adjectives, and na-adjective stems (keijoushi) are
// always included. Adverbs are included only when general-class.
// UniDic's suffix-as-noun category (e.g. "寺"/"駅"/"温泉" attached as
// place-name suffixes) is treated as a content word.
func ShouldIndexFeature(feature string) bool {
	switch {
	case strings.HasPrefix(feature, "助詞"),
		strings.HasPrefix(feature, "助動詞"),
		strings.HasPrefix(feature, "記号"),
		strings.HasPrefix(feature, "フィラー"),
		strings.HasPrefix(feature, "感動詞"),
		strings.HasPrefix(feature, "接続詞"),
		strings.HasPrefix(feature, "接頭詞"),
		strings.HasPrefix(feature, "連体詞"):
		return false
	}

	if strings.HasPrefix(feature, "接尾辞,名詞的") {
		return true
	}

	if strings.HasPrefix(feature, "名詞") {
		if strings.HasPrefix(feature, "名詞,代名詞") || strings.HasPrefix(feature, "名詞,非自立") {
			return false
		}
		return true
	}

	if strings.HasPrefix(feature, "動詞") || strings.HasPrefix(feature, "形容詞") {
		return true
	}

	if strings.HasPrefix(feature, "形状詞") {
		return true
	}

	if strings.HasPrefix(feature, "副詞") {
		return strings.HasPrefix(feature, "副詞,一般")
	}

	return false
}
