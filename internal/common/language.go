package common

import "fmt"

// Language is a supported document/query language. The zero value is
// not a valid language; always construct one via ParseLanguage or the
// En/Ja constants.
//
// Language lives in internal/common, not internal/wakeru, so that
// internal/indexer and internal/searcher can depend on it without
// importing the service façade package that in turn depends on them;
// internal/wakeru re-exports it as wakeru.Language for callers of the
// public API.
type Language string

const (
	En Language = "en"
	Ja Language = "ja"
)

// String implements fmt.Stringer.
func (l Language) String() string { return string(l) }

// ParseLanguage parses a language code, accepting the canonical
// lowercase form only (languages are config values, not free text).
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "en":
		return En, nil
	case "ja":
		return Ja, nil
	default:
		return "", fmt.Errorf("unknown language %q (want \"en\" or \"ja\")", s)
	}
}
