// Package wakeru provides the top-level service façade that binds
// together the dictionary, tokenizer, indexer, and searcher
// subsystems behind a single per-language API.
package wakeru

import "github.com/ternarybob/wakeru/internal/common"

// Language re-exports common.Language, the type the indexer and
// searcher packages are actually built against.
type Language = common.Language

const (
	En = common.En
	Ja = common.Ja
)

// ParseLanguage re-exports common.ParseLanguage.
func ParseLanguage(s string) (Language, error) { return common.ParseLanguage(s) }
