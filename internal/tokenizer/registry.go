package tokenizer

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"
)

// RegisteredTokenizerType is the bleve component type name under
// which the Japanese tokenizer constructor is registered. A mapping
// that wants Japanese morphological tokenization registers a custom
// tokenizer instance with "type": RegisteredTokenizerType and the
// instance under InstanceConfigKey.
const RegisteredTokenizerType = "wakeru_japanese"

// InstanceConfigKey is the config map key a mapping stores the actual
// *JapaneseAnalysisTokenizer instance under, since bleve's component
// configs are free-form map[string]interface{} values, not limited to
// strings.
const InstanceConfigKey = "wakeru_japanese_instance"

func init() {
	registry.RegisterTokenizer(RegisteredTokenizerType, tokenizerConstructor)
}

func tokenizerConstructor(config map[string]interface{}, _ *registry.Cache) (analysis.Tokenizer, error) {
	raw, ok := config[InstanceConfigKey]
	if !ok {
		return nil, fmt.Errorf("wakeru: missing %q in tokenizer config", InstanceConfigKey)
	}
	t, ok := raw.(*JapaneseAnalysisTokenizer)
	if !ok {
		return nil, fmt.Errorf("wakeru: %q is not a *JapaneseAnalysisTokenizer", InstanceConfigKey)
	}
	return t, nil
}
