package tokenizer

import "testing"

func TestShouldIndexFeature(t *testing.T) {
	tests := []struct {
		name    string
		feature string
		want    bool
	}{
		{"particle excluded", "助詞,格助詞,一般,*,*,*,*,が,ガ,ガ", false},
		{"auxiliary verb excluded", "助動詞,*,*,*,特殊・タ,基本形,た,タ,タ", false},
		{"symbol excluded", "記号,一般,*,*,*,*,*,・,・,・", false},
		{"filler excluded", "フィラー,*,*,*,*,*,えーと,エート,エート", false},
		{"interjection excluded", "感動詞,*,*,*,*,*,はい,ハイ,ハイ", false},
		{"conjunction excluded", "接続詞,*,*,*,*,*,しかし,シカシ,シカシ", false},
		{"prefix excluded", "接頭詞,名詞接続,*,*,*,*,お,オ,オ", false},
		{"adnominal adjective excluded", "連体詞,*,*,*,*,*,この,コノ,コノ", false},
		{"common noun included", "名詞,一般,*,*,*,*,東京,トウキョウ,トーキョー", true},
		{"pronoun excluded", "名詞,代名詞,一般,*,*,*,彼,カレ,カレ", false},
		{"non-independent noun excluded", "名詞,非自立,一般,*,*,*,こと,コト,コト", false},
		{"place-name suffix noun included", "接尾辞,名詞的,一般,*,*,*,駅,エキ,エキ", true},
		{"verb included", "動詞,自立,*,*,五段・カ行イ音便,基本形,行く,イク,イク", true},
		{"adjective included", "形容詞,自立,*,*,形容詞・アウオ段,基本形,高い,タカイ,タカイ", true},
		{"na-adjective stem included", "形状詞,一般,*,*,*,*,綺麗,キレイ,キレイ", true},
		{"general adverb included", "副詞,一般,*,*,*,*,とても,トテモ,トテモ", true},
		{"non-general adverb excluded", "副詞,助詞類接続,*,*,*,*,こう,コウ,コウ", false},
		{"unknown category excluded", "未知語,*,*,*,*,*,*,*,*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldIndexFeature(tt.feature); got != tt.want {
				t.Errorf("ShouldIndexFeature(%q) = %v, want %v", tt.feature, got, tt.want)
			}
		})
	}
}
