package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wakeru/internal/tokenizer"
)

func TestToTokenDto(t *testing.T) {
	tests := []struct {
		name string
		tok  tokenizer.Token
		want TokenDto
	}{
		{
			name: "full feature string",
			tok: tokenizer.Token{
				Surface: "東京", Feature: "名詞,固有名詞,地域,一般,*,*,東京,トウキョウ,トーキョー",
				StartByte: 0, EndByte: 6, ShouldIndex: true,
			},
			want: TokenDto{
				Surface: "東京", Feature: "名詞,固有名詞,地域,一般,*,*,東京,トウキョウ,トーキョー",
				Pos: "名詞", PosDetail1: "固有名詞", PosDetail2: "地域", PosDetail3: "一般",
				Lemma: "東京", Reading: "トウキョウ", Pronunciation: "トーキョー",
				StartByte: 0, EndByte: 6, ShouldIndex: true,
			},
		},
		{
			name: "placeholder fields are omitted",
			tok: tokenizer.Token{
				Surface: "えーと", Feature: "フィラー,*,*,*,*,*,えーと,エート,エート",
				StartByte: 0, EndByte: 9, ShouldIndex: false,
			},
			want: TokenDto{
				Surface: "えーと", Feature: "フィラー,*,*,*,*,*,えーと,エート,エート",
				Pos: "フィラー", PosDetail1: "", PosDetail2: "", PosDetail3: "",
				Lemma: "えーと", Reading: "エート", Pronunciation: "エート",
				StartByte: 0, EndByte: 9, ShouldIndex: false,
			},
		},
		{
			name: "feature shorter than pronunciation position",
			tok: tokenizer.Token{
				Surface: "A", Feature: "名詞,一般", StartByte: 0, EndByte: 1, ShouldIndex: true,
			},
			want: TokenDto{
				Surface: "A", Feature: "名詞,一般", Pos: "名詞", PosDetail1: "一般",
				StartByte: 0, EndByte: 1, ShouldIndex: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toTokenDto(tt.tok))
		})
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	HealthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
}

func TestTokenizeRejectsNonPost(t *testing.T) {
	h := NewWakeruHandler(nil, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/wakeru", nil)
	rec := httptest.NewRecorder()

	h.Tokenize(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTokenizeRejectsMalformedJSON(t *testing.T) {
	h := NewWakeruHandler(nil, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/wakeru", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Tokenize(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body.Error.Code)
}

func TestTokenizeRejectsTextTooLong(t *testing.T) {
	h := NewWakeruHandler(nil, arbor.NewLogger())

	longText := strings.Repeat("a", MaxTextLength+1)
	payload, err := json.Marshal(tokenizeRequest{Text: longText})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/wakeru", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.Tokenize(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "text_too_long", body.Error.Code)
}
