// Package handlers implements the HTTP façade over the tokenizer
// subsystem: a single POST endpoint that runs morphological analysis
// over a text and returns every token, filtered or not.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wakeru/internal/tokenizer"
)

// MaxTextLength bounds the "text" field of a tokenize request, beyond
// which a request is rejected with text_too_long before analysis.
const MaxTextLength = 10 * 1024 * 1024

// maxBodyBytes bounds the raw request body read, matching the
// distilled transport-level limit: reading stops at this many bytes,
// so a larger body fails JSON decoding and Tokenize answers 400
// invalid_input.
const maxBodyBytes = MaxTextLength + 4096

// WakeruHandler exposes Japanese morphological tokenization over
// HTTP.
type WakeruHandler struct {
	tokenizer *tokenizer.JapaneseTokenizer
	logger    arbor.ILogger
}

// NewWakeruHandler builds a handler over an already-loaded Japanese
// tokenizer.
func NewWakeruHandler(t *tokenizer.JapaneseTokenizer, logger arbor.ILogger) *WakeruHandler {
	return &WakeruHandler{tokenizer: t, logger: logger}
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

// TokenDto is one morphological token returned by POST /wakeru.
// Feature fields are split from the dictionary's raw, comma-joined
// feature string and omitted entirely when absent or the dictionary's
// "no value" placeholder ("*").
type TokenDto struct {
	Surface       string `json:"surface"`
	Feature       string `json:"feature"`
	Pos           string `json:"pos"`
	PosDetail1    string `json:"pos_detail1,omitempty"`
	PosDetail2    string `json:"pos_detail2,omitempty"`
	PosDetail3    string `json:"pos_detail3,omitempty"`
	Lemma         string `json:"lemma,omitempty"`
	Reading       string `json:"reading,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	StartByte     int    `json:"start_byte"`
	EndByte       int    `json:"end_byte"`
	ShouldIndex   bool   `json:"should_index"`
}

// WakeruResponse is the body of a successful POST /wakeru response.
type WakeruResponse struct {
	Tokens    []TokenDto `json:"tokens"`
	ElapsedMs int64      `json:"elapsed_ms"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Tokenize handles POST /wakeru: {"text": "..."} -> {"tokens": [...], "elapsed_ms": N}.
func (h *WakeruHandler) Tokenize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "invalid_input", "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("wakeru: rejected malformed tokenize request")
		writeError(w, http.StatusBadRequest, "invalid_input", "request body is not valid JSON")
		return
	}

	if len(req.Text) > MaxTextLength {
		writeError(w, http.StatusBadRequest, "text_too_long", "text exceeds the maximum allowed length")
		return
	}

	start := time.Now()
	morphemes := h.tokenizer.Tokenize(req.Text)
	elapsed := time.Since(start)

	tokens := make([]TokenDto, 0, len(morphemes))
	for _, m := range morphemes {
		tokens = append(tokens, toTokenDto(m))
	}

	writeJSON(w, http.StatusOK, WakeruResponse{Tokens: tokens, ElapsedMs: elapsed.Milliseconds()})
}

// toTokenDto maps a morpheme's raw feature string into the DTO's
// per-position fields, dropping the dictionary's empty-field
// placeholder "*" and treating short feature strings as if their
// trailing positions were never populated.
func toTokenDto(m tokenizer.Token) TokenDto {
	fields := strings.SplitN(m.Feature, ",", 13)
	at := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		v := fields[i]
		if v == "*" {
			return ""
		}
		return v
	}

	return TokenDto{
		Surface:       m.Surface,
		Feature:       m.Feature,
		Pos:           at(0),
		PosDetail1:    at(1),
		PosDetail2:    at(2),
		PosDetail3:    at(3),
		Lemma:         at(6),
		Reading:       at(7),
		Pronunciation: at(8),
		StartByte:     m.StartByte,
		EndByte:       m.EndByte,
		ShouldIndex:   m.ShouldIndex,
	}
}

// HealthHandler handles GET /health with the bare body "OK", not
// JSON, matching the original wakeru-api health endpoint.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
