// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"
)

// defaultCharsPerToken approximates common BPE encodings on English and code.
const defaultCharsPerToken = 4.0

// DefaultEncoding is the BPE encoding used when none is named.
const DefaultEncoding = "cl100k_base"

// offlineLoader switches tiktoken to BPE ranks embedded in the binary.
var offlineLoader sync.Once

// Tokenizer counts model tokens for text.
type Tokenizer interface {
	CountTokens(text string) (int, error)
}

// TokenizerFunc adapts a function to Tokenizer.
type TokenizerFunc func(text string) (int, error)

// CountTokens calls fn(text).
func (fn TokenizerFunc) CountTokens(text string) (int, error) {
	return fn(text)
}

// HeuristicTokenizer estimates tokens as rune count divided by CharsPerToken, rounded up.
type HeuristicTokenizer struct {
	// CharsPerToken defaults to 4 when not positive.
	CharsPerToken float64
}

// CountTokens estimates token count for text.
func (h HeuristicTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	ratio := h.CharsPerToken
	if ratio <= 0 {
		ratio = defaultCharsPerToken
	}

	return int(math.Ceil(float64(utf8.RuneCountInString(text)) / ratio)), nil
}

// TiktokenTokenizer counts exact BPE tokens with an embedded tiktoken encoding.
type TiktokenTokenizer struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTiktokenTokenizer loads named encoding, empty name means DefaultEncoding.
// No network access is needed.
func NewTiktokenTokenizer(encoding string) (*TiktokenTokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	offlineLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
	})

	loaded, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: load encoding %q: %w", ErrTokenizerUnavailable, encoding, err)
	}

	return &TiktokenTokenizer{encoding: loaded, name: encoding}, nil
}

// Encoding returns loaded encoding name.
func (t *TiktokenTokenizer) Encoding() string {
	return t.name
}

// CountTokens encodes text, special token markers count as plain text.
func (t *TiktokenTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	return len(t.encoding.Encode(text, nil, nil)), nil
}

// DefaultTokenizer returns cl100k_base tokenizer, or HeuristicTokenizer when
// the encoding cannot be loaded.
func DefaultTokenizer(logger *slog.Logger) Tokenizer {
	tokenizer, err := NewTiktokenTokenizer(DefaultEncoding)
	if err == nil {
		return tokenizer
	}

	if logger != nil {
		logger.Warn("tiktoken unavailable, using heuristic token estimate", "error", err.Error())
	}

	return HeuristicTokenizer{}
}

// TokenComparison reports token savings of simplified schema over original JSON.
type TokenComparison struct {
	OriginalTokens   int     `json:"original_tokens" yaml:"original_tokens"`
	SimplifiedTokens int     `json:"simplified_tokens" yaml:"simplified_tokens"`
	TokensSaved      int     `json:"tokens_saved" yaml:"tokens_saved"`
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`
}

// compareTokenCounts builds comparison with percent rounded to two decimals.
func compareTokenCounts(original, simplified int) TokenComparison {
	out := TokenComparison{
		OriginalTokens:   original,
		SimplifiedTokens: simplified,
		TokensSaved:      original - simplified,
	}

	if original > 0 {
		percent := float64(original-simplified) / float64(original) * 100
		out.ReductionPercent = math.Round(percent*100) / 100
	}

	return out
}
