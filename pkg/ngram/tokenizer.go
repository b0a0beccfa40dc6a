package ngram

import (
	"regexp"
	"strings"
)

const (
	// SOSToken marks the start of a token stream.
	SOSToken = "__sos__"
	// EOSToken marks the end of a token stream. Generation stops once it
	// is emitted.
	EOSToken = "__eos__"
)

// Tokenizer is the contract for splitting raw text into an ordered token
// sequence. The model itself never tokenizes; it consumes token streams.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WhitespaceTokenizer splits text on Unicode whitespace. Its behavior can
// be customized with functional options.
type WhitespaceTokenizer struct {
	lowercase    bool
	tokenPattern *regexp.Regexp
}

// TokenizerOption configures a WhitespaceTokenizer.
type TokenizerOption func(*WhitespaceTokenizer)

// WithLowercase folds input text to lower case before splitting.
func WithLowercase() TokenizerOption {
	return func(t *WhitespaceTokenizer) {
		t.lowercase = true
	}
}

// WithTokenPattern replaces whitespace splitting with a regular expression
// whose matches become the tokens.
func WithTokenPattern(expr string) TokenizerOption {
	return func(t *WhitespaceTokenizer) {
		t.tokenPattern = regexp.MustCompile(expr)
	}
}

// NewWhitespaceTokenizer creates a tokenizer with default settings, which
// can be overridden by providing one or more TokenizerOption functions.
func NewWhitespaceTokenizer(opts ...TokenizerOption) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize splits text into tokens.
func (t *WhitespaceTokenizer) Tokenize(text string) []string {
	if t.lowercase {
		text = strings.ToLower(text)
	}
	if t.tokenPattern != nil {
		return t.tokenPattern.FindAllString(text, -1)
	}
	return strings.Fields(text)
}

// SOS returns a copy of tokens with the start sentinel prepended.
func SOS(tokens []string) []string {
	out := make([]string, 0, len(tokens)+1)
	out = append(out, SOSToken)
	return append(out, tokens...)
}

// EOS returns a copy of tokens with the end sentinel appended.
func EOS(tokens []string) []string {
	out := make([]string, 0, len(tokens)+1)
	out = append(out, tokens...)
	return append(out, EOSToken)
}

// Wrap returns a copy of tokens bracketed by both sentinels.
func Wrap(tokens []string) []string {
	out := make([]string, 0, len(tokens)+2)
	out = append(out, SOSToken)
	out = append(out, tokens...)
	return append(out, EOSToken)
}

// PadSOS left-pads tokens with start sentinels until the sequence has at
// least order entries, as a generation seed requires. A sequence that is
// already long enough comes back as an unchanged copy.
func PadSOS(tokens []string, order int) []string {
	pad := order - len(tokens)
	if pad < 0 {
		pad = 0
	}
	out := make([]string, 0, pad+len(tokens))
	for i := 0; i < pad; i++ {
		out = append(out, SOSToken)
	}
	return append(out, tokens...)
}

// StripSentinels returns tokens with all sentinel entries removed, for
// displaying generated output.
func StripSentinels(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == SOSToken || tok == EOSToken {
			continue
		}
		out = append(out, tok)
	}
	return out
}
