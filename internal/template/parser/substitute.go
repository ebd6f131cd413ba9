package parser

import (
	"strings"

	"github.com/borrowdev/borrow/internal/template/model"
)

// TokenFor returns the substitution token for key.
func TokenFor(key string) string {
	return model.TokenPrefix + key + model.TokenSuffix
}

// Substituter replaces placeholder tokens with resolved values.
// It is safe for concurrent use.
type Substituter struct {
	replacer *strings.Replacer
	keys     map[string]struct{}
}

// NewSubstituter builds a Substituter for values. Every token is replaced in
// a single pass, so a value that itself looks like a token is left as is.
func NewSubstituter(values model.Values) *Substituter {
	keys := values.Keys()
	pairs := make([]string, 0, len(keys)*2)
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		pairs = append(pairs, TokenFor(k), values[k].Value)
		known[k] = struct{}{}
	}
	return &Substituter{
		replacer: strings.NewReplacer(pairs...),
		keys:     known,
	}
}

// Replace substitutes every known token in line.
func (s *Substituter) Replace(line string) string {
	return s.replacer.Replace(line)
}

// Unresolved returns the keys of tokens in line that have no value.
func (s *Substituter) Unresolved(line string) []string {
	var missing []string
	for _, key := range Tokens(line) {
		if _, ok := s.keys[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Tokens returns the keys of every %%(KEY)%% token in line, in order.
func Tokens(line string) []string {
	var keys []string
	for {
		start := strings.Index(line, model.TokenPrefix)
		if start < 0 {
			return keys
		}
		rest := line[start+len(model.TokenPrefix):]
		end := strings.Index(rest, model.TokenSuffix)
		if end < 0 {
			return keys
		}
		if key := rest[:end]; key != "" && !strings.Contains(key, model.TokenPrefix) {
			keys = append(keys, key)
		}
		line = rest[end+len(model.TokenSuffix):]
	}
}
