package parser

import (
	"reflect"
	"testing"

	"github.com/borrowdev/borrow/internal/template/model"
)

func values(kv ...string) model.Values {
	v := make(model.Values)
	for i := 0; i+1 < len(kv); i += 2 {
		v[kv[i]] = model.PlaceholderValue{Key: kv[i], Value: kv[i+1]}
	}
	return v
}

func TestSubstituter_Replace(t *testing.T) {
	tests := []struct {
		name   string
		values model.Values
		line   string
		want   string
	}{
		{"single token", values("NAME", "Alice"), "Hello, %%(NAME)%%!", "Hello, Alice!"},
		{"repeated token", values("X", "1"), "%%(X)%%+%%(X)%%", "1+1"},
		{"multiple keys", values("A", "a", "B", "b"), "%%(A)%%-%%(B)%%", "a-b"},
		{"unknown key untouched", values("A", "a"), "%%(B)%%", "%%(B)%%"},
		{"case sensitive", values("name", "x"), "%%(NAME)%%", "%%(NAME)%%"},
		{"value not re-expanded", values("A", "%%(B)%%", "B", "b"), "%%(A)%%", "%%(B)%%"},
		{"no tokens", values("A", "a"), "plain text", "plain text"},
		{"empty values", model.Values{}, "%%(A)%%", "%%(A)%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSubstituter(tt.values).Replace(tt.line)
			if got != tt.want {
				t.Errorf("Replace(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"no tokens", nil},
		{"%%(A)%% and %%(B)%%", []string{"A", "B"}},
		{"unterminated %%(A", nil},
		{"empty %%()%% key", nil},
	}

	for _, tt := range tests {
		if got := Tokens(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokens(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSubstituter_Unresolved(t *testing.T) {
	s := NewSubstituter(values("A", "a"))
	got := s.Unresolved("%%(A)%% %%(B)%% %%(C)%%")
	if !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Unresolved() = %v, want [B C]", got)
	}
}

func TestTokenFor(t *testing.T) {
	if got := TokenFor("NAME"); got != "%%(NAME)%%" {
		t.Errorf("TokenFor() = %q", got)
	}
}
