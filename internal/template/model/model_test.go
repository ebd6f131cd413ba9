package model

import (
	"testing"
)

func TestRemoteName(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		repo     string
		branch   string
		subdir   string
		expected string
	}{
		{"registry default branch", RegistryOwner, RegistryRepo, "v1", "react", "borrowdev-registry-v1-react"},
		{"custom branch", RegistryOwner, RegistryRepo, "main", "node/api", "borrowdev-registry-main-node/api"},
		{"empty subdir", "o", "r", "b", "", "o-r-b-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoteName(tt.owner, tt.repo, tt.branch, tt.subdir)
			if got != tt.expected {
				t.Errorf("RemoteName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRemoteSpecifier_Clone(t *testing.T) {
	spec := RemoteSpecifier{Owner: "borrowdev", Repo: "registry"}

	if got := spec.CloneURL(); got != "https://github.com/borrowdev/registry.git" {
		t.Errorf("CloneURL() = %q", got)
	}
	if got := spec.CloneBranch(); got != DefaultCloneBranch {
		t.Errorf("CloneBranch() with empty branch = %q, want %q", got, DefaultCloneBranch)
	}

	spec.Branch = "v1"
	if got := spec.CloneBranch(); got != "v1" {
		t.Errorf("CloneBranch() = %q, want v1", got)
	}
}

func TestSpecifier_SpecName(t *testing.T) {
	specs := []struct {
		spec Specifier
		want string
	}{
		{LocalSpecifier{Name: "my-template", Path: "/tmp/my-template"}, "my-template"},
		{RemoteSpecifier{Name: "borrowdev-registry-v1-react"}, "borrowdev-registry-v1-react"},
	}

	for _, s := range specs {
		if got := s.spec.SpecName(); got != s.want {
			t.Errorf("SpecName() = %q, want %q", got, s.want)
		}
	}
}

func TestPlaceholder_IsBool(t *testing.T) {
	tests := []struct {
		name        string
		placeholder Placeholder
		expected    bool
	}{
		{"true default", Placeholder{Key: "A", Default: "true", HasDefault: true}, true},
		{"false default", Placeholder{Key: "A", Default: "false", HasDefault: true}, true},
		{"capitalized is not bool", Placeholder{Key: "A", Default: "True", HasDefault: true}, false},
		{"string default", Placeholder{Key: "A", Default: "yes", HasDefault: true}, false},
		{"no default", Placeholder{Key: "A"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.placeholder.IsBool(); got != tt.expected {
				t.Errorf("IsBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCatalog_Keys(t *testing.T) {
	c := Catalog{
		"b": {Key: "b"},
		"A": {Key: "A"},
		"a": {Key: "a"},
	}

	keys := c.Keys()
	want := []string{"A", "a", "b"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestValueOf(t *testing.T) {
	p := Placeholder{Key: "NAME", Default: "Alice", HasDefault: true, Description: "Your name"}
	v := ValueOf(p, "Bob")

	if v.Key != "NAME" || v.Value != "Bob" || v.Default != "Alice" || !v.HasDefault || v.Description != "Your name" {
		t.Errorf("ValueOf() = %+v", v)
	}
}
