package model

import (
	"fmt"
	"sort"
)

// Special file and directory names used inside a cached template.
const (
	// PlaceholdersFile is the placeholder definitions file at the template cache root.
	PlaceholdersFile = "placeholders.borrow"
	// ContentDir is the subtree of the cache root that gets instantiated.
	ContentDir = "content"
	// TemplateSuffix marks files that are rendered with placeholder substitution.
	TemplateSuffix = ".template"
)

// Registry coordinates. Remote references are always resolved against this
// single hosted registry.
const (
	RegistryOwner = "borrowdev"
	RegistryRepo  = "registry"
	// DefaultRegistryBranch is used by the resolver when a reference has no @branch.
	DefaultRegistryBranch = "v1"
	// DefaultCloneBranch is used by the clone step when a remote specifier
	// carries no branch at all. It is intentionally distinct from
	// DefaultRegistryBranch.
	DefaultCloneBranch = "main"
)

// Substitution token delimiters: %%(KEY)%%.
const (
	TokenPrefix = "%%("
	TokenSuffix = ")%%"
)

// Specifier describes where a template's content comes from.
// The set of implementations is closed: LocalSpecifier and RemoteSpecifier.
type Specifier interface {
	// SpecName returns the cache key for the template.
	SpecName() string
	// String returns a human readable description.
	String() string

	isSpecifier()
}

// LocalSpecifier points at a template directory on the local filesystem.
type LocalSpecifier struct {
	// Name is the final path segment of Path.
	Name string
	// Path is the template source directory.
	Path string
}

// SpecName returns the cache key.
func (s LocalSpecifier) SpecName() string { return s.Name }

func (s LocalSpecifier) String() string {
	return fmt.Sprintf("local:%s", s.Path)
}

func (LocalSpecifier) isSpecifier() {}

// RemoteSpecifier points at a subdirectory of a git repository hosted on GitHub.
type RemoteSpecifier struct {
	// Name is the composite cache key "{owner}-{repo}-{branch}-{subdir}".
	Name string
	// Owner is the repository owner.
	Owner string
	// Repo is the repository name.
	Repo string
	// Branch is the branch to clone. Empty means DefaultCloneBranch.
	Branch string
	// Subdir is the template directory inside the repository (optional).
	Subdir string
}

// SpecName returns the cache key.
func (s RemoteSpecifier) SpecName() string { return s.Name }

func (s RemoteSpecifier) String() string {
	out := fmt.Sprintf("github.com/%s/%s", s.Owner, s.Repo)
	if s.Subdir != "" {
		out += "/" + s.Subdir
	}
	if s.Branch != "" {
		out += "@" + s.Branch
	}
	return out
}

// CloneURL returns the https clone URL of the repository.
func (s RemoteSpecifier) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", s.Owner, s.Repo)
}

// CloneBranch returns the branch to clone, falling back to DefaultCloneBranch.
func (s RemoteSpecifier) CloneBranch() string {
	if s.Branch == "" {
		return DefaultCloneBranch
	}
	return s.Branch
}

func (RemoteSpecifier) isSpecifier() {}

// RemoteName builds the composite cache key of a remote template.
func RemoteName(owner, repo, branch, subdir string) string {
	return fmt.Sprintf("%s-%s-%s-%s", owner, repo, branch, subdir)
}

// Placeholder is one definition from a placeholders file.
type Placeholder struct {
	// Key is the case-sensitive placeholder name.
	Key string
	// Default is the default value. Only meaningful when HasDefault is set.
	Default string
	// HasDefault distinguishes "KEY=" (empty default) from "KEY" (no default).
	HasDefault bool
	// Description is shown when prompting. Empty means none.
	Description string
}

// IsBool reports whether the placeholder should be asked as a yes/no question.
func (p Placeholder) IsBool() bool {
	return p.HasDefault && (p.Default == "true" || p.Default == "false")
}

// Catalog maps placeholder keys to their definitions.
type Catalog map[string]Placeholder

// Keys returns the catalog keys in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PlaceholderValue is the resolved value for a placeholder.
type PlaceholderValue struct {
	Key         string
	Value       string
	Default     string
	HasDefault  bool
	Description string
}

// Values maps placeholder keys to resolved values for one installation.
type Values map[string]PlaceholderValue

// Keys returns the value keys in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValueOf builds a PlaceholderValue from a definition and the chosen value.
func ValueOf(p Placeholder, value string) PlaceholderValue {
	return PlaceholderValue{
		Key:         p.Key,
		Value:       value,
		Default:     p.Default,
		HasDefault:  p.HasDefault,
		Description: p.Description,
	}
}
