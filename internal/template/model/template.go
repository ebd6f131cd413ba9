package model

import "path/filepath"

// Template is a fetched template sitting in the cache.
type Template struct {
	// Spec is the specifier the template was fetched from.
	Spec Specifier
	// RootPath is the cache root holding PlaceholdersFile and ContentDir.
	RootPath string
	// Placeholders are the parsed definitions from PlaceholdersFile.
	Placeholders Catalog
}

// PlaceholdersPath returns the path of the placeholder definitions file.
func (t *Template) PlaceholdersPath() string {
	return filepath.Join(t.RootPath, PlaceholdersFile)
}

// ContentPath returns the path of the content subtree.
func (t *Template) ContentPath() string {
	return filepath.Join(t.RootPath, ContentDir)
}
