package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// scriptedPrompter answers prompts from fixed maps keyed by message.
type scriptedPrompter struct {
	text  map[string]string
	bools map[string]bool
	asked []string
}

func (p *scriptedPrompter) PromptText(message, defaultValue string) (string, error) {
	p.asked = append(p.asked, message)
	if v, ok := p.text[message]; ok {
		return v, nil
	}
	if defaultValue != "" {
		return defaultValue, nil
	}
	return "", fmt.Errorf("unexpected prompt: %s", message)
}

func (p *scriptedPrompter) PromptBool(message string, defaultValue bool) (bool, error) {
	p.asked = append(p.asked, message)
	if v, ok := p.bools[message]; ok {
		return v, nil
	}
	return defaultValue, nil
}

// writeTemplate creates a template source directory named name.
func writeTemplate(t *testing.T, parent, name, placeholders string, files map[string]string) string {
	t.Helper()
	root := filepath.Join(parent, name)
	if err := os.MkdirAll(filepath.Join(root, "content"), 0755); err != nil {
		t.Fatal(err)
	}
	if placeholders != "" {
		if err := os.WriteFile(filepath.Join(root, "placeholders.borrow"), []byte(placeholders), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for rel, content := range files {
		path := filepath.Join(root, "content", filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}
