package app

// Prompter asks the user for placeholder values.
type Prompter interface {
	// PromptText asks for free text. defaultValue is pre-filled when non-empty.
	PromptText(message, defaultValue string) (string, error)

	// PromptBool asks a yes/no question.
	PromptBool(message string, defaultValue bool) (bool, error)
}

// NoPrompter fails every question. New falls back to it when no Prompter
// is given, and the CLI passes it when stdin is not a terminal.
type NoPrompter struct{}

// PromptText implements Prompter.
func (NoPrompter) PromptText(message, defaultValue string) (string, error) {
	return "", NewVariableLoadError("cannot prompt in non-interactive mode: "+message, nil)
}

// PromptBool implements Prompter.
func (NoPrompter) PromptBool(message string, defaultValue bool) (bool, error) {
	return false, NewVariableLoadError("cannot prompt in non-interactive mode: "+message, nil)
}
