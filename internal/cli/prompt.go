package cli

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/borrowdev/borrow/internal/app"
)

// SurveyPrompter asks for placeholder values on the terminal.
type SurveyPrompter struct {
	// opts are passed to every survey.AskOne call (tests inject stdio here).
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a terminal prompter.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// PromptText asks for free text, pre-filled with defaultValue.
func (p *SurveyPrompter) PromptText(message, defaultValue string) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result, p.opts...); err != nil {
		return "", err
	}
	return result, nil
}

// PromptBool asks a yes/no question.
func (p *SurveyPrompter) PromptBool(message string, defaultValue bool) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result, p.opts...); err != nil {
		return false, err
	}
	return result, nil
}

var _ app.Prompter = (*SurveyPrompter)(nil)
