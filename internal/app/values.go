package app

import (
	"fmt"
	"strconv"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/model"
)

// CollectOptions configures value collection.
type CollectOptions struct {
	// Prompter asks for values not given in Provided. Required when Interactive.
	Prompter Prompter
	// Interactive enables prompting. Otherwise defaults are used.
	Interactive bool
	// Provided holds values from --var and --vars-file. They are never prompted for.
	Provided map[string]string
}

// PromptMessage returns the question shown for p.
func PromptMessage(p model.Placeholder) string {
	if p.Description != "" {
		return p.Description
	}
	return fmt.Sprintf("Enter value for placeholder '%s'", p.Key)
}

// CollectValues resolves a value for every placeholder in catalog, in key order.
//
// Provided values win. Otherwise the user is prompted when interactive, and
// the default is used when not. A placeholder with neither is an error in
// non-interactive mode. Boolean placeholders always resolve to "true" or "false".
func CollectValues(catalog model.Catalog, opts CollectOptions) (model.Values, error) {
	logger := logging.Logger("app")

	if opts.Interactive && opts.Prompter == nil {
		return nil, NewValidationError("interactive collection requires a prompter", nil)
	}

	for key := range opts.Provided {
		if _, ok := catalog[key]; !ok {
			logger.Warn().Str("key", key).Msg("value given for unknown placeholder, ignoring")
		}
	}

	values := make(model.Values, len(catalog))
	for _, key := range catalog.Keys() {
		p := catalog[key]

		value, err := resolveValue(p, opts)
		if err != nil {
			return nil, err
		}
		values[key] = model.ValueOf(p, value)
		logger.Debug().Str("key", key).Msg("placeholder resolved")
	}

	return values, nil
}

func resolveValue(p model.Placeholder, opts CollectOptions) (string, error) {
	if provided, ok := opts.Provided[p.Key]; ok {
		if !p.IsBool() {
			return provided, nil
		}
		b, err := strconv.ParseBool(provided)
		if err != nil {
			return "", NewValidationError(
				fmt.Sprintf("placeholder %s expects true or false, got %q", p.Key, provided),
				err,
			)
		}
		return strconv.FormatBool(b), nil
	}

	if !opts.Interactive {
		if p.HasDefault {
			return p.Default, nil
		}
		return "", NewVariableLoadError(
			fmt.Sprintf("no value for placeholder %s (pass --var %s=VALUE)", p.Key, p.Key),
			nil,
		)
	}

	message := PromptMessage(p)
	if p.IsBool() {
		b, err := opts.Prompter.PromptBool(message, p.Default == "true")
		if err != nil {
			return "", NewVariableLoadError(fmt.Sprintf("prompt for %s failed", p.Key), err)
		}
		return strconv.FormatBool(b), nil
	}

	value, err := opts.Prompter.PromptText(message, p.Default)
	if err != nil {
		return "", NewVariableLoadError(fmt.Sprintf("prompt for %s failed", p.Key), err)
	}
	return value, nil
}
