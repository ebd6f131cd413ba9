// Package parser reads placeholder definitions files and substitutes
// %%(KEY)%% tokens in template lines.
package parser

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/model"
)

// DescriptionSeparator separates a definition from its description.
const DescriptionSeparator = " - "

const maxLineSize = 1024 * 1024

// ParseDefinitions reads placeholder definitions, one per line:
//
//	KEY[=DEFAULT][ - DESCRIPTION]
//
// Blank lines are ignored. A description is only taken when the separator
// occurs exactly once on the line. When a key is defined twice the last
// definition wins.
func ParseDefinitions(r io.Reader) (model.Catalog, error) {
	logger := logging.Logger("parser")
	catalog := make(model.Catalog)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, ok := ParseDefinition(line)
		if !ok {
			logger.Warn().Int("line", lineNo).Str("text", line).Msg("placeholder definition has an empty key, skipping")
			continue
		}
		if _, dup := catalog[p.Key]; dup {
			logger.Debug().Int("line", lineNo).Str("key", p.Key).Msg("duplicate placeholder, later definition wins")
		}
		catalog[p.Key] = p
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			e := newParseError(LineTooLong, "definition line too long", err)
			e.Line = lineNo + 1
			return nil, e
		}
		return nil, newParseError(ReadFailed, "failed to read placeholder definitions", err)
	}

	return catalog, nil
}

// ParseDefinitionsFile parses the definitions file at path. A missing file
// yields an empty catalog: the template simply has no placeholders.
func ParseDefinitionsFile(path string) (model.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger := logging.Logger("parser")
			logger.Debug().Str("path", path).Msg("no placeholder definitions file")
			return model.Catalog{}, nil
		}
		e := newParseError(ReadFailed, "failed to open placeholder definitions", err)
		e.File = path
		return nil, e
	}
	defer f.Close()

	catalog, err := ParseDefinitions(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}
	return catalog, nil
}

// ParseDefinition parses a single non-blank definition line. ok is false
// when the key is empty.
func ParseDefinition(line string) (p model.Placeholder, ok bool) {
	sep := strings.Index(line, DescriptionSeparator)
	if strings.Count(line, DescriptionSeparator) == 1 {
		p.Description = strings.TrimSpace(line[sep+len(DescriptionSeparator):])
	}

	eq := strings.Index(line, "=")
	switch {
	case eq < 0 || (sep >= 0 && sep < eq):
		// No default. The separator before any '=' ends the key.
		key := line
		if sep >= 0 {
			key = line[:sep]
		}
		p.Key = strings.TrimSpace(key)

	default:
		p.Key = strings.TrimSpace(line[:eq])
		value := line[eq+1:]
		if i := strings.Index(value, DescriptionSeparator); i >= 0 {
			value = value[:i]
		}
		p.Default = strings.TrimSpace(value)
		p.HasDefault = true
	}

	return p, p.Key != ""
}
