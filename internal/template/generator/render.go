package generator

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/borrowdev/borrow/internal/template/parser"
)

// RenderLines reads r line by line, substitutes tokens and writes each line
// followed by "\n" regardless of the source line terminator.
func RenderLines(r io.Reader, w io.Writer, sub *parser.Substituter) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line == "" && errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if _, werr := writer.WriteString(sub.Replace(line)); werr != nil {
			return werr
		}
		if werr := writer.WriteByte('\n'); werr != nil {
			return werr
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	return writer.Flush()
}

// renderFile renders the template file at path into memory.
func renderFile(path string, sub *parser.Substituter) ([]byte, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var unresolved []string
	for _, line := range strings.Split(string(data), "\n") {
		unresolved = append(unresolved, sub.Unresolved(line)...)
	}

	var buf bytes.Buffer
	if err := RenderLines(bytes.NewReader(data), &buf, sub); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), unresolved, nil
}
