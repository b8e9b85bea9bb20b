package gclipboard

import (
	"errors"
	"strings"
)

// ReadFEN returns the first line of the clipboard.
func ReadFEN() (string, error) {
	text, err := ReadAll()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	if line = strings.TrimSpace(line); line == "" {
		return "", errors.New("clipboard is empty")
	}
	return line, nil
}
