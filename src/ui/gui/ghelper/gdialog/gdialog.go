package gdialog

import (
	"errors"
	"strings"
)

type Result struct {
	Path string // empty in the browser
	Name string
	Data []byte
}

// OpenFEN asks for a file and returns its first non-empty line.
func OpenFEN() (string, error) {
	res, err := OpenFile("Open FEN")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(res.Data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", errors.New("empty FEN file")
}
