// Package gos hides where the board keeps its files: the disk on desktop,
// the page origin and localStorage in the browser.
package gos

import "errors"

var ErrNotExist = errors.New("file does not exist (gos)")

// ReadFile(name) ([]byte, error)
// WriteFile(name, data) error
// IsNotExist(err) bool
