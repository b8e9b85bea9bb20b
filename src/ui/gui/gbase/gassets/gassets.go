package gassets

import (
	"bufio"
	"bytes"
	"embed"
	"evilground/src/ui/gui/gbase/gos"
	"fmt"
	"strings"
)

//go:embed assets/**
var embeddedAssets embed.FS

const PositionsFile = "assets/positions.fen"

// ReadAsset prefers a file next to the binary over the embedded copy.
func ReadAsset(path string) ([]byte, error) {
	if b, err := gos.ReadFile(path); err == nil {
		return b, nil
	}
	return embeddedAssets.ReadFile(path)
}

type Position struct {
	Name string
	FEN  string
}

// Positions reads the preset boards, one "name | FEN" per line.
func Positions() ([]Position, error) {
	data, err := ReadAsset(PositionsFile)
	if err != nil {
		return nil, fmt.Errorf("error read positions: %v", err)
	}
	return ParsePositions(data)
}

func ParsePositions(data []byte) ([]Position, error) {
	var ps []Position
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, fen, ok := strings.Cut(line, "|")
		if !ok {
			return nil, fmt.Errorf("error positions line %d: missing '|'", n)
		}
		ps = append(ps, Position{Name: strings.TrimSpace(name), FEN: strings.TrimSpace(fen)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ps, nil
}
