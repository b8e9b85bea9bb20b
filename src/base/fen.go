package base

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadFEN parses the piece placement field of a FEN string. Remaining fields are ignored.
func ReadFEN(fen string) (Pieces, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty FEN")
	}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("must be 8 rows, but there are %d", len(ranks))
	}

	pieces := make(Pieces)
	for r, row := range ranks {
		rank := 8 - r
		file := 1
		for _, ch := range row {
			if file > 8 {
				return nil, fmt.Errorf("row overflow in rank %d", rank)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := ConvertPieceFromRune(ch)
			if !ok {
				return nil, fmt.Errorf("error convert piece %q", ch)
			}
			pieces[KeyOf(file, rank)] = p
			file++
		}
		if file != 9 {
			return nil, fmt.Errorf("must be 8 fields in rank %d, but there are %d", rank, file-1)
		}
	}
	return pieces, nil
}

// WriteFEN returns the piece placement field for the given pieces.
func WriteFEN(pieces Pieces) string {
	var b strings.Builder
	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := 1; file <= 8; file++ {
			p, ok := pieces[KeyOf(file, rank)]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteRune(ConvertRuneFromPiece(p))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 1 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
