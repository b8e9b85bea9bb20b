package base

import "fmt"

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "invalid"
	}
}

func ColorFromString(s string) (Color, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return White, fmt.Errorf("invalid color: %q", s)
	}
}

type Role uint8

const (
	Pawn Role = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

func (r Role) String() string {
	switch r {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "invalid"
	}
}

// Piece is a plain value: two pieces are the same piece when role and color match.
type Piece struct {
	Role  Role
	Color Color
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Role.String()
}

// Pieces maps occupied squares to their pieces. Absent key means empty square.
type Pieces map[Key]Piece

func (ps Pieces) Clone() Pieces {
	out := make(Pieces, len(ps))
	for k, p := range ps {
		out[k] = p
	}
	return out
}

// Mirror returns the position seen from the other side of the board.
func (ps Pieces) Mirror() Pieces {
	out := make(Pieces, len(ps))
	for k, p := range ps {
		out[k.Invert()] = p
	}
	return out
}

func (ps Pieces) Equal(other Pieces) bool {
	if len(ps) != len(other) {
		return false
	}
	for k, p := range ps {
		if q, ok := other[k]; !ok || q != p {
			return false
		}
	}
	return true
}

func ConvertPieceFromRune(r rune) (Piece, bool) {
	color := White
	if r >= 'a' && r <= 'z' {
		color = Black
		r -= 'a' - 'A'
	}
	switch r {
	case 'P':
		return Piece{Pawn, color}, true
	case 'N':
		return Piece{Knight, color}, true
	case 'B':
		return Piece{Bishop, color}, true
	case 'R':
		return Piece{Rook, color}, true
	case 'Q':
		return Piece{Queen, color}, true
	case 'K':
		return Piece{King, color}, true
	default:
		return Piece{}, false
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	var r rune
	switch p.Role {
	case Pawn:
		r = 'P'
	case Knight:
		r = 'N'
	case Bishop:
		r = 'B'
	case Rook:
		r = 'R'
	case Queen:
		r = 'Q'
	case King:
		r = 'K'
	default:
		return '.'
	}
	if p.Color == Black {
		r += 'a' - 'A'
	}
	return r
}

// Move is an ordered pair of squares (last move, premove, dropped piece).
type Move struct {
	Orig Key
	Dest Key
}

func (m Move) String() string {
	return m.Orig.String() + m.Dest.String()
}

func (m Move) Contains(k Key) bool {
	return m.Orig == k || m.Dest == k
}

func ParseMove(s string) (Move, error) {
	if len(s) < 4 {
		return Move{NoKey, NoKey}, fmt.Errorf("invalid move: %q", s)
	}
	orig, err := ParseKey(s[:2])
	if err != nil {
		return Move{NoKey, NoKey}, err
	}
	dest, err := ParseKey(s[2:4])
	if err != nil {
		return Move{NoKey, NoKey}, err
	}
	return Move{orig, dest}, nil
}
