package cli

import (
	"evilground/src/base"
	"fmt"
	"io"
)

// ANSI-code
const (
	reset   = "\033[0m"
	lightBg = "\033[47m"
	darkBg  = "\033[100m"
	markBg  = "\033[43m"
	fadeBg  = "\033[41m"
	whiteF  = "\033[97m"
	blackF  = "\033[30m"
	dimF    = "\033[90m"
)

type Mark uint8

const (
	MarkNone Mark = iota
	MarkMoved
	MarkFading
)

// Piece -> unicode glyph
func pieceGlyph(p base.Piece, ok bool) string {
	if !ok {
		return " "
	}
	white := map[base.Role]string{
		base.King: "♔", base.Queen: "♕", base.Rook: "♖",
		base.Bishop: "♗", base.Knight: "♘", base.Pawn: "♙",
	}
	black := map[base.Role]string{
		base.King: "♚", base.Queen: "♛", base.Rook: "♜",
		base.Bishop: "♝", base.Knight: "♞", base.Pawn: "♟",
	}
	var g string
	if p.Color == base.White {
		g = white[p.Role]
	} else {
		g = black[p.Role]
	}
	if g == "" {
		return "?"
	}
	return g
}

// PrintBoard draws the pieces as seen from orientation. Without color, pieces are
// FEN letters and marks are brackets.
func PrintBoard(w io.Writer, pieces base.Pieces, orientation base.Color, marks map[base.Key]Mark, color bool) {
	files := "   a  b  c  d  e  f  g  h"
	if orientation == base.Black {
		files = "   h  g  f  e  d  c  b  a"
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, files)
	for row := 0; row < 8; row++ {
		rank := 8 - row
		if orientation == base.Black {
			rank = row + 1
		}
		fmt.Fprintf(w, "%d ", rank)
		for col := 0; col < 8; col++ {
			file := col + 1
			if orientation == base.Black {
				file = 8 - col
			}
			k := base.KeyOf(file, rank)
			p, ok := pieces[k]
			mark := marks[k]

			if !color {
				r := " "
				if ok {
					r = string(base.ConvertRuneFromPiece(p))
				}
				switch mark {
				case MarkMoved:
					fmt.Fprintf(w, "[%s]", r)
				case MarkFading:
					fmt.Fprintf(w, "(%s)", r)
				default:
					fmt.Fprintf(w, " %s ", r)
				}
				continue
			}

			g := pieceGlyph(p, ok)
			lightSquare := (file+rank)%2 == 1
			var bg, fg string
			switch {
			case mark == MarkMoved:
				bg = markBg
			case mark == MarkFading:
				bg = fadeBg
			case lightSquare:
				bg = lightBg
			default:
				bg = darkBg
			}
			switch {
			case !ok:
				fg = dimF
			case p.Color == base.White && !lightSquare:
				fg = whiteF
			default:
				fg = blackF
			}
			fmt.Fprintf(w, "%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Fprintf(w, " %d\n", rank)
	}
	fmt.Fprintln(w, files)
	fmt.Fprintln(w)
}
