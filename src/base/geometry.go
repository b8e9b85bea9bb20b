package base

import (
	"fmt"
	"math"
)

// Key identifies one of the 64 squares: index (rank-1)*8 + (file-1), so a1 = 0 and h8 = 63.
type Key uint8

// NoKey marks "no square" (off board, nothing selected).
const NoKey Key = 64

var AllKeys = func() [64]Key {
	var keys [64]Key
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}()

// Pos is a board coordinate, file and rank both 1..8.
type Pos struct {
	File int
	Rank int
}

func (p Pos) IsValid() bool {
	return p.File >= 1 && p.File <= 8 && p.Rank >= 1 && p.Rank <= 8
}

func KeyOf(file, rank int) Key {
	if !(Pos{file, rank}).IsValid() {
		return NoKey
	}
	return Key((rank-1)*8 + (file - 1))
}

func (k Key) IsValid() bool {
	return k < NoKey
}

func (k Key) Pos() Pos {
	return Pos{File: int(k)%8 + 1, Rank: int(k)/8 + 1}
}

// Invert mirrors the square through the board center (a1 <-> h8).
func (k Key) Invert() Key {
	if !k.IsValid() {
		return NoKey
	}
	return 63 - k
}

func (k Key) String() string {
	if !k.IsValid() {
		return "-"
	}
	return string([]rune{rune(int(k)%8 + 'a'), rune(int(k)/8 + '1')})
}

func ParseKey(s string) (Key, error) {
	// 'a' ~ 'h' to file
	// '1' ~ '8' to rank
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoKey, fmt.Errorf("invalid square: %q", s)
	}
	return KeyOf(int(s[0]-'a')+1, int(s[1]-'0')), nil
}

func Distance(p1, p2 Pos) float64 {
	dx := float64(p1.File - p2.File)
	dy := float64(p1.Rank - p2.Rank)
	return math.Sqrt(dx*dx + dy*dy)
}

// Vector is a pixel position or displacement; y grows downwards like on screen.
type Vector struct {
	X float64
	Y float64
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(f float64) Vector {
	return Vector{v.X * f, v.Y * f}
}
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }

// Bounds is the board rectangle in pixels.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (b Bounds) SquareWidth() float64  { return b.Width / 8 }
func (b Bounds) SquareHeight() float64 { return b.Height / 8 }

func (b Bounds) Contains(p Vector) bool {
	return p.X >= b.Left && p.Y >= b.Top && p.X < b.Left+b.Width && p.Y < b.Top+b.Height
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Vector {
	return Vector{r.X + r.W/2, r.Y + r.H/2}
}

// SquareToPixel returns the square rectangle in absolute pixels for the given orientation.
func SquareToPixel(k Key, b Bounds, orientation Color) Rect {
	pos := k.Pos()
	sw, sh := b.SquareWidth(), b.SquareHeight()
	var x, y float64
	if orientation == White {
		x = float64(pos.File-1) * sw
		y = float64(8-pos.Rank) * sh
	} else {
		x = float64(8-pos.File) * sw
		y = float64(pos.Rank-1) * sh
	}
	return Rect{X: b.Left + x, Y: b.Top + y, W: sw, H: sh}
}

// PixelToSquare is the inverse of SquareToPixel; false when p is off the board.
func PixelToSquare(p Vector, b Bounds, orientation Color) (Key, bool) {
	if b.Width <= 0 || b.Height <= 0 || !b.Contains(p) {
		return NoKey, false
	}
	file := int(math.Floor(8*(p.X-b.Left)/b.Width)) + 1
	rank := 8 - int(math.Floor(8*(p.Y-b.Top)/b.Height))
	if orientation == Black {
		file = 9 - file
		rank = 9 - rank
	}
	k := KeyOf(file, rank)
	return k, k.IsValid()
}
