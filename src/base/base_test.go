package base

import (
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type BaseSuite struct{}

var _ = Suite(&BaseSuite{})

func mustKey(c *C, s string) Key {
	k, err := ParseKey(s)
	c.Assert(err, IsNil)
	return k
}

func (s *BaseSuite) TestKeys(c *C) {
	c.Check(mustKey(c, "a1"), Equals, Key(0))
	c.Check(mustKey(c, "h8"), Equals, Key(63))
	c.Check(mustKey(c, "e4").Pos(), Equals, Pos{File: 5, Rank: 4})
	c.Check(KeyOf(5, 4).String(), Equals, "e4")
	c.Check(KeyOf(0, 4), Equals, NoKey)
	c.Check(NoKey.String(), Equals, "-")

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		_, err := ParseKey(bad)
		c.Check(err, NotNil, Commentf("%q", bad))
	}
}

func (s *BaseSuite) TestInvert(c *C) {
	c.Check(mustKey(c, "a1").Invert(), Equals, mustKey(c, "h8"))
	c.Check(mustKey(c, "e2").Invert(), Equals, mustKey(c, "d7"))
	for _, k := range AllKeys {
		c.Check(k.Invert().Invert(), Equals, k)
	}
	c.Check(NoKey.Invert(), Equals, NoKey)
}

func (s *BaseSuite) TestDistance(c *C) {
	c.Check(Distance(Pos{1, 1}, Pos{1, 1}), Equals, 0.0)
	c.Check(Distance(Pos{1, 1}, Pos{4, 5}), Equals, 5.0)
}

func (s *BaseSuite) TestSquareToPixel(c *C) {
	b := Bounds{Left: 10, Top: 20, Width: 800, Height: 800}
	c.Check(SquareToPixel(mustKey(c, "e2"), b, White), Equals, Rect{X: 410, Y: 620, W: 100, H: 100})
	c.Check(SquareToPixel(mustKey(c, "e2"), b, Black), Equals, Rect{X: 310, Y: 120, W: 100, H: 100})
	c.Check(SquareToPixel(mustKey(c, "a8"), b, White), Equals, Rect{X: 10, Y: 20, W: 100, H: 100})
	c.Check(SquareToPixel(mustKey(c, "a8"), b, Black), Equals, Rect{X: 710, Y: 720, W: 100, H: 100})
}

func (s *BaseSuite) TestPixelToSquareIsInverse(c *C) {
	b := Bounds{Left: 40, Top: 30, Width: 480, Height: 480}
	for _, orientation := range []Color{White, Black} {
		for _, k := range AllKeys {
			r := SquareToPixel(k, b, orientation)
			for _, p := range []Vector{r.Center(), {r.X, r.Y}, {r.X + r.W - 0.5, r.Y + r.H - 0.5}} {
				got, ok := PixelToSquare(p, b, orientation)
				c.Assert(ok, Equals, true)
				c.Assert(got, Equals, k, Commentf("%v at %v, %v", k, p, orientation))
			}
		}
	}
}

func (s *BaseSuite) TestPixelToSquareOffBoard(c *C) {
	b := Bounds{Left: 0, Top: 0, Width: 400, Height: 400}
	for _, p := range []Vector{{-1, 10}, {10, -1}, {400, 10}, {10, 400}} {
		k, ok := PixelToSquare(p, b, White)
		c.Check(ok, Equals, false)
		c.Check(k, Equals, NoKey)
	}
	_, ok := PixelToSquare(Vector{1, 1}, Bounds{}, White)
	c.Check(ok, Equals, false)
}

func (s *BaseSuite) TestMirror(c *C) {
	ps := Pieces{mustKey(c, "e2"): {Pawn, White}, mustKey(c, "g8"): {Knight, Black}}
	m := ps.Mirror()
	c.Check(m, DeepEquals, Pieces{mustKey(c, "d7"): {Pawn, White}, mustKey(c, "b1"): {Knight, Black}})
	c.Check(m.Mirror().Equal(ps), Equals, true)
}

func (s *BaseSuite) TestReadFEN(c *C) {
	ps, err := ReadFEN(FEN_START_GAME)
	c.Assert(err, IsNil)
	c.Check(ps, HasLen, 32)
	c.Check(ps[mustKey(c, "e1")], Equals, Piece{King, White})
	c.Check(ps[mustKey(c, "d8")], Equals, Piece{Queen, Black})
	c.Check(WriteFEN(ps), Equals, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")

	ps, err = ReadFEN("8/8/8/3p4/4P3/8/8/8")
	c.Assert(err, IsNil)
	c.Check(ps, DeepEquals, Pieces{mustKey(c, "d5"): {Pawn, Black}, mustKey(c, "e4"): {Pawn, White}})
}

func (s *BaseSuite) TestReadFENErrors(c *C) {
	for _, bad := range []string{
		"",
		"8/8/8/8/8/8/8",
		"8/8/8/8/8/8/8/9",
		"8/8/8/8/8/8/8/7",
		"8/8/8/8/8/8/8/ppppppppp",
		"8/8/8/8/8/8/8/7x",
	} {
		_, err := ReadFEN(bad)
		c.Check(err, NotNil, Commentf("%q", bad))
	}
}

func (s *BaseSuite) TestParseMove(c *C) {
	m, err := ParseMove("e2e4")
	c.Assert(err, IsNil)
	c.Check(m, Equals, Move{Orig: mustKey(c, "e2"), Dest: mustKey(c, "e4")})
	c.Check(m.String(), Equals, "e2e4")
	_, err = ParseMove("e2")
	c.Check(err, NotNil)
}
