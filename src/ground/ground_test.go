package ground

import (
	"bytes"
	"errors"
	"evilground/src/base"
	"evilground/src/drag"
	"evilground/src/frame"
	"evilground/src/logx"
	"strings"
	"testing"
	"time"

	. "gopkg.in/check.v1"
	"go.uber.org/zap/zapcore"
)

func Test(t *testing.T) { TestingT(t) }

type fakeSurface struct {
	renders    int
	last       *View
	translates map[base.Key]base.Vector
	missing    bool
	strict     bool // reject translates for pieces the last render did not paint
	renderErr  error
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{translates: make(map[base.Key]base.Vector)}
}

func (f *fakeSurface) Render(v *View) error {
	f.renders++
	f.last = v
	return f.renderErr
}

func (f *fakeSurface) Translate(k base.Key, v base.Vector) error {
	if f.missing {
		return ErrMissingSquare
	}
	if f.strict && !v.IsZero() && (f.last == nil || f.last.Squares[k].Piece == nil) {
		return ErrMissingSquare
	}
	f.translates[k] = v
	return nil
}

type GroundSuite struct {
	loop    *frame.Loop
	clock   time.Time
	surface *fakeSurface
	logs    *bytes.Buffer
	logger  *logx.Logx
}

var _ = Suite(&GroundSuite{})

func (s *GroundSuite) SetUpTest(c *C) {
	s.loop = frame.NewLoop()
	s.clock = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.surface = newFakeSurface()
	s.logs = &bytes.Buffer{}
	s.logger = logx.NewLogx(zapcore.DebugLevel, false, false)
	s.logger.InitLogger(s.logs)
}

func (s *GroundSuite) config() Config {
	cfg := DefaultConfig()
	cfg.Free = true
	return cfg
}

func (s *GroundSuite) newGround(cfg Config, withSurface bool) *Ground {
	opts := []Option{
		WithScheduler(s.loop),
		WithClock(func() time.Time { return s.clock }),
		WithLogger(s.logger),
	}
	if withSurface {
		opts = append(opts, WithSurface(s.surface))
	}
	g := New(cfg, nil, opts...)
	g.SetBounds(base.Bounds{Width: 800, Height: 800})
	return g
}

func (s *GroundSuite) frameAt(d time.Duration) {
	s.loop.Frame(s.clock.Add(d))
}

func key(s string) base.Key {
	k, err := base.ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func at(s string) base.Vector {
	return base.SquareToPixel(key(s), base.Bounds{Width: 800, Height: 800}, base.White).Center()
}

func (s *GroundSuite) TestHeadlessAppliesDirectly(c *C) {
	g := s.newGround(s.config(), false)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	c.Check(g.Move(key("e2"), key("e4")), Equals, true)
	c.Check(g.State().Pieces[key("e4")], Equals, base.Piece{Role: base.Pawn, Color: base.White})
	c.Check(g.State().TurnColor, Equals, base.Black)
	c.Check(g.Animating(), Equals, false)
	c.Check(s.loop.Pending(), Equals, 0)
	c.Check(g.FEN(), Equals, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")
}

func (s *GroundSuite) TestRenderRequestsCoalesce(c *C) {
	g := s.newGround(s.config(), true)
	for i := 0; i < 5; i++ {
		g.RequestRender()
	}
	c.Check(s.loop.Pending(), Equals, 1)
	s.frameAt(0)
	c.Check(s.surface.renders, Equals, 1)

	g.RequestRender()
	g.Render()
	c.Check(s.surface.renders, Equals, 2)
	s.frameAt(0)
	// the queued render was made redundant by the synchronous one
	c.Check(s.surface.renders, Equals, 2)
}

func (s *GroundSuite) TestLoadBadFEN(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	err := g.Load("rnbqkbnr/pppppppp/8/8")
	c.Check(err, NotNil)
	c.Check(g.State().Pieces, HasLen, 32)
	c.Check(strings.Contains(s.logs.String(), "error load FEN"), Equals, true)
}

func (s *GroundSuite) TestMoveAnimates(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	// every piece is new, nothing to animate
	c.Check(g.Animating(), Equals, false)
	s.frameAt(0)
	c.Check(s.surface.renders, Equals, 1)

	c.Check(g.Move(key("e2"), key("e4")), Equals, true)
	c.Check(g.Animating(), Equals, true)
	s.frameAt(0)
	c.Check(s.surface.renders, Equals, 2)
	c.Check(s.surface.translates[key("e4")], Equals, base.Vector{X: 0, Y: 200})
	c.Check(g.View().Squares[key("e4")].Piece.Offset, Equals, base.Vector{X: 0, Y: 200})

	s.frameAt(100 * time.Millisecond)
	c.Check(s.surface.translates[key("e4")], Equals, base.Vector{X: 0, Y: 100})

	s.frameAt(200 * time.Millisecond)
	c.Check(s.surface.translates[key("e4")], Equals, base.Vector{})
	c.Check(g.Animating(), Equals, false)
	c.Check(s.surface.renders, Equals, 3)
	c.Check(s.surface.last.Squares[key("e4")].Piece.Offset, Equals, base.Vector{})
	c.Check(s.surface.last.Squares[key("e4")].Flags.Has(FlagLastMove), Equals, true)
	c.Check(s.surface.last.Squares[key("e2")].Flags.Has(FlagLastMove), Equals, true)
	c.Check(s.loop.Pending(), Equals, 0)
}

func (s *GroundSuite) TestCaptureShowsFading(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load("8/8/8/3p4/4P3/8/8/8 w - - 0 1"), IsNil)
	s.frameAt(0)
	g.Move(key("e4"), key("d5"))
	s.frameAt(0)
	c.Check(s.surface.last.Fadings, DeepEquals, map[base.Key]base.Piece{
		key("d5"): {Role: base.Pawn, Color: base.Black},
	})
	s.frameAt(time.Second)
	c.Check(s.surface.last.Fadings, HasLen, 0)
}

func (s *GroundSuite) TestSkipAnimationRendersNextFrame(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	s.frameAt(0)
	g.ApplySkip(func(st *State) {
		st.Pieces[key("e4")] = st.Pieces[key("e2")]
		delete(st.Pieces, key("e2"))
	})
	c.Check(g.Animating(), Equals, false)
	s.frameAt(0)
	c.Check(s.surface.renders, Equals, 2)
	c.Check(s.surface.translates, HasLen, 0)
}

func (s *GroundSuite) TestDragDropIsNotAnimated(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	s.frameAt(0)

	g.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Press, Pos: at("e2")})
	c.Check(g.State().Selected, Equals, key("e2"))
	g.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Motion, Pos: at("e4")})
	s.frameAt(0)
	c.Check(g.Dragging(), Equals, true)

	v := g.View()
	c.Assert(v.Ghost, NotNil)
	c.Check(v.Ghost.Key, Equals, key("e2"))
	c.Check(v.Squares[key("e2")].Piece.Dragging, Equals, true)
	c.Check(v.Squares[key("e2")].Piece.Offset, Equals, base.Vector{X: 0, Y: -200})
	c.Check(v.Squares[key("e4")].Flags.Has(FlagHover), Equals, true)

	g.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Release, Pos: at("e4")})
	c.Check(g.Dragging(), Equals, false)
	c.Check(g.State().Pieces[key("e4")].Role, Equals, base.Pawn)
	c.Check(g.State().Selected, Equals, base.NoKey)
	c.Check(g.State().Movable.Dropped, IsNil)
	c.Check(g.Animating(), Equals, false)

	s.frameAt(0)
	c.Check(s.surface.last.Ghost, IsNil)
	c.Check(s.surface.last.Squares[key("e4")].Piece.Offset, Equals, base.Vector{})
}

func (s *GroundSuite) TestClickClickMoveAnimates(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	s.frameAt(0)

	g.SelectSquare(key("g1"))
	c.Check(g.State().Selected, Equals, key("g1"))
	g.SelectSquare(key("f3"))
	c.Check(g.State().Selected, Equals, base.NoKey)
	c.Check(g.Animating(), Equals, true)
	c.Check(*g.State().LastMove, Equals, base.Move{Orig: key("g1"), Dest: key("f3")})
}

func (s *GroundSuite) TestDragTakesOverAnimatingPiece(c *C) {
	g := s.newGround(s.config(), true)
	// black to move, so the knight is white's to drag once it lands
	c.Assert(g.Load("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"), IsNil)
	s.frameAt(0)

	c.Check(g.Move(key("g1"), key("f3")), Equals, true)
	s.frameAt(0)
	c.Check(s.surface.translates[key("f3")], Equals, base.Vector{X: 100, Y: 200})

	g.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Press, Pos: at("f3")})
	g.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Motion, Pos: at("f3").Add(base.Vector{X: 50})})
	s.frameAt(50 * time.Millisecond)
	c.Check(g.Dragging(), Equals, true)
	c.Check(g.Animating(), Equals, false)

	s.frameAt(60 * time.Millisecond)
	c.Check(g.Animating(), Equals, false)
	c.Check(s.surface.translates[key("f3")], Equals, base.Vector{X: 50, Y: 0})
	c.Check(s.surface.last.Squares[key("f3")].Piece.Dragging, Equals, true)
	c.Check(s.surface.last.Squares[key("f3")].Piece.Offset, Equals, base.Vector{X: 50, Y: 0})
	// only the drag update is left running
	c.Check(s.loop.Pending(), Equals, 1)
}

func (s *GroundSuite) TestRestartPaintsNewLayoutBeforeTranslating(c *C) {
	g := s.newGround(s.config(), true)
	s.surface.strict = true
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	s.frameAt(0)
	c.Check(g.Move(key("e2"), key("e4")), Equals, true)
	s.frameAt(0)
	c.Check(s.surface.renders, Equals, 2)

	c.Check(g.Move(key("e4"), key("e5")), Equals, true)
	s.frameAt(60 * time.Millisecond)
	c.Check(s.surface.renders, Equals, 3)
	c.Check(s.surface.translates[key("e5")].IsZero(), Equals, false)
	c.Check(s.logs.String(), Not(Matches), "(?s).*error translate.*")
}

func (s *GroundSuite) TestPremoveQueuedThenPlayed(c *C) {
	cfg := s.config()
	cfg.MovableColor = MovableWhite
	g := s.newGround(cfg, false)
	c.Assert(g.Load("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"), IsNil)

	g.SelectSquare(key("e2"))
	c.Check(g.State().Selected, Equals, key("e2"))
	g.SelectSquare(key("e4"))
	c.Assert(g.State().Premovable.Current, NotNil)
	c.Check(*g.State().Premovable.Current, Equals, base.Move{Orig: key("e2"), Dest: key("e4")})
	c.Check(g.State().Pieces[key("e2")].Role, Equals, base.Pawn)

	c.Check(g.Move(key("e7"), key("e5")), Equals, true)
	c.Check(g.PlayPremove(), Equals, true)
	c.Check(g.State().Premovable.Current, IsNil)
	c.Check(g.State().Pieces[key("e4")].Role, Equals, base.Pawn)
	c.Check(g.State().TurnColor, Equals, base.Black)
	c.Check(g.PlayPremove(), Equals, false)
}

func (s *GroundSuite) TestOrientationFlipAnimates(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load("8/8/8/8/8/8/4P3/8 w - - 0 1"), IsNil)
	s.frameAt(0)
	g.ToggleOrientation()
	c.Check(g.State().Orientation, Equals, base.Black)
	c.Check(g.Animating(), Equals, true)
	s.frameAt(0)
	c.Check(s.surface.translates[key("e2")], Equals, base.Vector{X: 100, Y: 500})

	// same orientation is a no-op
	g.SetOrientation(base.Black)
	c.Check(g.Animating(), Equals, true)
}

func (s *GroundSuite) TestViewOnlyIgnoresInput(c *C) {
	g := s.newGround(s.config(), true)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	g.SetViewOnly(true)
	g.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Press, Pos: at("e2")})
	c.Check(g.State().Selected, Equals, base.NoKey)
	c.Check(g.View().ViewOnly, Equals, true)
}

func (s *GroundSuite) TestMissingSquareOnResetIsQuiet(c *C) {
	g := s.newGround(s.config(), true)
	s.surface.missing = true
	g.Translate(key("e4"), base.Vector{})
	c.Check(s.logs.String(), Not(Matches), "(?s).*error translate.*")
	g.Translate(key("e4"), base.Vector{X: 1, Y: 2})
	c.Check(s.logs.String(), Matches, "(?s).*error translate e4.*missing square target.*")
}

func (s *GroundSuite) TestRenderErrorIsLogged(c *C) {
	g := s.newGround(s.config(), true)
	s.surface.renderErr = errors.New("no canvas")
	g.Render()
	c.Check(s.logs.String(), Matches, "(?s).*error render: no canvas.*")
}

func (s *GroundSuite) TestSelectionFlags(c *C) {
	cfg := s.config()
	cfg.Free = false
	g := s.newGround(cfg, false)
	c.Assert(g.Load(base.FEN_START_GAME), IsNil)
	g.State().Movable.Dests = map[base.Key][]base.Key{key("g1"): {key("f3"), key("h3")}}
	g.SelectSquare(key("g1"))
	v := g.View()
	c.Check(v.Squares[key("g1")].Flags.Has(FlagSelected), Equals, true)
	c.Check(v.Squares[key("g1")].Flags.Has(FlagOccupied), Equals, true)
	c.Check(v.Squares[key("f3")].Flags.Has(FlagMoveDest), Equals, true)
	c.Check(v.Squares[key("h3")].Flags.Has(FlagMoveDest), Equals, true)
	c.Check(v.Squares[key("e3")].Flags.Has(FlagMoveDest), Equals, false)

	// not a legal destination, selection moves or clears
	g.SelectSquare(key("g3"))
	c.Check(g.State().Selected, Equals, base.NoKey)
	c.Check(g.State().Pieces[key("g1")].Role, Equals, base.Knight)
}
