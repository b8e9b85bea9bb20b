package anim

import (
	"evilground/src/base"
	"evilground/src/frame"
	"time"

	. "gopkg.in/check.v1"
)

type translation struct {
	key base.Key
	v   base.Vector
}

type fakePainter struct {
	renders    int
	translates []translation
}

func (p *fakePainter) Render() { p.renders++ }

func (p *fakePainter) Translate(k base.Key, v base.Vector) {
	p.translates = append(p.translates, translation{k, v})
}

func (p *fakePainter) last(k base.Key) (base.Vector, bool) {
	for i := len(p.translates) - 1; i >= 0; i-- {
		if p.translates[i].key == k {
			return p.translates[i].v, true
		}
	}
	return base.Vector{}, false
}

type DriverSuite struct {
	painter *fakePainter
	loop    *frame.Loop
	clock   time.Time
	driver  *Driver
}

var _ = Suite(&DriverSuite{})

func (s *DriverSuite) SetUpTest(c *C) {
	s.painter = &fakePainter{}
	s.loop = frame.NewLoop()
	s.clock = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.driver = NewDriver(s.painter, s.loop, func() time.Time { return s.clock }, nil)
}

func (s *DriverSuite) frameAt(d time.Duration) {
	s.loop.Frame(s.clock.Add(d))
}

func (s *DriverSuite) TestPlaysToRest(c *C) {
	e4 := key("e4")
	s.driver.Start(Plan{Anims: map[base.Key]base.Vector{e4: {X: 0, Y: 200}}}, 200*time.Millisecond)
	c.Check(s.driver.Running(), Equals, true)
	c.Check(s.driver.Animating(e4), Equals, true)
	c.Check(s.loop.Pending(), Equals, 1)

	expected := []float64{200, 187.5, 100, 12.5}
	prev := 1e9
	for i, want := range expected {
		s.frameAt(time.Duration(i) * 50 * time.Millisecond)
		v, ok := s.painter.last(e4)
		c.Assert(ok, Equals, true)
		c.Check(v.Y, Equals, want, Commentf("frame %d", i))
		c.Check(v.Y <= prev, Equals, true)
		prev = v.Y
		off, ok := s.driver.Offset(e4)
		c.Check(ok, Equals, true)
		c.Check(off, Equals, v)
	}
	c.Check(s.painter.renders, Equals, 1)

	s.frameAt(200 * time.Millisecond)
	v, _ := s.painter.last(e4)
	c.Check(v, Equals, base.Vector{})
	c.Check(s.painter.renders, Equals, 2)
	c.Check(s.driver.Running(), Equals, false)
	c.Check(s.driver.Current(), IsNil)
	c.Check(s.loop.Pending(), Equals, 0)
}

func (s *DriverSuite) TestLateFrameFinishesAtOnce(c *C) {
	e4 := key("e4")
	s.driver.Start(Plan{Anims: map[base.Key]base.Vector{e4: {X: 0, Y: 200}}}, 200*time.Millisecond)
	s.frameAt(time.Second)
	c.Check(s.driver.Running(), Equals, false)
	// never animated, so nothing to reset
	c.Check(s.painter.translates, HasLen, 0)
	c.Check(s.painter.renders, Equals, 1)
}

func (s *DriverSuite) TestRoundsToTenth(c *C) {
	e4 := key("e4")
	s.driver.Start(Plan{Anims: map[base.Key]base.Vector{e4: {X: 33.333, Y: 0}}}, 100*time.Millisecond)
	s.frameAt(10 * time.Millisecond)
	v, _ := s.painter.last(e4)
	// rest is 0.9, ease(0.9) = 0.996
	c.Check(v.X, Equals, 33.2)
}

func (s *DriverSuite) TestCancelSnapsToRest(c *C) {
	e4, d5 := key("e4"), key("d5")
	s.driver.Start(Plan{
		Anims:   map[base.Key]base.Vector{e4: {X: 100, Y: 100}},
		Fadings: map[base.Key]base.Piece{d5: bPawn},
	}, 200*time.Millisecond)
	s.frameAt(0)
	c.Check(s.driver.Fadings(), DeepEquals, map[base.Key]base.Piece{d5: bPawn})

	s.driver.Cancel()
	c.Check(s.driver.Running(), Equals, false)
	c.Check(s.driver.Animating(e4), Equals, false)

	s.frameAt(50 * time.Millisecond)
	v, _ := s.painter.last(e4)
	c.Check(v, Equals, base.Vector{})
	c.Check(s.driver.Fadings(), IsNil)
	c.Check(s.painter.renders, Equals, 2)
	c.Check(s.loop.Pending(), Equals, 0)
}

func (s *DriverSuite) TestRestartFinishesPreviousRun(c *C) {
	e4, d5 := key("e4"), key("d5")
	s.driver.Start(Plan{Anims: map[base.Key]base.Vector{e4: {X: 0, Y: 200}}}, 200*time.Millisecond)
	s.frameAt(0)

	s.clock = s.clock.Add(50 * time.Millisecond)
	s.driver.Start(Plan{Anims: map[base.Key]base.Vector{d5: {X: 100, Y: 100}}}, 200*time.Millisecond)
	v, _ := s.painter.last(e4)
	c.Check(v, Equals, base.Vector{})
	c.Check(s.driver.Animating(e4), Equals, false)
	c.Check(s.driver.Animating(d5), Equals, true)
	// the tick loop is shared, not doubled
	c.Check(s.loop.Pending(), Equals, 1)

	s.frameAt(0)
	v, _ = s.painter.last(d5)
	c.Check(v, Equals, base.Vector{X: 100, Y: 100})
	// each run renders on its first frame
	c.Check(s.painter.renders, Equals, 2)
}

func (s *DriverSuite) TestFadingsOnlyPlanPlays(c *C) {
	plan := Plan{Anims: map[base.Key]base.Vector{}, Fadings: map[base.Key]base.Piece{key("e8"): wPawn}}
	c.Assert(plan.IsEmpty(), Equals, false)
	s.driver.Start(plan, 200*time.Millisecond)
	s.frameAt(0)
	c.Check(s.driver.Running(), Equals, true)
	c.Check(s.driver.Fadings(), HasLen, 1)
	s.frameAt(200 * time.Millisecond)
	c.Check(s.driver.Running(), Equals, false)
}
