package ground

import (
	"errors"
	"evilground/src/anim"
	"evilground/src/base"
	"evilground/src/drag"
	"evilground/src/frame"
	"evilground/src/logx"
	"time"

	"github.com/google/uuid"
)

// ErrMissingSquare is returned by a Surface asked to paint a square it does not have.
var ErrMissingSquare = errors.New("missing square target")

// Surface paints the board. Render repaints everything from v; Translate moves one
// already painted piece and is called every frame while pieces animate or are dragged.
type Surface interface {
	Render(v *View) error
	Translate(k base.Key, offset base.Vector) error
}

// Ground is one interactive board: state, animation, drag and the render plumbing
// between them. All methods must be called from the goroutine running the frame loop.
type Ground struct {
	ID string

	state   *State
	ctrl    Controller
	surface Surface
	sched   frame.Scheduler
	driver  *anim.Driver
	drag    *drag.Machine
	logger  logx.Logger
	now     func() time.Time

	renderScheduled bool
}

type Option func(g *Ground)

func WithSurface(s Surface) Option {
	return func(g *Ground) { g.surface = s }
}

func WithScheduler(s frame.Scheduler) Option {
	return func(g *Ground) { g.sched = s }
}

func WithClock(now func() time.Time) Option {
	return func(g *Ground) { g.now = now }
}

func WithLogger(l logx.Logger) Option {
	return func(g *Ground) { g.logger = l }
}

func New(cfg Config, ctrl Controller, opts ...Option) *Ground {
	g := &Ground{
		ID:    uuid.NewString(),
		state: NewState(cfg),
		ctrl:  ctrl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.ctrl == nil {
		g.ctrl = FreeController{}
	}
	if g.sched == nil {
		g.sched = frame.NewLoop()
	}
	if g.logger == nil {
		g.logger = logx.NewNop()
	}
	g.logger = g.logger.Named("ground." + g.ID[:8])
	g.driver = anim.NewDriver(g, g.sched, g.now, g.logger)
	g.drag = drag.NewMachine(g, g.sched, g.logger)
	return g
}

func (g *Ground) State() *State {
	return g.state
}

func (g *Ground) Scheduler() frame.Scheduler {
	return g.sched
}

// Attach sets the surface; nil detaches it and makes the board headless.
func (g *Ground) Attach(s Surface) {
	g.surface = s
	g.RequestRender()
}

// Mutate applies f to the board state. Headless boards just mutate. Otherwise the change is
// animated when animation is on and skip is false, or painted on the next frame.
func Mutate[T any](g *Ground, skip bool, f func(s *State) T) T {
	if g.surface == nil {
		res := f(g.state)
		g.state.Movable.Dropped = nil
		return res
	}
	if g.state.Animation.Enabled && !skip {
		return animate(g, f)
	}
	res := f(g.state)
	g.state.Movable.Dropped = nil
	g.RequestRender()
	return res
}

func animate[T any](g *Ground, f func(s *State) T) T {
	prev := g.state.Snapshot()
	res := f(g.state)
	plan := anim.ComputePlan(prev, g.state.Snapshot())
	g.state.Movable.Dropped = nil
	if plan.IsEmpty() {
		// don't animate, just render on the next frame
		g.RequestRender()
		return res
	}
	g.driver.Start(plan, g.state.Animation.Duration)
	return res
}

func (g *Ground) Apply(f func(s *State)) {
	Mutate(g, false, func(s *State) struct{} {
		f(s)
		return struct{}{}
	})
}

func (g *Ground) ApplySkip(f func(s *State)) {
	Mutate(g, true, func(s *State) struct{} {
		f(s)
		return struct{}{}
	})
}

// Render paints synchronously and drops any render queued for the next frame.
func (g *Ground) Render() {
	g.renderScheduled = false
	if g.surface == nil {
		return
	}
	if err := g.surface.Render(g.View()); err != nil {
		g.logger.Errorf("error render: %v", err)
	}
}

// RequestRender paints once on the next frame however many times it is called before.
func (g *Ground) RequestRender() {
	if g.surface == nil || g.renderScheduled {
		return
	}
	g.renderScheduled = true
	g.sched.OnNextFrame(func(time.Time) bool {
		if g.renderScheduled {
			g.Render()
		}
		return false
	})
}

func (g *Ground) Translate(k base.Key, v base.Vector) {
	if g.surface == nil {
		return
	}
	if err := g.surface.Translate(k, v); err != nil {
		if errors.Is(err, ErrMissingSquare) && v.IsZero() {
			// resetting a piece that is already gone
			return
		}
		g.logger.Errorf("error translate %v: %v", k, err)
	}
}

// ---- API ----

func (g *Ground) Load(fen string) error {
	g.drag.Cancel()
	err := Mutate(g, false, func(s *State) error {
		return g.ctrl.Load(s, fen)
	})
	if err != nil {
		g.logger.Errorf("error load FEN %q: %v", fen, err)
		return err
	}
	g.logger.Debugf("loaded %s", fen)
	return nil
}

// Move plays a move that did not come from the local user.
func (g *Ground) Move(orig, dest base.Key) bool {
	return Mutate(g, false, func(s *State) bool {
		return g.ctrl.Move(s, orig, dest)
	})
}

func (g *Ground) SelectSquare(k base.Key) {
	g.Apply(func(s *State) {
		g.ctrl.SelectSquare(s, k)
	})
}

func (g *Ground) SetOrientation(c base.Color) {
	if g.state.Orientation == c {
		return
	}
	if g.drag.Current() != nil {
		g.drag.Cancel()
	}
	g.Apply(func(s *State) {
		s.Orientation = c
	})
}

func (g *Ground) ToggleOrientation() {
	g.SetOrientation(g.state.Orientation.Opposite())
}

func (g *Ground) PlayPremove() bool {
	return Mutate(g, false, func(s *State) bool {
		return g.ctrl.PlayPremove(s)
	})
}

func (g *Ground) SetBounds(b base.Bounds) {
	if g.state.Bounds == b {
		return
	}
	g.state.Bounds = b
	g.RequestRender()
}

func (g *Ground) SetViewOnly(v bool) {
	if v && g.drag.Current() != nil {
		g.drag.Cancel()
	}
	g.ApplySkip(func(s *State) {
		s.ViewOnly = v
	})
}

func (g *Ground) HandleEvent(e drag.Event) {
	g.drag.Handle(e)
}

func (g *Ground) CancelDrag() {
	g.drag.Cancel()
}

func (g *Ground) Dragging() bool {
	return g.drag.Dragging()
}

func (g *Ground) Animating() bool {
	return g.driver.Running()
}

func (g *Ground) FEN() string {
	return base.WriteFEN(g.state.Pieces)
}
