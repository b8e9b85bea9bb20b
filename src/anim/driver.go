package anim

import (
	"evilground/src/base"
	"evilground/src/frame"
	"evilground/src/logx"
	"time"
)

// Painter is the part of the render surface the driver needs.
type Painter interface {
	// Render repaints everything from the current board state.
	Render()
	// Translate moves the piece resting on k by v pixels.
	Translate(k base.Key, v base.Vector)
}

type Anim struct {
	Origin  base.Vector // full displacement at start
	Current base.Vector // displacement for this frame
}

// Playing is the state of one running animation.
type Playing struct {
	Start    time.Time
	Duration time.Duration
	Anims    map[base.Key]*Anim
	Fadings  map[base.Key]base.Piece

	animating map[base.Key]bool // squares whose piece carries a transform
	rendered  bool
	canceled  bool
}

type Driver struct {
	painter Painter
	sched   frame.Scheduler
	now     func() time.Time
	logger  logx.Logger

	current *Playing
	looping bool
}

func NewDriver(p Painter, s frame.Scheduler, now func() time.Time, l logx.Logger) *Driver {
	if now == nil {
		now = time.Now
	}
	if l == nil {
		l = logx.NewNop()
	}
	return &Driver{painter: p, sched: s, now: now, logger: l}
}

// Start begins playing plan. A run already in flight is finished first, so transforms
// left by it never leak into the new one.
func (d *Driver) Start(plan Plan, duration time.Duration) {
	if d.current != nil {
		d.fixAfterAnimating()
	}
	run := &Playing{
		Start:     d.now(),
		Duration:  duration,
		Anims:     make(map[base.Key]*Anim, len(plan.Anims)),
		Fadings:   plan.Fadings,
		animating: make(map[base.Key]bool),
	}
	for k, v := range plan.Anims {
		run.Anims[k] = &Anim{Origin: v, Current: v}
	}
	d.current = run
	d.logger.Debugf("animation start: %d moving, %d fading, %v", len(run.Anims), len(run.Fadings), duration)

	if !d.looping {
		d.looping = true
		d.sched.OnNextFrame(d.Tick)
	}
}

// Tick advances the current run; it returns true while there is more to play.
func (d *Driver) Tick(now time.Time) bool {
	run := d.current
	if run == nil {
		d.looping = false
		return false
	}
	if run.canceled {
		d.logger.Debug("animation canceled")
		d.finish()
		return false
	}

	rest := 1 - float64(now.Sub(run.Start))/float64(run.Duration)
	if run.Duration <= 0 || rest <= 0 {
		d.logger.Debug("animation done")
		d.finish()
		return false
	}
	if rest > 1 {
		rest = 1
	}

	// render once to have all pieces there
	if !run.rendered {
		run.rendered = true
		d.painter.Render()
	}
	ease := EaseInOutCubic(rest)
	for k, a := range run.Anims {
		a.Current = base.Vector{
			X: roundBy(a.Origin.X*ease, 10),
			Y: roundBy(a.Origin.Y*ease, 10),
		}
		d.painter.Translate(k, a.Current)
		run.animating[k] = true
	}
	return true
}

// Cancel makes the next tick snap every piece to rest.
func (d *Driver) Cancel() {
	if d.current != nil {
		d.current.canceled = true
	}
}

func (d *Driver) Running() bool {
	return d.current != nil && !d.current.canceled
}

// Animating reports whether the piece on k is being moved by the running animation.
func (d *Driver) Animating(k base.Key) bool {
	if !d.Running() {
		return false
	}
	_, ok := d.current.Anims[k]
	return ok
}

// Offset returns the current transient displacement of the piece on k.
func (d *Driver) Offset(k base.Key) (base.Vector, bool) {
	if d.current == nil {
		return base.Vector{}, false
	}
	a, ok := d.current.Anims[k]
	if !ok {
		return base.Vector{}, false
	}
	return a.Current, true
}

func (d *Driver) Fadings() map[base.Key]base.Piece {
	if d.current == nil {
		return nil
	}
	return d.current.Fadings
}

func (d *Driver) Current() *Playing {
	return d.current
}

func (d *Driver) finish() {
	d.fixAfterAnimating()
	d.looping = false
	d.painter.Render()
}

func (d *Driver) fixAfterAnimating() {
	if d.current != nil {
		for k := range d.current.animating {
			d.painter.Translate(k, base.Vector{})
		}
	}
	d.current = nil
}
