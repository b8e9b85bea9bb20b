// Package drag tracks one pointer or touch interaction with the board: selection on press,
// the press-to-drag threshold, live pointer tracking and commit or cancel on release.
package drag

import (
	"evilground/src/base"
	"evilground/src/frame"
	"evilground/src/logx"
	"time"
)

type InputKind uint8

const (
	Mouse InputKind = iota
	Touch
)

type EventType uint8

const (
	Press EventType = iota
	Motion
	Release
	TouchCancel
)

// Event is a normalized pointer event.
type Event struct {
	Kind    InputKind
	Type    EventType
	Button  int // mouse button, 0 is primary
	Touches int // contacts currently down
	Pos     base.Vector
	Target  int // touch id the event belongs to
}

// Host is the board the machine works on. Ground implements it.
type Host interface {
	Bounds() base.Bounds
	Orientation() base.Color
	ViewOnly() bool
	DragDistance() float64

	PieceAt(k base.Key) (base.Piece, bool)
	Selected() base.Key
	SetSelected(k base.Key)
	SelectSquare(k base.Key)
	IsDraggable(k base.Key) bool
	HasPremove() bool
	UnsetPremove()
	SetDropped(m base.Move)
	UserMove(orig, dest base.Key)

	AnimatingAt(k base.Key) bool
	CancelAnimation()

	Render()
	RequestRender()
	Translate(k base.Key, v base.Vector)
}

// Current is the state of the drag in progress.
type Current struct {
	Orig               base.Key
	Piece              base.Piece
	PreviouslySelected base.Key
	Rel                base.Vector // pointer position at press
	Epos               base.Vector // latest pointer position
	Pos                base.Vector // Epos - Rel, once started
	Dec                base.Vector // pointer minus piece center at press
	Started            bool
	Over               base.Key // square under the pointer
	prevOver           base.Key
	Kind               InputKind
	OriginTarget       int
}

// Offset is where the dragged piece is painted relative to its own square.
func (c *Current) Offset() base.Vector {
	if !c.Started {
		return base.Vector{}
	}
	return c.Pos.Add(c.Dec)
}

type Machine struct {
	host    Host
	sched   frame.Scheduler
	logger  logx.Logger
	current *Current
	pending bool
}

func NewMachine(h Host, s frame.Scheduler, l logx.Logger) *Machine {
	if l == nil {
		l = logx.NewNop()
	}
	return &Machine{host: h, sched: s, logger: l}
}

func (m *Machine) Current() *Current {
	return m.current
}

func (m *Machine) Dragging() bool {
	return m.current != nil && m.current.Started
}

func (m *Machine) Handle(e Event) {
	switch e.Type {
	case Press:
		m.Start(e)
	case Motion:
		m.Move(e)
	case Release:
		m.End(e)
	case TouchCancel:
		m.Cancel()
	}
}

func (m *Machine) Start(e Event) {
	if e.Kind == Mouse && e.Button != 0 {
		return // only touch or left click
	}
	if e.Touches > 1 {
		return // one finger touch only
	}
	if m.host.ViewOnly() {
		return
	}
	previouslySelected := m.host.Selected()
	bounds := m.host.Bounds()
	orig, ok := base.PixelToSquare(e.Pos, bounds, m.host.Orientation())
	hadPremove := m.host.HasPremove()
	m.host.SelectSquare(orig)
	stillSelected := ok && m.host.Selected() == orig
	piece, hasPiece := m.host.PieceAt(orig)

	if hasPiece && stillSelected && m.host.IsDraggable(orig) {
		center := base.SquareToPixel(orig, bounds, m.host.Orientation()).Center()
		m.current = &Current{
			Orig:               orig,
			Piece:              piece,
			PreviouslySelected: previouslySelected,
			Rel:                e.Pos,
			Epos:               e.Pos,
			Dec:                e.Pos.Sub(center),
			Over:               base.NoKey,
			prevOver:           base.NoKey,
			Kind:               e.Kind,
			OriginTarget:       e.Target,
		}
		m.logger.Debugf("drag press on %v (%v)", orig, piece)
	} else if hadPremove {
		m.host.UnsetPremove()
	}
	m.host.RequestRender()
	m.process()
}

func (m *Machine) Move(e Event) {
	if e.Touches > 1 {
		return
	}
	if m.current != nil {
		m.current.Epos = e.Pos
	}
}

func (m *Machine) End(e Event) {
	cur := m.current
	if cur == nil {
		return
	}
	// a touch release from another finger does not end this drag
	if e.Kind == Touch && cur.OriginTarget != e.Target {
		return
	}
	m.host.UnsetPremove()
	if cur.Started {
		dest := cur.Over
		switch {
		case !dest.IsValid():
			m.logger.Debugf("drag from %v dropped off board", cur.Orig)
			m.host.SetSelected(base.NoKey)
		case dest != cur.Orig:
			m.logger.Debugf("drag commit %v -> %v", cur.Orig, dest)
			m.host.SetDropped(base.Move{Orig: cur.Orig, Dest: dest})
			m.host.UserMove(cur.Orig, dest)
		}
	} else if cur.PreviouslySelected == cur.Orig {
		m.host.SetSelected(base.NoKey)
	}
	m.current = nil
	m.host.RequestRender()
}

// Cancel drops the drag in progress and clears the selection.
func (m *Machine) Cancel() {
	if m.current != nil {
		m.logger.Debugf("drag from %v canceled", m.current.Orig)
	}
	m.current = nil
	m.host.SetSelected(base.NoKey)
	m.host.RequestRender()
}

// process queues the per-frame update unless one is already queued.
func (m *Machine) process() {
	if m.pending {
		return
	}
	m.pending = true
	m.sched.OnNextFrame(m.update)
}

func (m *Machine) update(_ time.Time) bool {
	cur := m.current
	if cur == nil {
		m.pending = false
		return false
	}

	// the dragged piece wins over its own animation
	if m.host.AnimatingAt(cur.Orig) {
		m.host.CancelAnimation()
	}

	// the board changed under the drag
	if p, ok := m.host.PieceAt(cur.Orig); !ok || p != cur.Piece {
		m.Cancel()
		m.pending = false
		return false
	}

	render := false
	if !cur.Started && cur.Epos.Sub(cur.Rel).Len() >= m.host.DragDistance() {
		// render once for ghost and dragging style
		cur.Started = true
		render = true
		m.logger.Debugf("drag start from %v", cur.Orig)
	}
	if cur.Started {
		cur.Pos = cur.Epos.Sub(cur.Rel)
		over, ok := base.PixelToSquare(cur.Epos, m.host.Bounds(), m.host.Orientation())
		if !ok {
			over = base.NoKey
		}
		cur.Over = over
		if cur.Over != cur.prevOver {
			cur.prevOver = cur.Over
			render = true
		}
	}
	if render {
		m.host.Render()
	}
	if cur.Started {
		m.host.Translate(cur.Orig, cur.Offset())
	}
	return true
}
