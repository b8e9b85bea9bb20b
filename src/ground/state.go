package ground

import (
	"evilground/src/anim"
	"evilground/src/base"
	"time"
)

// MovableColor says which side the local user may move.
type MovableColor uint8

const (
	MovableBoth MovableColor = iota
	MovableWhite
	MovableBlack
	MovableNone
)

func (mc MovableColor) Allows(c base.Color) bool {
	switch mc {
	case MovableBoth:
		return true
	case MovableWhite:
		return c == base.White
	case MovableBlack:
		return c == base.Black
	default:
		return false
	}
}

func (mc MovableColor) String() string {
	switch mc {
	case MovableBoth:
		return "both"
	case MovableWhite:
		return "white"
	case MovableBlack:
		return "black"
	default:
		return "none"
	}
}

func MovableColorFromString(s string) MovableColor {
	switch s {
	case "white":
		return MovableWhite
	case "black":
		return MovableBlack
	case "none":
		return MovableNone
	default:
		return MovableBoth
	}
}

type Movable struct {
	Color     MovableColor
	Free      bool                    // any destination is allowed
	Dests     map[base.Key][]base.Key // legal destinations per origin
	ShowDests bool
	Dropped   *base.Move // last drag commit, exempt from the next animation plan
}

type Premovable struct {
	Enabled   bool
	ShowDests bool
	Current   *base.Move
	Dests     []base.Key
}

type Animation struct {
	Enabled  bool
	Duration time.Duration
}

type Draggable struct {
	Enabled  bool
	Distance float64 // pixels of pointer travel before a press becomes a drag
}

type Highlight struct {
	LastMove bool
	Check    bool
}

// State is the mutable board owned by one Ground.
type State struct {
	Pieces      base.Pieces
	Orientation base.Color
	TurnColor   base.Color
	Selected    base.Key
	LastMove    *base.Move
	Check       base.Key
	ViewOnly    bool
	Bounds      base.Bounds

	Movable    Movable
	Premovable Premovable
	Animation  Animation
	Draggable  Draggable
	Highlight  Highlight
}

// Config is the user-facing subset of State, loaded from the GUI config or CLI flags.
type Config struct {
	Orientation  base.Color
	ViewOnly     bool
	MovableColor MovableColor
	Free         bool
	ShowDests    bool
	Premove      bool
	Animation    bool
	Duration     time.Duration
	Draggable    bool
	DragDistance float64
	Highlight    bool
}

func DefaultConfig() Config {
	return Config{
		Orientation:  base.White,
		MovableColor: MovableBoth,
		ShowDests:    true,
		Premove:      true,
		Animation:    true,
		Duration:     200 * time.Millisecond,
		Draggable:    true,
		DragDistance: 3,
		Highlight:    true,
	}
}

func NewState(cfg Config) *State {
	return &State{
		Pieces:      make(base.Pieces),
		Orientation: cfg.Orientation,
		TurnColor:   base.White,
		Selected:    base.NoKey,
		Check:       base.NoKey,
		ViewOnly:    cfg.ViewOnly,
		Movable: Movable{
			Color:     cfg.MovableColor,
			Free:      cfg.Free,
			Dests:     make(map[base.Key][]base.Key),
			ShowDests: cfg.ShowDests,
		},
		Premovable: Premovable{Enabled: cfg.Premove, ShowDests: cfg.ShowDests},
		Animation:  Animation{Enabled: cfg.Animation, Duration: cfg.Duration},
		Draggable:  Draggable{Enabled: cfg.Draggable, Distance: cfg.DragDistance},
		Highlight:  Highlight{LastMove: cfg.Highlight, Check: cfg.Highlight},
	}
}

// CanMove reports whether orig -> dest is an allowed move for the local user right now.
func (s *State) CanMove(orig, dest base.Key) bool {
	if orig == dest || !orig.IsValid() || !dest.IsValid() {
		return false
	}
	p, ok := s.Pieces[orig]
	if !ok || p.Color != s.TurnColor || !s.Movable.Color.Allows(p.Color) {
		return false
	}
	if s.Movable.Free {
		return true
	}
	for _, d := range s.Movable.Dests[orig] {
		if d == dest {
			return true
		}
	}
	return false
}

// CanPremove reports whether orig -> dest may be queued while waiting for the opponent.
func (s *State) CanPremove(orig, dest base.Key) bool {
	if orig == dest || !s.Premovable.Enabled || !dest.IsValid() || s.Movable.Color == MovableBoth {
		return false
	}
	p, ok := s.Pieces[orig]
	return ok && p.Color != s.TurnColor && s.Movable.Color.Allows(p.Color)
}

func (s *State) IsMovable(k base.Key) bool {
	p, ok := s.Pieces[k]
	return ok && s.Movable.Color.Allows(p.Color) && p.Color == s.TurnColor
}

func (s *State) IsPremovable(k base.Key) bool {
	p, ok := s.Pieces[k]
	return ok && s.Premovable.Enabled && s.Movable.Color != MovableBoth &&
		s.Movable.Color.Allows(p.Color) && p.Color != s.TurnColor
}

// Snapshot returns what the animation planner diffs.
func (s *State) Snapshot() anim.Snapshot {
	snap := anim.Snapshot{Pieces: s.Pieces.Clone(), Orientation: s.Orientation, Bounds: s.Bounds}
	if s.Movable.Dropped != nil {
		d := *s.Movable.Dropped
		snap.Dropped = &d
	}
	return snap
}
