package ground

import "evilground/src/base"

type SquareFlags uint16

const (
	FlagSelected SquareFlags = 1 << iota
	FlagCheck
	FlagLastMove
	FlagMoveDest
	FlagPremoveDest
	FlagCurrentPremove
	FlagOccupied
	FlagHover
)

func (f SquareFlags) Has(flag SquareFlags) bool {
	return f&flag != 0
}

type PieceView struct {
	Piece    base.Piece
	Offset   base.Vector // transient displacement from the resting square
	Dragging bool
}

type SquareView struct {
	Key   base.Key
	Flags SquareFlags
	Piece *PieceView // nil when empty
}

type Ghost struct {
	Key   base.Key
	Piece base.Piece
}

// View is everything a surface needs to paint one frame. Surfaces must not keep
// references into the board state; View is built fresh on every render.
type View struct {
	Orientation base.Color
	Bounds      base.Bounds
	ViewOnly    bool
	Squares     [64]SquareView
	Fadings     map[base.Key]base.Piece
	Ghost       *Ghost
}

func (g *Ground) View() *View {
	s := g.state
	v := &View{
		Orientation: s.Orientation,
		Bounds:      s.Bounds,
		ViewOnly:    s.ViewOnly,
		Fadings:     make(map[base.Key]base.Piece),
	}
	for k, p := range g.driver.Fadings() {
		v.Fadings[k] = p
	}

	cur := g.drag.Current()
	dragging := cur != nil && cur.Started
	if dragging {
		v.Ghost = &Ghost{Key: cur.Orig, Piece: cur.Piece}
	}

	var dests map[base.Key]bool
	if s.Movable.ShowDests && s.Selected.IsValid() {
		dests = make(map[base.Key]bool)
		for _, d := range s.Movable.Dests[s.Selected] {
			dests[d] = true
		}
	}
	premoveDests := make(map[base.Key]bool)
	if s.Premovable.ShowDests {
		for _, d := range s.Premovable.Dests {
			premoveDests[d] = true
		}
	}

	for _, k := range base.AllKeys {
		sv := SquareView{Key: k}
		if s.Selected == k {
			sv.Flags |= FlagSelected
		}
		if s.Highlight.Check && s.Check == k {
			sv.Flags |= FlagCheck
		}
		if s.Highlight.LastMove && s.LastMove != nil && s.LastMove.Contains(k) {
			sv.Flags |= FlagLastMove
		}
		if dests[k] {
			sv.Flags |= FlagMoveDest
		}
		if premoveDests[k] {
			sv.Flags |= FlagPremoveDest
		}
		if s.Premovable.Current != nil && s.Premovable.Current.Contains(k) {
			sv.Flags |= FlagCurrentPremove
		}
		if dragging && cur.Over == k {
			sv.Flags |= FlagHover
		}
		if p, ok := s.Pieces[k]; ok {
			sv.Flags |= FlagOccupied
			pv := &PieceView{Piece: p}
			if dragging && cur.Orig == k {
				pv.Offset = cur.Offset()
				pv.Dragging = true
			} else if off, ok := g.driver.Offset(k); ok {
				pv.Offset = off
			}
			sv.Piece = pv
		}
		v.Squares[k] = sv
	}
	return v
}
