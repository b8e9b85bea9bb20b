package ground

import "evilground/src/base"

// The methods below let the drag machine and the animation driver work on the board.

func (g *Ground) Bounds() base.Bounds { return g.state.Bounds }
func (g *Ground) Orientation() base.Color { return g.state.Orientation }
func (g *Ground) ViewOnly() bool { return g.state.ViewOnly }
func (g *Ground) DragDistance() float64 { return g.state.Draggable.Distance }
func (g *Ground) Selected() base.Key { return g.state.Selected }
func (g *Ground) HasPremove() bool { return g.state.Premovable.Current != nil }
func (g *Ground) AnimatingAt(k base.Key) bool { return g.driver.Animating(k) }
func (g *Ground) CancelAnimation() { g.driver.Cancel() }

func (g *Ground) PieceAt(k base.Key) (base.Piece, bool) {
	p, ok := g.state.Pieces[k]
	return p, ok
}

func (g *Ground) SetSelected(k base.Key) {
	g.state.Selected = k
}

func (g *Ground) IsDraggable(k base.Key) bool {
	return g.ctrl.IsDraggable(g.state, k)
}

func (g *Ground) UnsetPremove() {
	g.ctrl.UnsetPremove(g.state)
}

func (g *Ground) SetDropped(m base.Move) {
	g.state.Movable.Dropped = &m
}

func (g *Ground) UserMove(orig, dest base.Key) {
	Mutate(g, false, func(s *State) bool {
		return g.ctrl.UserMove(s, orig, dest)
	})
}
