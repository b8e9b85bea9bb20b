package ground

import (
	"evilground/src/base"
	"strings"
)

// Controller owns move legality, selection rules and premoves. Ground calls it but never
// decides by itself whether a move is allowed.
type Controller interface {
	Load(s *State, fen string) error
	IsDraggable(s *State, k base.Key) bool
	SelectSquare(s *State, k base.Key)
	// UserMove commits a move made on the board; false when nothing was played.
	UserMove(s *State, orig, dest base.Key) bool
	// Move plays a move coming from outside (opponent, server) without user checks.
	Move(s *State, orig, dest base.Key) bool
	UnsetPremove(s *State)
	PlayPremove(s *State) bool
}

// FreeController lets pieces of the movable color go anywhere. No chess rules apply.
type FreeController struct{}

func (FreeController) Load(s *State, fen string) error {
	pieces, err := base.ReadFEN(fen)
	if err != nil {
		return err
	}
	s.Pieces = pieces
	s.TurnColor = base.White
	if parts := strings.Fields(fen); len(parts) > 1 && parts[1] == "b" {
		s.TurnColor = base.Black
	}
	s.LastMove = nil
	s.Check = base.NoKey
	s.Selected = base.NoKey
	s.Premovable.Current = nil
	s.Premovable.Dests = nil
	return nil
}

func (FreeController) IsDraggable(s *State, k base.Key) bool {
	_, ok := s.Pieces[k]
	return ok && s.Draggable.Enabled && (s.IsMovable(k) || s.IsPremovable(k))
}

func (c FreeController) SelectSquare(s *State, k base.Key) {
	SelectSquare(c, s, k)
}

func (c FreeController) UserMove(s *State, orig, dest base.Key) bool {
	return UserMove(s, orig, dest, c.Move)
}

func (FreeController) Move(s *State, orig, dest base.Key) bool {
	p, ok := s.Pieces[orig]
	if !ok || orig == dest || !dest.IsValid() {
		return false
	}
	s.Pieces[dest] = p
	delete(s.Pieces, orig)
	s.LastMove = &base.Move{Orig: orig, Dest: dest}
	s.Check = base.NoKey
	s.TurnColor = s.TurnColor.Opposite()
	return true
}

func (FreeController) UnsetPremove(s *State) {
	s.Premovable.Current = nil
	s.Premovable.Dests = nil
}

func (c FreeController) PlayPremove(s *State) bool {
	cur := s.Premovable.Current
	if cur == nil {
		return false
	}
	s.Premovable.Current = nil
	if s.CanMove(cur.Orig, cur.Dest) {
		return c.Move(s, cur.Orig, cur.Dest)
	}
	return false
}

// SelectSquare is the common click logic: a second click on a destination plays the move,
// a click on an own piece selects it, anything else clears the selection.
func SelectSquare(c Controller, s *State, k base.Key) {
	if s.Selected.IsValid() && k.IsValid() {
		if s.Selected == k && !s.Draggable.Enabled {
			s.Selected = base.NoKey
			return
		}
		if s.Selected != k && c.UserMove(s, s.Selected, k) {
			return
		}
	}
	if s.IsMovable(k) || s.IsPremovable(k) {
		s.Selected = k
	} else {
		s.Selected = base.NoKey
	}
}

// UserMove applies the selection side effects of a user move around the actual move func.
func UserMove(s *State, orig, dest base.Key, move func(*State, base.Key, base.Key) bool) bool {
	switch {
	case !dest.IsValid():
		s.Selected = base.NoKey
	case s.CanMove(orig, dest):
		if move(s, orig, dest) {
			s.Selected = base.NoKey
			return true
		}
		s.Selected = base.NoKey
	case s.CanPremove(orig, dest):
		s.Premovable.Current = &base.Move{Orig: orig, Dest: dest}
		s.Selected = base.NoKey
	case s.IsMovable(dest) || s.IsPremovable(dest):
		s.Selected = dest
	default:
		s.Selected = base.NoKey
	}
	return false
}
