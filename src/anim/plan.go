package anim

import (
	"evilground/src/base"
	"sort"
)

// Snapshot is the part of the board state the planner diffs.
type Snapshot struct {
	Pieces      base.Pieces
	Orientation base.Color
	Bounds      base.Bounds
	// Dropped is the move just committed by a drag; the dragged piece is already where
	// the user let it go, so neither of its squares is animated.
	Dropped *base.Move
}

func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Pieces: s.Pieces.Clone(), Orientation: s.Orientation, Bounds: s.Bounds}
	if s.Dropped != nil {
		d := *s.Dropped
		out.Dropped = &d
	}
	return out
}

// Plan holds full displacements keyed by destination square, and captured pieces keyed by
// the square they vanished from.
type Plan struct {
	Anims   map[base.Key]base.Vector
	Fadings map[base.Key]base.Piece
}

func (p Plan) IsEmpty() bool {
	return len(p.Anims) == 0 && len(p.Fadings) == 0
}

type planPiece struct {
	key   base.Key
	pos   base.Pos
	piece base.Piece
}

func makePiece(k base.Key, p base.Piece, invert bool) planPiece {
	if invert {
		k = k.Invert()
	}
	return planPiece{key: k, pos: k.Pos(), piece: p}
}

// closer returns the candidate nearest to p. Ties keep candidate order, so the first
// missing piece in board order wins.
func closer(p planPiece, candidates []planPiece) (planPiece, bool) {
	if len(candidates) == 0 {
		return planPiece{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return base.Distance(p.pos, candidates[i].pos) < base.Distance(p.pos, candidates[j].pos)
	})
	return candidates[0], true
}

// ComputePlan diffs two snapshots without a move list. Pieces are paired by value and
// proximity, which is a heuristic: two identical pieces moving at once may be swapped.
// That only affects how the transition looks, never the resulting position.
func ComputePlan(prev, current Snapshot) Plan {
	plan := Plan{
		Anims:   make(map[base.Key]base.Vector),
		Fadings: make(map[base.Key]base.Piece),
	}
	width := current.Bounds.SquareWidth()
	height := current.Bounds.SquareHeight()
	invert := prev.Orientation != current.Orientation
	white := current.Orientation == base.White

	prePieces := make(map[base.Key]planPiece, len(prev.Pieces))
	for k, p := range prev.Pieces {
		pp := makePiece(k, p, invert)
		prePieces[pp.key] = pp
	}

	var missings, news []planPiece
	for _, k := range base.AllKeys {
		if current.Dropped != nil && k == current.Dropped.Dest {
			continue
		}
		curP, hasCur := current.Pieces[k]
		preP, hasPre := prePieces[k]
		switch {
		case hasCur && hasPre:
			if curP != preP.piece {
				missings = append(missings, preP)
				news = append(news, makePiece(k, curP, false))
			}
		case hasCur:
			news = append(news, makePiece(k, curP, false))
		case hasPre:
			missings = append(missings, preP)
		}
	}

	animedOrigs := make(map[base.Key]bool)
	for _, newP := range news {
		var same []planPiece
		for _, m := range missings {
			if m.piece == newP.piece {
				same = append(same, m)
			}
		}
		preP, ok := closer(newP, same)
		if !ok {
			continue
		}
		orig, dest := preP.pos, newP.pos
		if !white {
			orig, dest = dest, orig
		}
		plan.Anims[newP.key] = base.Vector{
			X: float64(orig.File-dest.File) * width,
			Y: float64(dest.Rank-orig.Rank) * height,
		}
		animedOrigs[preP.key] = true
	}

	for _, m := range missings {
		if current.Dropped != nil && m.key == current.Dropped.Orig {
			continue
		}
		if !animedOrigs[m.key] {
			plan.Fadings[m.key] = m.piece
		}
	}
	return plan
}
