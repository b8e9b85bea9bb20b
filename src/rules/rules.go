// Package rules is the chess-aware board controller: legal destinations, checks, castling,
// en passant and promotion come from github.com/notnil/chess.
package rules

import (
	"evilground/src/base"
	"evilground/src/ground"
	"evilground/src/logx"
	"fmt"
	"math/rand"
	"strings"

	"github.com/notnil/chess"
)

type Rules struct {
	game   *chess.Game
	logger logx.Logger
}

func NewRules(l logx.Logger) *Rules {
	if l == nil {
		l = logx.NewNop()
	}
	return &Rules{game: chess.NewGame(), logger: l}
}

func (r *Rules) Load(s *ground.State, fen string) error {
	opt, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("error parse FEN: %v", err)
	}
	r.game = chess.NewGame(opt)
	s.LastMove = nil
	s.Selected = base.NoKey
	s.Premovable.Current = nil
	s.Premovable.Dests = nil
	r.sync(s)
	return nil
}

func (r *Rules) IsDraggable(s *ground.State, k base.Key) bool {
	_, ok := s.Pieces[k]
	return ok && s.Draggable.Enabled && (s.IsMovable(k) || s.IsPremovable(k))
}

func (r *Rules) SelectSquare(s *ground.State, k base.Key) {
	ground.SelectSquare(r, s, k)
	if s.Selected.IsValid() && s.IsPremovable(s.Selected) {
		s.Premovable.Dests = r.premoveDests(s.Selected)
	} else if s.Premovable.Current == nil {
		s.Premovable.Dests = nil
	}
}

func (r *Rules) UserMove(s *ground.State, orig, dest base.Key) bool {
	return ground.UserMove(s, orig, dest, r.Move)
}

func (r *Rules) Move(s *ground.State, orig, dest base.Key) bool {
	mv := findMove(r.game.ValidMoves(), orig, dest)
	if mv == nil {
		r.logger.Warnf("illegal move %v%v in %s", orig, dest, r.game.Position().String())
		return false
	}
	if err := r.game.Move(mv); err != nil {
		r.logger.Errorf("error move %v: %v", mv, err)
		return false
	}
	r.logger.Infof("move %v", mv)
	s.LastMove = &base.Move{Orig: orig, Dest: dest}
	r.sync(s)
	if mv.HasTag(chess.Check) {
		s.Check = r.kingOf(s.TurnColor)
	}
	return true
}

func (r *Rules) UnsetPremove(s *ground.State) {
	s.Premovable.Current = nil
	s.Premovable.Dests = nil
}

func (r *Rules) PlayPremove(s *ground.State) bool {
	cur := s.Premovable.Current
	if cur == nil {
		return false
	}
	r.UnsetPremove(s)
	if !s.CanMove(cur.Orig, cur.Dest) {
		r.logger.Debugf("premove %v dropped", cur)
		return false
	}
	return r.Move(s, cur.Orig, cur.Dest)
}

// RandomMove picks any legal move for the side to move.
func (r *Rules) RandomMove() (base.Move, bool) {
	moves := r.game.ValidMoves()
	if len(moves) == 0 {
		return base.Move{Orig: base.NoKey, Dest: base.NoKey}, false
	}
	mv := moves[rand.Intn(len(moves))]
	return base.Move{Orig: base.Key(mv.S1()), Dest: base.Key(mv.S2())}, true
}

// FEN of the current game, all six fields.
func (r *Rules) FEN() string {
	return r.game.FEN()
}

// Outcome is empty while the game goes on.
func (r *Rules) Outcome() string {
	if r.game.Outcome() == chess.NoOutcome {
		return ""
	}
	return fmt.Sprintf("%s (%s)", r.game.Outcome(), r.game.Method())
}

func (r *Rules) sync(s *ground.State) {
	pos := r.game.Position()
	s.Pieces = make(base.Pieces)
	for sq, p := range pos.Board().SquareMap() {
		if bp, ok := convertPiece(p); ok {
			s.Pieces[base.Key(sq)] = bp
		}
	}
	s.TurnColor = convertColor(pos.Turn())
	s.Check = base.NoKey
	s.Movable.Dests = make(map[base.Key][]base.Key)
	for _, mv := range r.game.ValidMoves() {
		orig, dest := base.Key(mv.S1()), base.Key(mv.S2())
		if !containsKey(s.Movable.Dests[orig], dest) {
			s.Movable.Dests[orig] = append(s.Movable.Dests[orig], dest)
		}
	}
}

func (r *Rules) kingOf(c base.Color) base.Key {
	for sq, p := range r.game.Position().Board().SquareMap() {
		if p.Type() == chess.King && convertColor(p.Color()) == c {
			return base.Key(sq)
		}
	}
	return base.NoKey
}

// premoveDests lists where the piece on k could go if it were its side's turn.
func (r *Rules) premoveDests(k base.Key) []base.Key {
	fields := strings.Fields(r.game.Position().String())
	if len(fields) < 4 {
		return nil
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		r.logger.Debugf("error premove position: %v", err)
		return nil
	}
	var dests []base.Key
	for _, mv := range chess.NewGame(opt).ValidMoves() {
		if base.Key(mv.S1()) == k && !containsKey(dests, base.Key(mv.S2())) {
			dests = append(dests, base.Key(mv.S2()))
		}
	}
	return dests
}

// findMove picks the valid move between two squares. Promotions go to a queen.
func findMove(moves []*chess.Move, orig, dest base.Key) *chess.Move {
	var found *chess.Move
	for _, mv := range moves {
		if base.Key(mv.S1()) != orig || base.Key(mv.S2()) != dest {
			continue
		}
		if mv.Promo() == chess.NoPieceType || mv.Promo() == chess.Queen {
			return mv
		}
		if found == nil {
			found = mv
		}
	}
	return found
}

func convertColor(c chess.Color) base.Color {
	if c == chess.Black {
		return base.Black
	}
	return base.White
}

func convertPiece(p chess.Piece) (base.Piece, bool) {
	var role base.Role
	switch p.Type() {
	case chess.King:
		role = base.King
	case chess.Queen:
		role = base.Queen
	case chess.Rook:
		role = base.Rook
	case chess.Bishop:
		role = base.Bishop
	case chess.Knight:
		role = base.Knight
	case chess.Pawn:
		role = base.Pawn
	default:
		return base.Piece{}, false
	}
	return base.Piece{Role: role, Color: convertColor(p.Color())}, true
}

func containsKey(keys []base.Key, k base.Key) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
