// Package engine is the side the user plays against.
package engine

import (
	"context"
	"evilground/src/base"
	"time"
)

type SearchParams struct {
	MaxDepth  int   // 0 = unlimited (but bounded by MaxTimeMs)
	MaxTimeMs int64 // 0 = no time limits
}

type LevelAnalyze int

const (
	LevelOne LevelAnalyze = iota
	LevelTwo
	LevelThree
	LevelFour
	LevelFive
	LevelLast
)

const (
	UCIHandshakeTimeout = 2 * time.Second  // uci / isready
	UCIBestMoveTimeout  = 30 * time.Second // go ...
)

// Engine answers a position with a move for the side to move.
type Engine interface {
	Init() error
	BestMove(ctx context.Context, fen string) (base.Move, error)
	Close()
}

func LevelToParams(lvl LevelAnalyze) SearchParams {
	switch lvl {
	case LevelOne:
		return SearchParams{MaxDepth: 1, MaxTimeMs: 300}
	case LevelTwo:
		return SearchParams{MaxDepth: 3, MaxTimeMs: 600}
	case LevelThree:
		return SearchParams{MaxDepth: 5, MaxTimeMs: 1000}
	case LevelFour:
		return SearchParams{MaxDepth: 8, MaxTimeMs: 1500}
	case LevelFive:
		return SearchParams{MaxDepth: 12, MaxTimeMs: 2500}
	default:
		return SearchParams{MaxTimeMs: 5000}
	}
}

// Result carries an answer from a search goroutine back to the frame loop.
type Result struct {
	Move base.Move
	Err  error
}

// Search runs BestMove in its own goroutine so the caller's loop keeps drawing.
func Search(ctx context.Context, e Engine, fen string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		mv, err := e.BestMove(ctx, fen)
		ch <- Result{Move: mv, Err: err}
	}()
	return ch
}
