// Package frame runs callbacks once per display frame.
//
// Every repeating job (animation playback, drag polling, coalesced renders) is a Task queued
// with OnNextFrame. A task that wants to run again on the following frame returns true; the
// loop re-queues it instead of the task scheduling itself from inside its own body.
package frame

import "time"

type Task func(now time.Time) bool

type Scheduler interface {
	OnNextFrame(t Task)
}

// Loop is a single-threaded run queue. The host calls Frame once per display frame
// (ebiten Update, a terminal ticker, or a test).
type Loop struct {
	pending []Task
	frames  uint64
}

func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) OnNextFrame(t Task) {
	if t == nil {
		return
	}
	l.pending = append(l.pending, t)
}

// Frame runs the tasks queued before this call. Tasks queued while running wait for the next frame.
func (l *Loop) Frame(now time.Time) {
	l.frames++
	run := l.pending
	l.pending = nil
	for _, t := range run {
		if t(now) {
			l.pending = append(l.pending, t)
		}
	}
}

func (l *Loop) Pending() int {
	return len(l.pending)
}

func (l *Loop) Frames() uint64 {
	return l.frames
}
