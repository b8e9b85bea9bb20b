package gui

import (
	"evilground/src/base"
	"evilground/src/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input turns ebiten mouse and touch state into board events, once per Update.
type Input struct {
	lastMouse base.Vector
	touches   []ebiten.TouchID
	lastTouch map[ebiten.TouchID]base.Vector
	buf       []ebiten.TouchID
}

func NewInput() *Input {
	return &Input{lastMouse: base.Vector{X: -1, Y: -1}, lastTouch: make(map[ebiten.TouchID]base.Vector)}
}

func (in *Input) Events() []drag.Event {
	var evs []drag.Event

	x, y := ebiten.CursorPosition()
	mouse := base.Vector{X: float64(x), Y: float64(y)}
	for _, btn := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight} {
		if inpututil.IsMouseButtonJustPressed(btn) {
			evs = append(evs, drag.Event{Kind: drag.Mouse, Type: drag.Press, Button: mouseButton(btn), Pos: mouse})
		}
	}
	if mouse != in.lastMouse {
		in.lastMouse = mouse
		evs = append(evs, drag.Event{Kind: drag.Mouse, Type: drag.Motion, Pos: mouse})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		evs = append(evs, drag.Event{Kind: drag.Mouse, Type: drag.Release, Pos: mouse})
	}

	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	n := len(in.touches)

	in.buf = inpututil.AppendJustPressedTouchIDs(in.buf[:0])
	for _, id := range in.buf {
		p := touchPos(ebiten.TouchPosition(id))
		in.lastTouch[id] = p
		evs = append(evs, drag.Event{Kind: drag.Touch, Type: drag.Press, Touches: n, Pos: p, Target: int(id)})
	}
	for _, id := range in.touches {
		p := touchPos(ebiten.TouchPosition(id))
		if last, ok := in.lastTouch[id]; ok && last != p {
			in.lastTouch[id] = p
			evs = append(evs, drag.Event{Kind: drag.Touch, Type: drag.Motion, Touches: n, Pos: p, Target: int(id)})
		}
	}
	in.buf = inpututil.AppendJustReleasedTouchIDs(in.buf[:0])
	for _, id := range in.buf {
		p := touchPos(inpututil.TouchPositionInPreviousTick(id))
		delete(in.lastTouch, id)
		evs = append(evs, drag.Event{Kind: drag.Touch, Type: drag.Release, Touches: n, Pos: p, Target: int(id)})
	}
	return evs
}

func mouseButton(b ebiten.MouseButton) int {
	switch b {
	case ebiten.MouseButtonLeft:
		return 0
	case ebiten.MouseButtonMiddle:
		return 1
	default:
		return 2
	}
}

func touchPos(x, y int) base.Vector {
	return base.Vector{X: float64(x), Y: float64(y)}
}
