package tui

import (
	"evilground/src/base"
	"evilground/src/drag"
	"evilground/src/frame"
	"evilground/src/ground"
	"evilground/src/logx"
	"evilground/src/rules"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond

type TUIProcessing struct {
	screen  tcell.Screen
	ground  *ground.Ground
	loop    *frame.Loop
	surface *Surface
	logger  logx.Logger

	mouseDown bool
}

// NewTUI builds a board on screen. The screen is initialized by Run.
func NewTUI(screen tcell.Screen, cfg ground.Config, fen string, logger logx.Logger) (*TUIProcessing, error) {
	if logger == nil {
		logger = logx.NewNop()
	}
	// a terminal cell is a big pixel
	cfg.DragDistance = 1
	loop := frame.NewLoop()
	surface := NewSurface(screen)
	g := ground.New(cfg, rules.NewRules(logger.Named("rules")),
		ground.WithScheduler(loop),
		ground.WithLogger(logger))
	g.SetBounds(BoardBounds())
	if fen == "" {
		fen = base.FEN_START_GAME
	}
	if err := g.Load(fen); err != nil {
		return nil, fmt.Errorf("error load FEN: %v", err)
	}
	g.Attach(surface)
	return &TUIProcessing{
		screen:  screen,
		ground:  g,
		loop:    loop,
		surface: surface,
		logger:  logger.Named("tui"),
	}, nil
}

func (t *TUIProcessing) Run() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("error init screen: %v", err)
	}
	defer t.screen.Fini()
	t.screen.EnableMouse()
	t.screen.Clear()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// frames run on the event goroutine, never here
				_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := t.Handle(ev); quit {
			return nil
		}
	}
}

// Handle processes one terminal event and reports whether the user asked to quit.
func (t *TUIProcessing) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		t.loop.Frame(ev.When())
		t.screen.Show()
	case *tcell.EventResize:
		t.screen.Sync()
		t.ground.Render()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape && t.ground.Dragging():
			t.ground.CancelDrag()
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return true
		case ev.Rune() == 'f':
			t.ground.ToggleOrientation()
		case ev.Rune() == 'r':
			if err := t.ground.Load(base.FEN_START_GAME); err != nil {
				t.logger.Errorf("error reset: %v", err)
			}
		}
	case *tcell.EventMouse:
		t.handleMouse(ev)
	}
	return false
}

func (t *TUIProcessing) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	// aim at the middle of the cell
	pos := base.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	btn := ev.Buttons()
	down := btn&tcell.Button1 != 0

	switch {
	case btn&(tcell.Button2|tcell.Button3) != 0 && !t.mouseDown:
		t.ground.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Press, Button: 2, Pos: pos})
	case down && !t.mouseDown:
		t.ground.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Press, Pos: pos})
	case down:
		t.ground.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Motion, Pos: pos})
	case t.mouseDown:
		t.ground.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Motion, Pos: pos})
		t.ground.HandleEvent(drag.Event{Kind: drag.Mouse, Type: drag.Release, Pos: pos})
	}
	t.mouseDown = down
}
