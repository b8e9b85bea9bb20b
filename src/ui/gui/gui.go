package gui

import (
	"context"
	"errors"
	"evilground/src/base"
	"evilground/src/engine"
	"evilground/src/engine/uci"
	"evilground/src/frame"
	"evilground/src/ground"
	"evilground/src/logx"
	"evilground/src/rules"
	"evilground/src/ui/gui/gbase"
	"evilground/src/ui/gui/gbase/gassets"
	"evilground/src/ui/gui/gbase/gconf"
	"evilground/src/ui/gui/ghelper"
	"evilground/src/ui/gui/ghelper/gclipboard"
	"evilground/src/ui/gui/ghelper/gdialog"
	"evilground/src/ui/gui/gstats"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// opponentDelay is how long the built-in opponent waits before answering.
const opponentDelay = 600 * time.Millisecond

type GUIProcessing struct {
	ground  *ground.Ground
	rules   *rules.Rules
	loop    *frame.Loop
	surface *Surface
	input   *Input
	stats   *gstats.FrameStats
	assets  *ghelper.GUIAssetsWorker
	cfg     *gconf.Config
	logger  logx.Logger

	positions []gassets.Position
	preset    int

	engine       engine.Engine
	search       <-chan engine.Result
	cancelSearch context.CancelFunc

	width, height int
	waitSince     time.Time
	status        string
}

func NewGUI(cfg *gconf.Config, fen string, logger logx.Logger) (*GUIProcessing, error) {
	as, err := ghelper.NewGUIAssetsWorker()
	if err != nil {
		return nil, fmt.Errorf("error load assets: %v", err)
	}
	loop := frame.NewLoop()
	surface := NewSurface(as, gbase.PaletteFromString(cfg.Theme))
	r := rules.NewRules(logger.Named("rules"))
	g := ground.New(cfg.GroundConfig(), r,
		ground.WithScheduler(loop),
		ground.WithSurface(surface),
		ground.WithLogger(logger))
	if fen == "" {
		fen = base.FEN_START_GAME
	}
	if err := g.Load(fen); err != nil {
		return nil, err
	}
	positions, err := gassets.Positions()
	if err != nil {
		logger.Warnf("no preset positions: %v", err)
	}
	return &GUIProcessing{
		ground:  g,
		rules:   r,
		loop:    loop,
		surface: surface,
		input:   NewInput(),
		stats:   gstats.NewFrameStats(),
		assets:  as,
		cfg:     cfg,
		logger:  logger.Named("gui"),
		width:   cfg.WindowW,
		height:  cfg.WindowH,

		positions: positions,
		engine:    openEngine(cfg, logger),
	}, nil
}

// openEngine starts the configured UCI engine. Without one the opponent plays random moves.
func openEngine(cfg *gconf.Config, logger logx.Logger) engine.Engine {
	if cfg.Engine == "" {
		return nil
	}
	e := uci.NewUCIExec(logger.Named("uci"), engine.LevelAnalyze(cfg.EngineLevel), cfg.Engine)
	if err := e.Init(); err != nil {
		logger.Errorf("error init engine, playing random moves: %v", err)
		return nil
	}
	return e
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowIcon([]image.Image{
		gp.assets.IconNative(16),
		gp.assets.IconNative(32),
		gp.assets.IconNative(48),
		gp.assets.IconNative(60),
	})
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(gp.cfg.WindowW, gp.cfg.WindowH)
	ebiten.SetWindowTitle("EvilGround")
	if gp.engine != nil {
		defer gp.engine.Close()
		defer gp.stopSearch()
	}
	return ebiten.RunGame(gp)
}

func (gp *GUIProcessing) Update() error {
	now := time.Now()
	gp.stats.Tick(now)

	if err := gp.handleKeys(); err != nil {
		return err
	}
	gp.ground.SetBounds(gp.boardBounds())
	for _, ev := range gp.input.Events() {
		gp.ground.HandleEvent(ev)
	}
	gp.playOpponent(now)
	gp.loop.Frame(now)
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	if err := gp.surface.Draw(screen); err != nil {
		gp.logger.Errorf("error draw: %v", err)
	}
	if gp.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  tps %.0f  %s", gp.stats, ebiten.ActualTPS(), gp.status))
	}
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	gp.width, gp.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// boardBounds centers the largest board with whole pixel squares in the window.
func (gp *GUIProcessing) boardBounds() base.Bounds {
	side := math.Min(float64(gp.width), float64(gp.height-gbase.DebugH)) - 2*gbase.BoardMargin
	side = math.Floor(side/8) * 8
	if side < 8 {
		side = 8
	}
	return base.Bounds{
		Left:   math.Floor((float64(gp.width) - side) / 2),
		Top:    math.Floor((float64(gp.height)-side)/2) + gbase.DebugH/2,
		Width:  side,
		Height: side,
	}
}

func (gp *GUIProcessing) handleKeys() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		if err := gclipboard.WriteAll(gp.rules.FEN()); err != nil {
			gp.logger.Errorf("error copy FEN: %v", err)
			return nil
		}
		gp.status = "FEN copied"
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		fen, err := gclipboard.ReadFEN()
		if err != nil {
			gp.logger.Errorf("error paste FEN: %v", err)
			return nil
		}
		gp.load(fen)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if gp.ground.Dragging() {
			gp.ground.CancelDrag()
			return nil
		}
		return gbase.ErrExit
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		gp.ground.ToggleOrientation()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		gp.load(base.FEN_START_GAME)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if len(gp.positions) == 0 {
			return nil
		}
		gp.preset = (gp.preset + 1) % len(gp.positions)
		p := gp.positions[gp.preset]
		gp.load(p.FEN)
		gp.status = p.Name
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		fen, err := gdialog.OpenFEN()
		if errors.Is(err, gdialog.ErrCancelled) {
			return nil
		}
		if err != nil {
			gp.logger.Errorf("error open FEN: %v", err)
			gdialog.ShowError(fmt.Sprintf("error open FEN: %v", err))
			return nil
		}
		gp.load(fen)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		if gp.cfg.Theme == "light" {
			gp.cfg.Theme = "dark"
		} else {
			gp.cfg.Theme = "light"
		}
		gp.surface.SetTheme(gbase.PaletteFromString(gp.cfg.Theme))
		gp.saveConfig()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		gp.cfg.Debug = !gp.cfg.Debug
		gp.saveConfig()
	}
	return nil
}

func (gp *GUIProcessing) load(fen string) {
	if err := gp.ground.Load(fen); err != nil {
		gdialog.ShowError(fmt.Sprintf("error load FEN: %v", err))
		return
	}
	gp.status = ""
	gp.waitSince = time.Time{}
	gp.stopSearch()
}

func (gp *GUIProcessing) saveConfig() {
	if err := gp.cfg.Save(); err != nil {
		gp.logger.Errorf("error save config: %v", err)
	}
}

// playOpponent answers for the side the user may not move, then plays a pending premove.
func (gp *GUIProcessing) playOpponent(now time.Time) {
	st := gp.ground.State()
	if st.ViewOnly || st.Movable.Color == ground.MovableBoth || st.Movable.Color.Allows(st.TurnColor) {
		gp.waitSince = time.Time{}
		gp.stopSearch()
		return
	}
	if gp.ground.Animating() || gp.ground.Dragging() {
		return
	}
	if out := gp.rules.Outcome(); out != "" {
		gp.status = out
		return
	}
	if gp.waitSince.IsZero() {
		gp.waitSince = now
		return
	}
	if now.Sub(gp.waitSince) < opponentDelay {
		return
	}

	mv, ok := gp.opponentMove()
	if !ok {
		return
	}
	gp.waitSince = time.Time{}
	if !gp.ground.Move(mv.Orig, mv.Dest) {
		gp.logger.Warnf("opponent move %v refused", mv)
		return
	}
	gp.ground.PlayPremove()
	if out := gp.rules.Outcome(); out != "" {
		gp.status = out
		gp.logger.Infof("game over: %s", out)
	}
}

// opponentMove is not ok while the engine still thinks.
func (gp *GUIProcessing) opponentMove() (base.Move, bool) {
	if gp.engine != nil {
		if gp.search == nil {
			ctx, cancel := context.WithTimeout(context.Background(), engine.UCIBestMoveTimeout)
			gp.cancelSearch = cancel
			gp.search = engine.Search(ctx, gp.engine, gp.rules.FEN())
			return base.Move{}, false
		}
		select {
		case res := <-gp.search:
			gp.stopSearch()
			if res.Err == nil {
				return res.Move, true
			}
			gp.logger.Errorf("error engine, playing a random move: %v", res.Err)
		default:
			return base.Move{}, false
		}
	}
	return gp.rules.RandomMove()
}

func (gp *GUIProcessing) stopSearch() {
	if gp.cancelSearch != nil {
		gp.cancelSearch()
	}
	gp.search = nil
	gp.cancelSearch = nil
}
