package ui

import (
	"context"
	"errors"
	"evilground/src/base"
	"evilground/src/ground"
	"evilground/src/logx"
	clic "evilground/src/ui/cli"
	"evilground/src/ui/gui"
	"evilground/src/ui/gui/gbase"
	"evilground/src/ui/gui/gbase/gconf"
	"evilground/src/ui/tui"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
)

const logfile string = "evilground.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("dev"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

func openLog() (*os.File, error) {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error open logfile: %v", err)
	}
	return file, nil
}

func RunGUI(c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		return err
	}
	defer file.Close()
	logger := GetLogger(file, c)
	defer logger.Sync()

	cfg, err := gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		logger.Errorf("error read config: %v", err)
		return err
	}
	if path := c.String("engine"); path != "" {
		cfg.Engine = path
	}
	g, err := gui.NewGUI(cfg, c.String("fen"), logger)
	if err != nil {
		logger.Errorf("error init GUI: %v", err)
		return fmt.Errorf("error init GUI: %v", err)
	}
	return g.Run()
}

func RunTUI(c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		return err
	}
	defer file.Close()
	logger := GetLogger(file, c)
	defer logger.Sync()

	cfg, err := gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		logger.Errorf("error read config: %v", err)
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error open terminal: %v", err)
	}
	t, err := tui.NewTUI(screen, cfg.GroundConfig(), c.String("fen"), logger)
	if err != nil {
		logger.Errorf("error init TUI: %v", err)
		return err
	}
	return t.Run()
}

func RunEvilGround() error {
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "string FEN format",
	}
	df := &cli.BoolFlag{
		Name:    "dev",
		Aliases: []string{"d"},
		Usage:   "dev encode log",
	}
	lf := &cli.StringFlag{
		Name:        "level",
		Aliases:     []string{"l"},
		Usage:       "level log",
		DefaultText: "info",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console log",
	}
	conff := &cli.StringFlag{
		Name:  "config",
		Usage: "path to JSON config",
		Value: gconf.DefaultFile,
	}
	of := &cli.StringFlag{
		Name:    "orientation",
		Aliases: []string{"o"},
		Usage:   "white or black at the bottom",
		Value:   "white",
	}
	ef := &cli.StringFlag{
		Name:    "engine",
		Aliases: []string{"e"},
		Usage:   "path to a UCI engine playing the other side",
	}
	boardff := []cli.Flag{ff, df, lf, cf, conff}

	runGUI := func(ctx context.Context, c *cli.Command) error {
		if err := RunGUI(c); err != nil && !errors.Is(err, gbase.ErrExit) {
			fmt.Printf("error GUI: %v\n", err)
		}
		return nil
	}

	return (&cli.Command{
		Name:  "evilground",
		Usage: "animated chessboard",
		Commands: []*cli.Command{
			{
				Name:   "gui",
				Usage:  "play on a window board",
				Flags:  append(boardff, ef),
				Action: runGUI,
			},
			{
				Name:  "tui",
				Usage: "play on a terminal board",
				Flags: boardff,
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunTUI(c); err != nil {
						fmt.Printf("error TUI: %v\n", err)
					}
					return nil
				},
			},
			{
				Name:  "plan",
				Usage: "print the animation between two positions",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "FEN before", Value: base.FEN_START_GAME},
					&cli.StringFlag{Name: "to", Usage: "FEN after", Required: true},
					of,
					&cli.FloatFlag{Name: "size", Usage: "board side in pixels", Value: 800},
					lf, cf, df,
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					orientation, err := base.ColorFromString(c.String("orientation"))
					if err != nil {
						return err
					}
					cl := clic.NewCLI(consoleLogger(c))
					return cl.PrintPlan(c.String("from"), c.String("to"), orientation, c.Float("size"))
				},
			},
			{
				Name:  "trace",
				Usage: "play moves and print every animation frame",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fen", Usage: "start position", Value: base.FEN_START_GAME},
					&cli.StringFlag{Name: "moves", Usage: "space separated moves, e2e4 e7e5", Required: true},
					of,
					&cli.IntFlag{Name: "fps", Usage: "frames per second", Value: 60},
					&cli.IntFlag{Name: "duration", Usage: "animation length in ms", Value: 200},
					lf, cf, df,
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					orientation, err := base.ColorFromString(c.String("orientation"))
					if err != nil {
						return err
					}
					cfg := ground.DefaultConfig()
					cfg.Orientation = orientation
					cfg.Duration = time.Duration(c.Int("duration")) * time.Millisecond
					cl := clic.NewCLI(consoleLogger(c))
					return cl.Trace(c.String("fen"), strings.Fields(c.String("moves")), cfg, int(c.Int("fps")))
				},
			},
		},
		Action: runGUI,
	}).Run(context.Background(), os.Args)
}

// consoleLogger logs to stderr so the printed boards stay clean on stdout.
func consoleLogger(c *cli.Command) logx.Logger {
	l := logx.NewLogx(logx.GetLoggerLevelByString(c.String("level")), c.Bool("dev"), c.Bool("console"))
	l.InitLogger(os.Stderr)
	return l
}
