package cli

import (
	"evilground/src/anim"
	"evilground/src/base"
	"evilground/src/frame"
	"evilground/src/ground"
	"evilground/src/logx"
	"evilground/src/rules"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/term"
)

type CLIProcessing struct {
	out    io.Writer
	color  bool
	logger logx.Logger
}

// NewCLI prints to stdout, in color when stdout is a terminal.
func NewCLI(logger logx.Logger) *CLIProcessing {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	if color {
		EnableANSI()
	}
	return NewCLIWriter(os.Stdout, color, logger)
}

func NewCLIWriter(out io.Writer, color bool, logger logx.Logger) *CLIProcessing {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &CLIProcessing{out: out, color: color, logger: logger.Named("cli")}
}

// PrintPlan shows what the board would animate going from one position to another.
func (c *CLIProcessing) PrintPlan(fromFEN, toFEN string, orientation base.Color, size float64) error {
	from, err := base.ReadFEN(fromFEN)
	if err != nil {
		return fmt.Errorf("error read FEN %q: %v", fromFEN, err)
	}
	to, err := base.ReadFEN(toFEN)
	if err != nil {
		return fmt.Errorf("error read FEN %q: %v", toFEN, err)
	}
	bounds := base.Bounds{Width: size, Height: size}
	plan := anim.ComputePlan(
		anim.Snapshot{Pieces: from, Orientation: orientation, Bounds: bounds},
		anim.Snapshot{Pieces: to, Orientation: orientation, Bounds: bounds},
	)
	c.logger.Debugf("plan %q -> %q: %d anims, %d fadings", fromFEN, toFEN, len(plan.Anims), len(plan.Fadings))

	marks := make(map[base.Key]Mark)
	for k := range plan.Anims {
		marks[k] = MarkMoved
	}
	fadeMarks := make(map[base.Key]Mark)
	for k := range plan.Fadings {
		fadeMarks[k] = MarkFading
	}
	PrintBoard(c.out, from, orientation, fadeMarks, c.color)
	PrintBoard(c.out, to, orientation, marks, c.color)

	if plan.IsEmpty() {
		fmt.Fprintln(c.out, "nothing to animate")
		return nil
	}
	for _, k := range sortedKeys(plan.Anims) {
		v := plan.Anims[k]
		fmt.Fprintf(c.out, "move  %v %-12v from (%+.1f, %+.1f)\n", k, to[k], v.X, v.Y)
	}
	for _, k := range sortedKeys(plan.Fadings) {
		fmt.Fprintf(c.out, "fade  %v %v\n", k, plan.Fadings[k])
	}
	return nil
}

// traceSurface collects what the board paints between two frames.
type traceSurface struct {
	renders    int
	translates []string
}

func (t *traceSurface) Render(*ground.View) error {
	t.renders++
	return nil
}

func (t *traceSurface) Translate(k base.Key, v base.Vector) error {
	t.translates = append(t.translates, fmt.Sprintf("%v(%.1f,%.1f)", k, v.X, v.Y))
	return nil
}

func (t *traceSurface) flush() (int, []string) {
	r, tr := t.renders, t.translates
	t.renders, t.translates = 0, nil
	return r, tr
}

// Trace plays moves on a legal board and prints every animation frame at the given rate.
func (c *CLIProcessing) Trace(fen string, moves []string, cfg ground.Config, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("error fps: must be positive, got %d", fps)
	}
	step := time.Second / time.Duration(fps)
	clock := time.Unix(0, 0)
	loop := frame.NewLoop()
	surface := &traceSurface{}
	g := ground.New(cfg, rules.NewRules(c.logger), ground.WithScheduler(loop),
		ground.WithSurface(surface),
		ground.WithClock(func() time.Time { return clock }),
		ground.WithLogger(c.logger))
	g.SetBounds(base.Bounds{Width: 8 * 60, Height: 8 * 60})

	if err := g.Load(fen); err != nil {
		return fmt.Errorf("error load FEN: %v", err)
	}
	loop.Frame(clock)
	surface.flush()
	PrintBoard(c.out, g.State().Pieces, g.State().Orientation, nil, c.color)

	for _, s := range moves {
		mv, err := base.ParseMove(s)
		if err != nil {
			return fmt.Errorf("error parse move: %v", err)
		}
		if !g.Move(mv.Orig, mv.Dest) {
			return fmt.Errorf("error move %s: not allowed", s)
		}
		fmt.Fprintf(c.out, "%s\n", s)
		start := clock
		for n := 0; loop.Pending() > 0; n++ {
			loop.Frame(clock)
			renders, translates := surface.flush()
			line := fmt.Sprintf("  frame %2d %+6dms", n, clock.Sub(start).Milliseconds())
			if renders > 0 {
				line += " render"
			}
			if len(translates) > 0 {
				sort.Strings(translates)
				line += " " + strings.Join(translates, " ")
			}
			fmt.Fprintln(c.out, line)
			clock = clock.Add(step)
		}
		if len(g.State().Movable.Dests) == 0 {
			c.logger.Info("no legal moves left")
		}
	}
	PrintBoard(c.out, g.State().Pieces, g.State().Orientation, nil, c.color)
	fmt.Fprintln(c.out, g.FEN())
	return nil
}

func sortedKeys[V any](m map[base.Key]V) []base.Key {
	keys := make([]base.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
