package uci

import (
	"bufio"
	"context"
	"evilground/src/base"
	"evilground/src/engine"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type UCISuite struct{}

var _ = Suite(&UCISuite{})

// fakeEngine speaks just enough UCI over a pair of pipes.
type fakeEngine struct {
	best   string
	silent bool // answer "go" only after "stop"

	mu   sync.Mutex
	cmds []string
}

func (f *fakeEngine) serve(in io.Reader, out io.WriteCloser) {
	defer out.Close()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		f.mu.Lock()
		f.cmds = append(f.cmds, line)
		silent := f.silent
		f.mu.Unlock()
		switch strings.Fields(line)[0] {
		case "uci":
			fmt.Fprint(out, "id name fake\nuciok\n")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "go":
			if !silent {
				fmt.Fprintf(out, "info depth 1 score cp 20 pv %s\nbestmove %s\n", f.best, f.best)
			}
		case "stop":
			fmt.Fprintf(out, "bestmove %s\n", f.best)
		case "quit":
			return
		}
	}
}

func (f *fakeEngine) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cmds...)
}

func start(c *C, f *fakeEngine, lvl engine.LevelAnalyze) *UCIExecutor {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	go f.serve(inR, outW)
	e := NewUCIExec(nil, lvl, "fake")
	c.Assert(e.attach(inW, outR), IsNil)
	return e
}

func (s *UCISuite) TestBestMove(c *C) {
	f := &fakeEngine{best: "e7e5"}
	e := start(c, f, engine.LevelOne)
	defer e.Close()

	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	mv, err := e.BestMove(context.Background(), fen)
	c.Assert(err, IsNil)
	c.Check(mv.String(), Equals, "e7e5")

	cmds := f.received()
	c.Check(cmds[:2], DeepEquals, []string{"uci", "isready"})
	c.Check(cmds, Contains, "position fen "+fen)
	c.Check(cmds[len(cmds)-1], Equals, "go depth 1 movetime 300")
}

func (s *UCISuite) TestPromotionSuffix(c *C) {
	e := start(c, &fakeEngine{best: "b7b8q"}, engine.LevelTwo)
	defer e.Close()
	mv, err := e.BestMove(context.Background(), "8/1P5k/8/8/8/8/6p1/K7 w - - 0 1")
	c.Assert(err, IsNil)
	c.Check(mv, Equals, base.Move{Orig: base.KeyOf(2, 7), Dest: base.KeyOf(2, 8)})
}

func (s *UCISuite) TestNoMove(c *C) {
	e := start(c, &fakeEngine{best: "(none)"}, engine.LevelOne)
	defer e.Close()
	mv, err := e.BestMove(context.Background(), "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	c.Check(err, Equals, ErrNoMove)
	c.Check(mv.Orig, Equals, base.NoKey)
}

func (s *UCISuite) TestCancelStopsSearch(c *C) {
	f := &fakeEngine{best: "g8f6", silent: true}
	e := start(c, f, engine.LevelFive)
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := e.BestMove(ctx, base.FEN_START_GAME)
	c.Check(err, Equals, context.DeadlineExceeded)
	c.Check(f.received(), Contains, "stop")

	// the late bestmove was consumed, the next search starts clean
	f.mu.Lock()
	f.silent = false
	f.mu.Unlock()
	mv, err := e.BestMove(context.Background(), base.FEN_START_GAME)
	c.Assert(err, IsNil)
	c.Check(mv.String(), Equals, "g8f6")
}

func (s *UCISuite) TestSearchResult(c *C) {
	e := start(c, &fakeEngine{best: "d7d5"}, engine.LevelOne)
	defer e.Close()
	select {
	case res := <-engine.Search(context.Background(), e, base.FEN_START_GAME):
		c.Assert(res.Err, IsNil)
		c.Check(res.Move.String(), Equals, "d7d5")
	case <-time.After(time.Second):
		c.Fatal("no search result")
	}
}

func (s *UCISuite) TestInitWithoutPath(c *C) {
	c.Check(NewUCIExec(nil, engine.LevelOne, "").Init(), ErrorMatches, "path engine must not be empty")
}

func (s *UCISuite) TestClosedExecutor(c *C) {
	e := start(c, &fakeEngine{best: "e7e5"}, engine.LevelOne)
	e.Close()
	e.Close()
	_, err := e.BestMove(context.Background(), base.FEN_START_GAME)
	c.Check(err, ErrorMatches, "no running uci-process")
}

// Contains checks that a []string holds a value.
var Contains Checker = &containsChecker{&CheckerInfo{Name: "Contains", Params: []string{"obtained", "expected"}}}

type containsChecker struct{ *CheckerInfo }

func (containsChecker) Check(params []interface{}, names []string) (bool, string) {
	list, ok := params[0].([]string)
	if !ok {
		return false, "obtained must be []string"
	}
	for _, s := range list {
		if s == params[1] {
			return true, ""
		}
	}
	return false, ""
}
