package uci

import (
	"bufio"
	"context"
	"errors"
	"evilground/src/base"
	"evilground/src/engine"
	"evilground/src/logx"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

var ErrNoMove = errors.New("engine has no move")

type UCIExecutor struct {
	// init
	path   string
	args   []string
	params engine.SearchParams

	// process
	cmd *exec.Cmd
	in  io.WriteCloser
	out io.Reader

	// read stdout
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	lines  chan string

	// one search at a time
	mu   sync.Mutex
	logx logx.Logger
}

// to open a process, need to call Init()
func NewUCIExec(l logx.Logger, lvl engine.LevelAnalyze, enginePath string, engineArgs ...string) *UCIExecutor {
	if l == nil {
		l = logx.NewNop()
	}
	return &UCIExecutor{
		path: enginePath, args: engineArgs, logx: l,
		params: engine.LevelToParams(lvl),
	}
}

// open process and check
func (e *UCIExecutor) Init() error {
	if e.path == "" {
		return errors.New("path engine must not be empty")
	}

	cmd := exec.Command(e.path, e.args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("error connect to stdin of engine: %v", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error connect to stdout of engine: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error open %s engine: %v", e.path, err)
	}
	e.cmd = cmd
	if err := e.attach(in, out); err != nil {
		e.Close()
		return err
	}
	e.logx.Infof("open engine %s (pid %d)", e.path, cmd.Process.Pid)
	return nil
}

// attach starts talking UCI over in/out.
func (e *UCIExecutor) attach(in io.WriteCloser, out io.Reader) error {
	e.in = in
	e.out = out
	e.lines = make(chan string, 64)
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.wg.Add(1)
	go e.stdoutLoop(e.ctx)

	if err := e.Exec("uci"); err != nil {
		return err
	}
	if _, err := e.waitPrefix(e.ctx, "uciok", engine.UCIHandshakeTimeout); err != nil {
		return err
	}
	return e.checkReady()
}

// command executable
func (e *UCIExecutor) Exec(cmd string) error {
	if e.in == nil {
		return errors.New("stdin not available")
	}
	e.logx.Debugf("GUI: %s", cmd)
	_, err := io.WriteString(e.in, cmd+"\n")
	return err
}

// BestMove searches fen within the level's limits. A cancelled ctx stops the search.
func (e *UCIExecutor) BestMove(ctx context.Context, fen string) (base.Move, error) {
	none := base.Move{Orig: base.NoKey, Dest: base.NoKey}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.in == nil {
		return none, errors.New("no running uci-process")
	}

	e.logx.Debugf("search position FEN: %s", fen)
	if err := e.Exec("ucinewgame"); err != nil {
		return none, err
	}
	if err := e.Exec("position fen " + fen); err != nil {
		return none, err
	}
	if err := e.checkReady(); err != nil {
		return none, err
	}
	if err := e.Exec(goCommand(e.params)); err != nil {
		return none, err
	}

	line, err := e.waitPrefix(ctx, "bestmove", engine.UCIBestMoveTimeout)
	if err != nil {
		// keep the protocol in step for the next search
		_ = e.Exec("stop")
		_, _ = e.waitPrefix(e.ctx, "bestmove", engine.UCIHandshakeTimeout)
		return none, err
	}
	f := strings.Fields(line)
	if len(f) < 2 || f[1] == "(none)" || f[1] == "0000" {
		return none, ErrNoMove
	}
	mv, err := base.ParseMove(f[1])
	if err != nil {
		return none, fmt.Errorf("error parse engine move %q: %v", f[1], err)
	}
	e.logx.Infof("engine move %v", mv)
	return mv, nil
}

func goCommand(prm engine.SearchParams) string {
	var b strings.Builder
	b.WriteString("go")
	if prm.MaxDepth > 0 {
		fmt.Fprintf(&b, " depth %d", prm.MaxDepth)
	}
	if prm.MaxTimeMs > 0 {
		fmt.Fprintf(&b, " movetime %d", prm.MaxTimeMs)
	}
	return b.String()
}

// Terminate process. Waits for a running search to return.
func (e *UCIExecutor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.in == nil {
		return
	}
	_ = e.Exec("quit")
	_ = e.in.Close()
	e.in = nil
	e.cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(2 * time.Second):
		if e.cmd != nil && e.cmd.Process != nil {
			_ = e.cmd.Process.Kill()
		}
		<-done
	}

	if e.cmd != nil {
		_ = e.cmd.Wait()
	}
	e.logx.Info("uci-process terminated")
}

func (e *UCIExecutor) checkReady() error {
	if err := e.Exec("isready"); err != nil {
		return err
	}
	if _, err := e.waitPrefix(e.ctx, "readyok", engine.UCIHandshakeTimeout); err != nil {
		return err
	}
	return nil
}

func (e *UCIExecutor) waitPrefix(ctx context.Context, prefix string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				return "", errors.New("engine exited")
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
		case <-timer.C:
			return "", fmt.Errorf("timeout waiting for %s", prefix)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// stdoutLoop forwards every line except search info, which only goes to the log.
func (e *UCIExecutor) stdoutLoop(ctx context.Context) {
	defer e.wg.Done()
	defer close(e.lines)
	scr := bufio.NewScanner(e.out)
	for scr.Scan() {
		line := strings.TrimSpace(scr.Text())
		e.logx.Debugf("ENGINE: %s", line)
		if line == "" || strings.HasPrefix(line, "info ") {
			continue
		}
		select {
		case e.lines <- line:
		case <-ctx.Done():
			return
		}
	}
}
