// Package shell implements the interactive session: it reads choices from
// one input stream, dispatches them against the protocol client, and
// hosts the live dashboard view.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/northvector/zitel/leano"
	"github.com/northvector/zitel/monitor"
	"github.com/northvector/zitel/render"
)

// Executor is the slice of the protocol client the shell drives.
type Executor interface {
	Execute(ctx context.Context, cmd leano.Command) (leano.Response, error)
}

// Options configures a Shell.
type Options struct {
	// PollInterval is the live dashboard refresh cadence;
	// monitor.DefaultInterval when zero.
	PollInterval time.Duration
}

// Shell owns the interactive session. A single goroutine reads input
// lines for the whole process, so the menu and the live view never
// compete for the stream: during a live view the lines feed its watch,
// and afterwards they feed the menu again.
type Shell struct {
	exec  Executor
	lines chan string
	out   io.Writer
	term  *termenv.Output
	opts  Options
}

// New builds a Shell reading from in and writing to out.
func New(exec Executor, in io.Reader, out io.Writer, opts Options) *Shell {
	sh := &Shell{
		exec:  exec,
		lines: make(chan string),
		out:   out,
		term:  termenv.NewOutput(out),
		opts:  opts,
	}
	go func() {
		defer close(sh.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			sh.lines <- scanner.Text()
		}
	}()
	return sh
}

// Run shows the menu and dispatches choices until the user quits, input
// ends, or ctx is cancelled. Command failures are printed and control
// returns to the menu.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(sh.out)
		fmt.Fprint(sh.out, render.Menu())

		choice, ok := sh.prompt(ctx, "> ")
		if !ok {
			return ctx.Err()
		}

		switch strings.ToLower(choice) {
		case "1":
			sh.liveDashboard(ctx)
		case "2":
			sh.neighbourScan(ctx)
		case "3":
			sh.setDMZ(ctx)
		case "4":
			sh.bandLock(ctx)
		case "5":
			sh.rawCommand(ctx)
		case "0", "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintf(sh.out, "unknown choice %q\n", choice)
		}
	}
}

// prompt prints label and waits for the next input line. ok is false when
// the input stream ends or ctx is cancelled.
func (sh *Shell) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	select {
	case line, ok := <-sh.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	case <-ctx.Done():
		return "", false
	}
}

func (sh *Shell) liveDashboard(ctx context.Context) {
	watch := monitor.NewWatch(sh.lines)
	defer watch.Stop()

	sh.term.HideCursor()
	defer sh.term.ShowCursor()

	cfg := monitor.Config{Interval: sh.opts.PollInterval}
	err := monitor.Run(ctx, sh.exec, watch, cfg, func(f monitor.Frame) {
		sh.term.ClearScreen()
		fmt.Fprint(sh.out, render.Dashboard(f))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(sh.out, "live view ended: %v\n", err)
	}
}

func (sh *Shell) neighbourScan(ctx context.Context) {
	reply, err := sh.exec.Execute(ctx, leano.GetNeighbourCell)
	if err != nil {
		fmt.Fprintf(sh.out, "scan failed: %v\n", err)
		return
	}
	fmt.Fprint(sh.out, render.NeighbourTable(leano.Neighbours(reply)))
}

func (sh *Shell) setDMZ(ctx context.Context) {
	label := fmt.Sprintf("forward to host [%s]: ", leano.DefaultDMZHost)
	host, ok := sh.prompt(ctx, label)
	if !ok {
		return
	}
	reply, err := sh.exec.Execute(ctx, leano.SetDMZ(host))
	if err != nil {
		fmt.Fprintf(sh.out, "set_dmz failed: %v\n", err)
		return
	}
	fmt.Fprint(sh.out, render.Outcome("DMZ forwarding", reply))
}

func (sh *Shell) bandLock(ctx context.Context) {
	raw, ok := sh.prompt(ctx, "EARFCN to lock (e.g. 42490): ")
	if !ok {
		return
	}
	earfcn, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		fmt.Fprintf(sh.out, "EARFCN must be a number, got %q\n", raw)
		return
	}
	reply, err := sh.exec.Execute(ctx, leano.SetBandLock(uint32(earfcn)))
	if err != nil {
		fmt.Fprintf(sh.out, "set_band_lock failed: %v\n", err)
		return
	}
	fmt.Fprint(sh.out, render.Outcome(fmt.Sprintf("band lock to EARFCN %d", earfcn), reply))
}

func (sh *Shell) rawCommand(ctx context.Context) {
	line, ok := sh.prompt(ctx, "command: ")
	if !ok || line == "" {
		return
	}
	reply, err := sh.exec.Execute(ctx, leano.Raw(line))
	if err != nil {
		fmt.Fprintf(sh.out, "command failed: %v\n", err)
		return
	}
	fmt.Fprint(sh.out, render.RawResponse(reply))
}
