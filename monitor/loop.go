// Package monitor implements the live dashboard session: a fixed-interval
// polling loop over the dashboard command, the input watch that can cancel
// it, and the pagination state the two share.
package monitor

import (
	"context"
	"time"

	"github.com/northvector/zitel/leano"
)

// DefaultInterval is the dashboard refresh cadence when none is
// configured.
const DefaultInterval = 3 * time.Second

// Executor is the slice of the protocol client the loop needs.
type Executor interface {
	Execute(ctx context.Context, cmd leano.Command) (leano.Response, error)
}

// Frame is one rendered-then-superseded unit of the live view: the latest
// dashboard reply, the page to draw it on, and an optional notice line.
type Frame struct {
	Data   leano.Response
	Page   Page
	Notice string
}

// Config adjusts a live polling session.
type Config struct {
	// Interval between dashboard refreshes; DefaultInterval when zero.
	Interval time.Duration

	// Command polled each cycle; leano.GetIndexData when empty.
	Command leano.Command
}

// Run polls the dashboard command at a fixed cadence and hands every reply
// to present, in arrival order, until the watch signals quit, ctx is
// cancelled, or a call fails. Page flips arriving between polls re-present
// the latest reply immediately rather than waiting out the interval or
// issuing an extra call.
//
// A user quit returns nil. A failed call ends the session immediately
// with that error; there is no retry. Once quit or cancellation is
// observed, at most the poll already in flight completes.
func Run(ctx context.Context, exec Executor, watch *Watch, cfg Config, present func(Frame)) error {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	command := cfg.Command
	if command == "" {
		command = leano.GetIndexData
	}

	var pager Pager
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-watch.Quit():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := exec.Execute(ctx, command)
		if err != nil {
			return err
		}
		present(Frame{Data: data, Page: pager.Current()})

		waiting := true
		for waiting {
			select {
			case <-watch.Quit():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-watch.Events():
				pager.Apply(ev)
				frame := Frame{Data: data, Page: pager.Current()}
				if ev == EventInvalid {
					frame.Notice = "commands: n(ext), p(rev), q(uit)"
				}
				present(frame)
			case <-ticker.C:
				waiting = false
			}
		}
	}
}
