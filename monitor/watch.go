package monitor

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// Event is one piece of user input read during a live view.
type Event int

const (
	// EventNext flips the dashboard to the next page.
	EventNext Event = iota

	// EventPrev flips the dashboard to the previous page.
	EventPrev

	// EventInvalid marks input that is none of the recognized commands.
	// The view reports it and stays on the current page.
	EventInvalid
)

// Watch turns live-view input lines into navigation events and a one-shot
// quit signal. It runs beside the polling loop so the loop never blocks on
// input: navigation events go to a small buffer that drops rather than
// stalls, and quit is a closed channel the loop can check without waiting.
type Watch struct {
	events chan Event
	quit   chan struct{}
	stop   chan struct{}

	quitOnce sync.Once
	stopOnce sync.Once
}

// NewWatch starts a watch consuming from lines. The watch goroutine exits
// when it reads a quit command, when lines closes, or when Stop releases
// it; it is never joined.
func NewWatch(lines <-chan string) *Watch {
	w := &Watch{
		events: make(chan Event, 8),
		quit:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	go w.run(lines)
	return w
}

// WatchReader starts a watch over its own reader goroutine on r, for
// callers that dedicate a stream to the live view. The reader goroutine
// stays blocked on r after Stop and must not be waited on.
func WatchReader(r io.Reader) *Watch {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return NewWatch(lines)
}

func (w *Watch) run(lines <-chan string) {
	for {
		select {
		case <-w.stop:
			return
		case line, ok := <-lines:
			if !ok {
				// EOF ends the view the same way quit does.
				w.signalQuit()
				return
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "q", "quit":
				w.signalQuit()
				return
			case "n", "next":
				w.post(EventNext)
			case "p", "prev", "previous":
				w.post(EventPrev)
			case "":
				// A bare return between commands is not worth a warning.
			default:
				w.post(EventInvalid)
			}
		}
	}
}

// post never blocks the reader; when the buffer is full the event is
// dropped.
func (w *Watch) post(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}

func (w *Watch) signalQuit() {
	w.quitOnce.Do(func() { close(w.quit) })
}

// Events delivers navigation input during the view.
func (w *Watch) Events() <-chan Event {
	return w.events
}

// Quit is closed exactly once, when the user asks to leave the view or
// the input stream ends. Repeated quit input has no further effect.
func (w *Watch) Quit() <-chan struct{} {
	return w.quit
}

// Stop releases the watch without a quit signal, so a view torn down for
// another reason (poll failure, context cancellation) stops consuming
// lines meant for whoever reads the stream next. Safe to call more than
// once and after the watch has already quit.
func (w *Watch) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}
