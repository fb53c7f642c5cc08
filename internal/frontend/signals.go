package frontend

import (
	"os"
	"os/signal"
	"syscall"
)

// caughtSignals mirrors the reference binary's SIGNALS macro: the signals
// worth catching just to print statistics before letting the process die
// the way it normally would.
var caughtSignals = []os.Signal{
	syscall.SIGABRT,
	syscall.SIGBUS,
	os.Interrupt, // SIGINT
	syscall.SIGSEGV,
	syscall.SIGTERM,
}

type signalHandler struct {
	ch chan os.Signal
	on func()
}

// installSignalHandler installs a handler for every signal in
// caughtSignals that runs on, restores the default disposition, and
// re-raises the same signal so the process terminates exactly as it would
// have without the handler (default action), once on has printed its
// statistics. restore() must be called (via defer) to stop listening
// before the front end returns normally.
func installSignalHandler(on func()) *signalHandler {
	h := &signalHandler{ch: make(chan os.Signal, 1), on: on}
	signal.Notify(h.ch, caughtSignals...)
	go h.run()
	return h
}

func (h *signalHandler) run() {
	sig, ok := <-h.ch
	if !ok {
		return
	}
	h.on()
	signal.Stop(h.ch)
	if s, ok := sig.(syscall.Signal); ok {
		// Restore default disposition and re-raise, matching the
		// reference binary's reset-handler-then-raise sequence.
		signal.Reset(sig)
		process, err := os.FindProcess(os.Getpid())
		if err == nil {
			process.Signal(s)
		}
	}
}

func (h *signalHandler) restore() {
	signal.Stop(h.ch)
	close(h.ch)
}
