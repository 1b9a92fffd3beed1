package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// InterruptHandler cancels a run when the process receives SIGINT or SIGTERM
type InterruptHandler struct {
	cancel  context.CancelFunc
	sigChan chan os.Signal
	done    chan struct{}
	out     io.Writer
	exit    func(code int)
}

// NewInterruptHandler creates a handler that cancels through cancel
func NewInterruptHandler(cancel context.CancelFunc, out io.Writer) *InterruptHandler {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	return &InterruptHandler{
		cancel:  cancel,
		sigChan: sigChan,
		done:    make(chan struct{}),
		out:     out,
		exit:    os.Exit,
	}
}

// Start starts the interrupt handler in a goroutine
func (h *InterruptHandler) Start() {
	go h.handleSignals()
}

// Stop releases the signal subscription
func (h *InterruptHandler) Stop() {
	signal.Stop(h.sigChan)
	close(h.done)
}

func (h *InterruptHandler) handleSignals() {
	select {
	case <-h.done:
		return
	case <-h.sigChan:
	}

	fmt.Fprintln(h.out, "\n\n⚠️  Received interrupt signal.")

	// Prompts block on stdin, so cancelling alone would not end the run
	h.cancel()
	h.exit(130)
}

// withInterrupt derives a context that is cancelled on interrupt
func withInterrupt(parent context.Context, out io.Writer) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	h := NewInterruptHandler(cancel, out)
	h.Start()

	return ctx, func() {
		h.Stop()
		cancel()
	}
}
