package export

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"slidecraft/outline"
)

// DeckRenderer turns a validated outline plus the per-slide image grouping
// into complete presentation bytes in a single call. The renderer is a black
// box to the coordinator; it either returns the whole deck or an error.
type DeckRenderer interface {
	RenderDeck(o outline.Outline, images map[int][][]byte) ([]byte, error)
}

// RendererFunc adapts a function to the DeckRenderer interface.
type RendererFunc func(o outline.Outline, images map[int][][]byte) ([]byte, error)

func (f RendererFunc) RenderDeck(o outline.Outline, images map[int][][]byte) ([]byte, error) {
	return f(o, images)
}

// State is the coordinator's externally visible phase.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRendering  State = "rendering"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

// defaultSuccessFlash is how long the coordinator lingers in Succeeded so
// state-polling callers see a distinguishable terminal flash before Idle.
const defaultSuccessFlash = 2 * time.Second

// Coordinator drives the end-to-end export sequence: validate, render under
// a timeout, report progress, honor cooperative cancellation. Cancellation
// is checkpoint-based only: an in-flight renderer call runs to completion
// and its result is discarded.
type Coordinator struct {
	renderer DeckRenderer
	timeout  time.Duration
	logger   func(string)

	mu           sync.Mutex
	state        State
	cancelWanted bool

	progress     func(stage string)
	successFlash time.Duration
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout bounds the whole rendering step. Zero keeps the 60s default.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithProgress registers a callback invoked at each progress checkpoint.
func WithProgress(fn func(stage string)) Option {
	return func(c *Coordinator) { c.progress = fn }
}

// WithLogger sets the log sink.
func WithLogger(fn func(string)) Option {
	return func(c *Coordinator) { c.logger = fn }
}

// WithSuccessFlash overrides the post-success display period. Used by tests.
func WithSuccessFlash(d time.Duration) Option {
	return func(c *Coordinator) { c.successFlash = d }
}

// NewCoordinator creates a coordinator in the Idle state.
func NewCoordinator(renderer DeckRenderer, opts ...Option) *Coordinator {
	c := &Coordinator{
		renderer:     renderer,
		timeout:      60 * time.Second,
		state:        StateIdle,
		logger:       func(string) {},
		progress:     func(string) {},
		successFlash: defaultSuccessFlash,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current coordinator state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTimeout adjusts the rendering timeout for subsequent exports. The
// timeout is a user setting, so it can change between exports.
func (c *Coordinator) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

// RequestCancel asks the current export to stop. Honored at the next
// checkpoint, never pre-emptively. A no-op outside an export.
func (c *Coordinator) RequestCancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateValidating || c.state == StateRendering {
		c.cancelWanted = true
	}
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Coordinator) cancelRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelWanted
}

// Export validates the outline, invokes the renderer once for the whole
// deck, and returns the presentation bytes. images maps slide index to the
// image payloads assigned to that slide (the assignment projection, with
// handles already resolved to bytes).
//
// Terminal states re-enter Validating on the next Export call.
func (c *Coordinator) Export(ctx context.Context, o outline.Outline, images map[int][][]byte) ([]byte, error) {
	c.mu.Lock()
	if c.state == StateValidating || c.state == StateRendering {
		c.mu.Unlock()
		return nil, fmt.Errorf("export already in progress")
	}
	c.state = StateValidating
	c.cancelWanted = false
	timeout := c.timeout
	c.mu.Unlock()

	c.progress("validating")

	if exportErr := validateOutline(o); exportErr != nil {
		c.setState(StateFailed)
		c.logger(fmt.Sprintf("[export] validation failed: %v", exportErr))
		return nil, exportErr
	}

	// Checkpoint: after validation, before any rendering work.
	if c.cancelRequested() {
		c.setState(StateCancelled)
		return nil, &ExportError{Kind: KindCancelled}
	}

	c.setState(StateRendering)
	c.progress("rendering")
	c.logger(fmt.Sprintf("[export] rendering deck %q (%d slides, %d slides with images)",
		o.Title, len(o.Slides), len(images)))

	type renderResult struct {
		data []byte
		err  error
	}
	resultCh := make(chan renderResult, 1)
	go func() {
		data, err := c.renderer.RenderDeck(o, images)
		resultCh <- renderResult{data: data, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			c.setState(StateFailed)
			c.logger(fmt.Sprintf("[export] renderer error: %v", res.err))
			return nil, &ExportError{Kind: KindRenderFailure, Message: res.err.Error(), Err: res.err}
		}
		// Checkpoint: renderer returned; a cancellation requested while it
		// ran discards the finished bytes.
		if c.cancelRequested() {
			c.setState(StateCancelled)
			return nil, &ExportError{Kind: KindCancelled}
		}
		c.setState(StateSucceeded)
		c.progress("succeeded")
		c.scheduleIdleReset()
		return res.data, nil

	case <-ctx.Done():
		c.setState(StateCancelled)
		return nil, &ExportError{Kind: KindCancelled, Err: ctx.Err()}

	case <-timer.C:
		c.setState(StateFailed)
		msg := fmt.Sprintf("rendering exceeded %s", timeout)
		c.logger("[export] " + msg)
		return nil, &ExportError{Kind: KindTimeout, Message: msg}
	}
}

// scheduleIdleReset returns the coordinator to Idle after the success flash,
// unless a new export has started in the meantime.
func (c *Coordinator) scheduleIdleReset() {
	go func() {
		time.Sleep(c.successFlash)
		c.mu.Lock()
		if c.state == StateSucceeded {
			c.state = StateIdle
		}
		c.mu.Unlock()
	}()
}

// validateOutline checks the structural rules: at least one slide, and a
// non-empty title on every slide. Violations name the offending slide
// indices; no partial render is ever attempted.
func validateOutline(o outline.Outline) *ExportError {
	if len(o.Slides) == 0 {
		return &ExportError{Kind: KindInvalidOutline, Message: "outline has no slides"}
	}
	var offending []int
	for i, s := range o.Slides {
		if strings.TrimSpace(s.Title) == "" {
			offending = append(offending, i)
		}
	}
	if len(offending) > 0 {
		return &ExportError{
			Kind:         KindInvalidOutline,
			SlideIndices: offending,
			Message:      "slides missing titles",
		}
	}
	return nil
}
