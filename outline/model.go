package outline

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidOutline is returned when an outline with no slides is offered to
// the model. An outline must have at least one slide to be stored.
var ErrInvalidOutline = errors.New("outline must contain at least one slide")

// OutOfRangeError reports a slide index operation beyond the current slide
// count. Indices are never silently clamped.
type OutOfRangeError struct {
	Index int
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("slide index %d out of range (outline has %d slides)", e.Index, e.Count)
}

// SlideUpdate carries the fields of an in-place slide edit. Nil fields are
// left untouched. Updates never change the slide count, so recorded image
// assignment indices stay valid across edits.
type SlideUpdate struct {
	Title          *string   `json:"title,omitempty"`
	Bullets        *[]string `json:"bullets,omitempty"`
	Content        *[]string `json:"content,omitempty"`
	SlideType      *string   `json:"slideType,omitempty"`
	PresenterNotes *string   `json:"presenterNotes,omitempty"`
}

// Model holds the single "current" outline for a session and exposes
// controlled mutation. Wholesale replacement swaps the outline identity;
// per-slide edits mutate in place.
//
// All mutation normally happens on the single wails event thread, but the
// model is mutex-guarded anyway so overlapping background generations cannot
// race.
type Model struct {
	mu      sync.RWMutex
	current *Outline
}

// NewModel creates an empty outline model. SlideCount is 0 until the first
// successful Replace.
func NewModel() *Model {
	return &Model{}
}

// Replace swaps the current outline wholesale. An outline with an empty
// slide sequence is rejected with ErrInvalidOutline. Replacing does not
// touch image assignment bookkeeping: indices recorded against the old
// outline keep their numeric values and are reinterpreted against the new
// slide count by the assignment projector.
func (m *Model) Replace(o Outline) error {
	if len(o.Slides) == 0 {
		return ErrInvalidOutline
	}
	clone := o.Clone()
	m.mu.Lock()
	m.current = &clone
	m.mu.Unlock()
	return nil
}

// Current returns a deep copy of the current outline. The second return is
// false when no outline has been stored yet.
func (m *Model) Current() (Outline, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Outline{}, false
	}
	return m.current.Clone(), true
}

// GetSlide returns a copy of the slide at index.
func (m *Model) GetSlide(index int) (Slide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || index < 0 || index >= len(m.current.Slides) {
		return Slide{}, &OutOfRangeError{Index: index, Count: m.countLocked()}
	}
	return m.current.Slides[index].Clone(), nil
}

// UpdateSlide edits the slide at index in place. Only non-nil fields of the
// update are applied.
func (m *Model) UpdateSlide(index int, upd SlideUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || index < 0 || index >= len(m.current.Slides) {
		return &OutOfRangeError{Index: index, Count: m.countLocked()}
	}
	slide := &m.current.Slides[index]
	if upd.Title != nil {
		slide.Title = *upd.Title
	}
	if upd.Bullets != nil {
		slide.Bullets = append([]string(nil), (*upd.Bullets)...)
	}
	if upd.Content != nil {
		slide.Content = append([]string(nil), (*upd.Content)...)
	}
	if upd.SlideType != nil {
		slide.SlideType = NormalizeSlideType(*upd.SlideType)
	}
	if upd.PresenterNotes != nil {
		slide.PresenterNotes = *upd.PresenterNotes
	}
	return nil
}

// SlideCount returns the number of slides in the current outline, 0 when no
// outline is stored.
func (m *Model) SlideCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.countLocked()
}

func (m *Model) countLocked() int {
	if m.current == nil {
		return 0
	}
	return len(m.current.Slides)
}
