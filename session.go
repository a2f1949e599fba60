package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"slidecraft/assets"
	"slidecraft/outline"
)

// Session ties together the per-session mutable state: the current outline
// and the image asset store, plus the directory holding image files. It is
// passed explicitly to whoever needs it; there are no ambient globals.
type Session struct {
	Outline   *outline.Model
	Store     *assets.Store
	Projector *assets.Projector
	FilesDir  string
}

// NewSession creates an empty session rooted at filesDir.
func NewSession(filesDir string, logger func(string)) (*Session, error) {
	if err := os.MkdirAll(filesDir, 0755); err != nil {
		return nil, WrapOperationError("create session files directory", err)
	}
	store := assets.NewStore(logger)
	model := outline.NewModel()
	return &Session{
		Outline:   model,
		Store:     store,
		Projector: assets.NewProjector(store, model),
		FilesDir:  filesDir,
	}, nil
}

// NewImagePath returns a unique path in the session files directory for a
// new image payload.
func (s *Session) NewImagePath(prefix, ext string) string {
	name := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	return filepath.Join(s.FilesDir, name)
}

// ResolveImages materializes the assignment projection into raw bytes per
// slide index, the shape the deck renderer consumes. Unreadable handles are
// logged and skipped rather than failing the whole export.
func (s *Session) ResolveImages(logger func(string)) map[int][][]byte {
	out := make(map[int][][]byte)
	for idx, imgs := range s.Projector.BySlide() {
		for _, img := range imgs {
			data, err := img.Handle.Bytes()
			if err != nil {
				if logger != nil {
					logger(fmt.Sprintf("[session] skipping unreadable image %s: %v", img.ID, err))
				}
				continue
			}
			out[idx] = append(out[idx], data)
		}
	}
	return out
}
