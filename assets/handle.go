package assets

import (
	"fmt"
	"os"
)

// BinaryHandle is the opaque reference to an asset's image bytes. Handles
// are created when an image is generated or uploaded and must be released
// exactly once, when the owning asset is deleted or the store is cleared.
// A leaked handle is a resource leak, not a crash.
type BinaryHandle interface {
	// Bytes loads the image payload.
	Bytes() ([]byte, error)
	// Release frees the underlying resource. Safe to call once.
	Release() error
}

// FileHandle is a BinaryHandle backed by a file in the session cache
// directory. Release removes the file.
type FileHandle struct {
	Path string
}

// NewFileHandle writes data to path and returns a handle owning that file.
func NewFileHandle(path string, data []byte) (*FileHandle, error) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}
	return &FileHandle{Path: path}, nil
}

func (h *FileHandle) Bytes() ([]byte, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

func (h *FileHandle) Release() error {
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

// MemoryHandle is a BinaryHandle holding the payload in memory. Used in
// tests and for small uploads that never touch the cache directory.
type MemoryHandle struct {
	data     []byte
	released bool
}

func NewMemoryHandle(data []byte) *MemoryHandle {
	return &MemoryHandle{data: data}
}

func (h *MemoryHandle) Bytes() ([]byte, error) {
	if h.released {
		return nil, fmt.Errorf("image handle already released")
	}
	return h.data, nil
}

func (h *MemoryHandle) Release() error {
	h.data = nil
	h.released = true
	return nil
}

// Released reports whether Release has been called. Test hook.
func (h *MemoryHandle) Released() bool {
	return h.released
}
