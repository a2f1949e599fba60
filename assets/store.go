package assets

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Origin distinguishes AI-generated placeholder images from user uploads.
type Origin string

const (
	OriginGenerated Origin = "generated"
	OriginUploaded  Origin = "uploaded"
)

// ImageAsset is a generated or uploaded image with its slide-assignment
// bookkeeping. Assignment is positional: slide indices, not slide
// identities, so replacing the outline can leave dangling indices behind.
// The store owns all assets; callers mutate them only through store methods.
type ImageAsset struct {
	ID     string
	Origin Origin
	Title  string
	Handle BinaryHandle

	assigned map[int]struct{}
	seq      int // creation order, used for deterministic projection
}

// AssignedSlides returns a sorted copy of the asset's assigned slide indices.
func (a *ImageAsset) AssignedSlides() []int {
	out := make([]int, 0, len(a.assigned))
	for idx := range a.assigned {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Store owns every image asset of the current session. All mutation goes
// through the mutex: two overlapping chart generations must not race on
// creation order, and delete-then-click UI races are expected, which is why
// missing ids are reported as false rather than errors.
type Store struct {
	mu      sync.Mutex
	assets  map[string]*ImageAsset
	nextSeq int
	logger  func(string)
}

// NewStore creates an empty asset store. logger may be nil.
func NewStore(logger func(string)) *Store {
	if logger == nil {
		logger = func(string) {}
	}
	return &Store{
		assets: make(map[string]*ImageAsset),
		logger: logger,
	}
}

// Create allocates a new unique id, stores the asset with an empty
// assignment set, and returns it. The handle is adopted as-is; validation of
// the underlying bytes is the creator's concern.
func (s *Store) Create(origin Origin, title string, handle BinaryHandle) *ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset := &ImageAsset{
		ID:       uuid.NewString(),
		Origin:   origin,
		Title:    title,
		Handle:   handle,
		assigned: make(map[int]struct{}),
		seq:      s.nextSeq,
	}
	s.nextSeq++
	s.assets[asset.ID] = asset
	s.logger(fmt.Sprintf("[assets] created %s image %s (%q)", origin, asset.ID, title))
	return asset
}

// Get returns the asset with the given id, or nil when unknown.
func (s *Store) Get(id string) *ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[id]
}

// ListAll returns all assets in creation order. A non-nil originFilter
// restricts the result to that origin.
func (s *Store) ListAll(originFilter *Origin) []*ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(originFilter)
}

func (s *Store) listLocked(originFilter *Origin) []*ImageAsset {
	out := make([]*ImageAsset, 0, len(s.assets))
	for _, a := range s.assets {
		if originFilter != nil && a.Origin != *originFilter {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Delete removes the asset and releases its binary handle. Returns false
// when the id does not exist, so delete-then-refresh stays idempotent.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return false
	}
	delete(s.assets, id)
	if err := asset.Handle.Release(); err != nil {
		// A leaked handle is not fatal; the asset is gone either way.
		s.logger(fmt.Sprintf("[assets] failed to release handle for %s: %v", id, err))
	}
	return true
}

// Assign adds slideIndex to the asset's assignment set. Already-assigned
// indices are a no-op, unknown ids return false. Indices are not validated
// against the live outline size; out-of-range indices simply stay dormant
// until the outline grows to cover them.
func (s *Store) Assign(id string, slideIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return false
	}
	asset.assigned[slideIndex] = struct{}{}
	return true
}

// Unassign removes slideIndex from the asset's assignment set; a no-op when
// the index was not assigned. Returns false for unknown ids.
func (s *Store) Unassign(id string, slideIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return false
	}
	delete(asset.assigned, slideIndex)
	return true
}

// ClearAll releases every matching asset's handle and removes it from the
// store. A nil originFilter clears everything.
func (s *Store) ClearAll(originFilter *Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.assets {
		if originFilter != nil && a.Origin != *originFilter {
			continue
		}
		delete(s.assets, id)
		if err := a.Handle.Release(); err != nil {
			s.logger(fmt.Sprintf("[assets] failed to release handle for %s: %v", id, err))
		}
	}
}

// Len returns the number of stored assets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assets)
}
