package assets

import "sort"

// SlideCounter is the read-only view of the outline model the projector
// needs. Satisfied by *outline.Model.
type SlideCounter interface {
	SlideCount() int
}

// Projector derives the per-slide image grouping required at export time,
// and the reverse per-image view used for display. It owns no state: every
// projection is recomputed from the live store and outline, which is what
// keeps the views from going stale.
type Projector struct {
	store *Store
	model SlideCounter
}

func NewProjector(store *Store, model SlideCounter) *Projector {
	return &Projector{store: store, model: model}
}

// BySlide maps each in-range slide index to its assigned assets. Ordering
// within a slide is stable by asset creation order, not assignment order, so
// repeated calls with no intervening mutation return identical results.
// Indices at or beyond the current slide count are silently excluded: a
// dangling assignment is invisible here, not an error (see Dangling).
func (p *Projector) BySlide() map[int][]*ImageAsset {
	count := p.model.SlideCount()
	out := make(map[int][]*ImageAsset)
	for _, asset := range p.store.ListAll(nil) {
		for _, idx := range asset.AssignedSlides() {
			if idx < 0 || idx >= count {
				continue
			}
			out[idx] = append(out[idx], asset)
		}
	}
	return out
}

// Summary maps each in-range slide index to its assigned-image count,
// without materializing asset references. Meant for lightweight display.
func (p *Projector) Summary() map[int]int {
	count := p.model.SlideCount()
	out := make(map[int]int)
	for _, asset := range p.store.ListAll(nil) {
		for _, idx := range asset.AssignedSlides() {
			if idx < 0 || idx >= count {
				continue
			}
			out[idx]++
		}
	}
	return out
}

// Dangling maps asset ids to their recorded slide indices that do not
// correspond to any slide in the current outline. The export path ignores
// these; the UI can use this query to surface them instead of hiding them.
func (p *Projector) Dangling() map[string][]int {
	count := p.model.SlideCount()
	out := make(map[string][]int)
	for _, asset := range p.store.ListAll(nil) {
		for _, idx := range asset.AssignedSlides() {
			if idx < 0 || idx >= count {
				out[asset.ID] = append(out[asset.ID], idx)
			}
		}
	}
	for id := range out {
		sort.Ints(out[id])
	}
	return out
}
