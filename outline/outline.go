package outline

// SlideType is an advisory hint for layout and presenter-note phrasing.
// It is not strictly enforced anywhere; unknown values render as content.
type SlideType string

const (
	SlideTypeTitle      SlideType = "title"
	SlideTypeContent    SlideType = "content"
	SlideTypeConclusion SlideType = "conclusion"
	SlideTypeSection    SlideType = "section"
	SlideTypeAgenda     SlideType = "agenda"
	SlideTypeDecisions  SlideType = "decisions"
	SlideTypeActions    SlideType = "actions"
)

// NormalizeSlideType maps a free-form type string (typically from an LLM
// reply) onto a known SlideType, defaulting to SlideTypeContent.
func NormalizeSlideType(s string) SlideType {
	switch SlideType(s) {
	case SlideTypeTitle, SlideTypeContent, SlideTypeConclusion,
		SlideTypeSection, SlideTypeAgenda, SlideTypeDecisions, SlideTypeActions:
		return SlideType(s)
	default:
		return SlideTypeContent
	}
}

// Slide is one entry in an Outline. A valid slide has a non-empty title;
// Bullets and Content are both optional body blocks.
type Slide struct {
	Title          string    `json:"title"`
	Bullets        []string  `json:"bullets,omitempty"`
	Content        []string  `json:"content,omitempty"`
	SlideType      SlideType `json:"slideType,omitempty"`
	PresenterNotes string    `json:"presenterNotes,omitempty"`
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	if s.Bullets != nil {
		out.Bullets = make([]string, len(s.Bullets))
		copy(out.Bullets, s.Bullets)
	}
	if s.Content != nil {
		out.Content = make([]string, len(s.Content))
		copy(out.Content, s.Content)
	}
	return out
}

// BodyLines returns the slide's displayable body text: bullets first, then
// free-text content lines. Used by the deck renderer and the fallback path.
func (s Slide) BodyLines() []string {
	lines := make([]string, 0, len(s.Bullets)+len(s.Content))
	lines = append(lines, s.Bullets...)
	lines = append(lines, s.Content...)
	return lines
}

// Outline is the editable, in-memory description of a slide deck prior to
// binary rendering. Slide order is significant: the slide index is the
// addressing key used by image assignment.
type Outline struct {
	Title             string  `json:"title"`
	Slides            []Slide `json:"slides"`
	EstimatedDuration string  `json:"estimatedDuration,omitempty"`
}

// Clone returns a deep copy of the outline.
func (o Outline) Clone() Outline {
	out := o
	out.Slides = make([]Slide, len(o.Slides))
	for i, s := range o.Slides {
		out.Slides[i] = s.Clone()
	}
	return out
}
