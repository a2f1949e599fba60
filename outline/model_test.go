package outline

import (
	"errors"
	"testing"
)

func threeSlideOutline() Outline {
	return Outline{
		Title: "Quarterly Review",
		Slides: []Slide{
			{Title: "Quarterly Review", SlideType: SlideTypeTitle},
			{Title: "Highlights", Bullets: []string{"Revenue up", "Churn down"}},
			{Title: "Next Steps", SlideType: SlideTypeConclusion},
		},
	}
}

func TestReplaceRejectsEmptyOutline(t *testing.T) {
	m := NewModel()
	err := m.Replace(Outline{Title: "Empty"})
	if !errors.Is(err, ErrInvalidOutline) {
		t.Fatalf("Replace() error = %v, want ErrInvalidOutline", err)
	}
	if _, ok := m.Current(); ok {
		t.Error("rejected replace should leave the model empty")
	}
}

func TestReplaceStoresDeepCopy(t *testing.T) {
	m := NewModel()
	src := threeSlideOutline()
	if err := m.Replace(src); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	// Mutating the caller's copy must not leak into the model.
	src.Slides[1].Bullets[0] = "mutated"
	got, ok := m.Current()
	if !ok {
		t.Fatal("Current() reported no outline after Replace()")
	}
	if got.Slides[1].Bullets[0] != "Revenue up" {
		t.Errorf("model leaked caller mutation: %q", got.Slides[1].Bullets[0])
	}

	// And mutating the returned copy must not touch the stored outline.
	got.Slides[0].Title = "clobbered"
	again, _ := m.Current()
	if again.Slides[0].Title != "Quarterly Review" {
		t.Errorf("Current() returned a shared reference: %q", again.Slides[0].Title)
	}
}

func TestUpdateSlideAppliesOnlyProvidedFields(t *testing.T) {
	m := NewModel()
	if err := m.Replace(threeSlideOutline()); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	title := "Key Highlights"
	if err := m.UpdateSlide(1, SlideUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateSlide() failed: %v", err)
	}

	slide, err := m.GetSlide(1)
	if err != nil {
		t.Fatalf("GetSlide() failed: %v", err)
	}
	if slide.Title != "Key Highlights" {
		t.Errorf("title = %q, want %q", slide.Title, "Key Highlights")
	}
	if len(slide.Bullets) != 2 || slide.Bullets[0] != "Revenue up" {
		t.Errorf("bullets changed by a title-only update: %v", slide.Bullets)
	}
	if m.SlideCount() != 3 {
		t.Errorf("SlideCount() = %d after update, want 3", m.SlideCount())
	}
}

func TestUpdateSlideNormalizesType(t *testing.T) {
	m := NewModel()
	if err := m.Replace(threeSlideOutline()); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	bogus := "executive_summary"
	if err := m.UpdateSlide(1, SlideUpdate{SlideType: &bogus}); err != nil {
		t.Fatalf("UpdateSlide() failed: %v", err)
	}
	slide, _ := m.GetSlide(1)
	if slide.SlideType != SlideTypeContent {
		t.Errorf("unknown type normalized to %q, want %q", slide.SlideType, SlideTypeContent)
	}
}

func TestSlideIndexOutOfRange(t *testing.T) {
	m := NewModel()
	if err := m.Replace(threeSlideOutline()); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	title := "x"
	err := m.UpdateSlide(3, SlideUpdate{Title: &title})
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("UpdateSlide(3) error = %v, want OutOfRangeError", err)
	}
	if oor.Index != 3 || oor.Count != 3 {
		t.Errorf("OutOfRangeError = %+v, want Index 3 Count 3", oor)
	}

	if _, err := m.GetSlide(-1); err == nil {
		t.Error("GetSlide(-1) should fail")
	}

	// Empty model: every index is out of range.
	empty := NewModel()
	if err := empty.UpdateSlide(0, SlideUpdate{Title: &title}); err == nil {
		t.Error("UpdateSlide() on an empty model should fail")
	}
}
