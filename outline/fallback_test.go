package outline

import (
	"strings"
	"testing"
)

func TestSynthesizeFromNotes(t *testing.T) {
	notes := "Team Offsite Recap\n\n- Agreed on Q4 roadmap\n* Budget approved\n• Hiring plan frozen\n"
	o := Synthesize(notes)

	if o.Title != "Team Offsite Recap" {
		t.Errorf("title = %q", o.Title)
	}
	if len(o.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(o.Slides))
	}
	if o.Slides[0].SlideType != SlideTypeTitle {
		t.Errorf("first slide type = %q", o.Slides[0].SlideType)
	}
	want := []string{"Agreed on Q4 roadmap", "Budget approved", "Hiring plan frozen"}
	got := o.Slides[1].Bullets
	if len(got) != len(want) {
		t.Fatalf("bullets = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bullet %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSynthesizeAlwaysYieldsValidOutline(t *testing.T) {
	for _, notes := range []string{"", "   \n\n  ", "only one line"} {
		o := Synthesize(notes)
		if len(o.Slides) == 0 {
			t.Errorf("Synthesize(%q) produced no slides", notes)
		}
		m := NewModel()
		if err := m.Replace(o); err != nil {
			t.Errorf("Synthesize(%q) result rejected by Replace(): %v", notes, err)
		}
	}
}

func TestSynthesizeCapsBullets(t *testing.T) {
	var b strings.Builder
	b.WriteString("Long Meeting\n")
	for i := 0; i < 20; i++ {
		b.WriteString("point\n")
	}
	o := Synthesize(b.String())
	if len(o.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(o.Slides))
	}
	if n := len(o.Slides[1].Bullets); n != maxFallbackBullets {
		t.Errorf("bullets capped at %d, want %d", n, maxFallbackBullets)
	}
}

func TestSynthesizeTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("a", 200)
	o := Synthesize(long)
	if len([]rune(o.Title)) > 80 {
		t.Errorf("title not truncated: %d runes", len([]rune(o.Title)))
	}
	if !strings.HasSuffix(o.Title, "...") {
		t.Errorf("truncated title missing ellipsis: %q", o.Title)
	}
}
