package agent

import (
	"strings"
	"testing"

	"slidecraft/outline"
)

func TestParseOutlineReplyPlainJSON(t *testing.T) {
	reply := `{
	  "title": "Q3 Results",
	  "estimatedDuration": "10 minutes",
	  "slides": [
	    {"title": "Q3 Results", "slideType": "title"},
	    {"title": "Revenue", "bullets": ["Up 12%", "APAC strongest"], "slideType": "content", "presenterNotes": "pause here"},
	    {"title": "Outlook", "slideType": "conclusion"}
	  ]
	}`

	o, err := ParseOutlineReply(reply)
	if err != nil {
		t.Fatalf("ParseOutlineReply() failed: %v", err)
	}
	if o.Title != "Q3 Results" || len(o.Slides) != 3 {
		t.Fatalf("outline = %q with %d slides", o.Title, len(o.Slides))
	}
	if o.Slides[1].PresenterNotes != "pause here" {
		t.Errorf("presenter notes = %q", o.Slides[1].PresenterNotes)
	}
	if o.Slides[2].SlideType != outline.SlideTypeConclusion {
		t.Errorf("last slide type = %q", o.Slides[2].SlideType)
	}
}

func TestParseOutlineReplyStripsFencesAndProse(t *testing.T) {
	reply := "Here is your outline:\n```json\n" +
		`{"title": "Demo", "slides": [{"title": "Demo", "slideType": "title"}]}` +
		"\n```\nLet me know if you want changes."

	o, err := ParseOutlineReply(reply)
	if err != nil {
		t.Fatalf("ParseOutlineReply() failed: %v", err)
	}
	if o.Title != "Demo" || len(o.Slides) != 1 {
		t.Errorf("outline = %+v", o)
	}
}

func TestParseOutlineReplyNormalizesSlideTypes(t *testing.T) {
	reply := `{"title": "T", "slides": [
	  {"title": "A", "slideType": "TITLE"},
	  {"title": "B", "slideType": "bullet_points"},
	  {"title": "C", "slideType": "Agenda"}
	]}`

	o, err := ParseOutlineReply(reply)
	if err != nil {
		t.Fatalf("ParseOutlineReply() failed: %v", err)
	}
	want := []outline.SlideType{outline.SlideTypeTitle, outline.SlideTypeContent, outline.SlideTypeAgenda}
	for i, w := range want {
		if o.Slides[i].SlideType != w {
			t.Errorf("slide %d type = %q, want %q", i, o.Slides[i].SlideType, w)
		}
	}
}

func TestParseOutlineReplyDropsUntitledSlides(t *testing.T) {
	reply := `{"slides": [
	  {"title": "  ", "bullets": ["orphaned"]},
	  {"title": "Kept"}
	]}`

	o, err := ParseOutlineReply(reply)
	if err != nil {
		t.Fatalf("ParseOutlineReply() failed: %v", err)
	}
	if len(o.Slides) != 1 || o.Slides[0].Title != "Kept" {
		t.Errorf("slides = %+v", o.Slides)
	}
	// Deck title falls back to the first surviving slide.
	if o.Title != "Kept" {
		t.Errorf("title = %q, want %q", o.Title, "Kept")
	}
}

func TestParseOutlineReplyRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"Sorry, I cannot create an outline for that.",
		`{"title": "No Slides", "slides": []}`,
		`{"slides": [{"title": ""}]}`,
		"{not json at all}",
	}
	for _, reply := range cases {
		if _, err := ParseOutlineReply(reply); err == nil {
			t.Errorf("ParseOutlineReply(%q) should fail", reply)
		}
	}
}

func TestBuildOutlinePrompt(t *testing.T) {
	p := BuildOutlinePrompt("Kickoff meeting notes", "en")
	if !strings.Contains(p, "Kickoff meeting notes") {
		t.Error("prompt missing the notes")
	}
	if !strings.Contains(p, `"slides"`) {
		t.Error("prompt missing the JSON schema")
	}
	if strings.Contains(p, "Write all slide text in language") {
		t.Error("english prompt should not carry a language rule")
	}

	fr := BuildOutlinePrompt("notes", "fr")
	if !strings.Contains(fr, `"fr"`) {
		t.Error("non-english prompt missing the language rule")
	}
}

func TestBuildOutlinePromptTruncatesLongNotes(t *testing.T) {
	notes := strings.Repeat("x", maxPromptNotesChars+5000)
	p := BuildOutlinePrompt(notes, "")
	if len([]rune(p)) > maxPromptNotesChars+2000 {
		t.Errorf("prompt not truncated: %d runes", len([]rune(p)))
	}
}
