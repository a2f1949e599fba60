package deckimport

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"slidecraft/outline"
)

// slideXML renders a minimal slide part: an optional title placeholder shape
// plus one body shape per paragraph group.
func slideXML(title string, bullets ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?>`)
	sb.WriteString(`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><p:cSld><p:spTree>`)
	if title != "" {
		sb.WriteString(`<p:sp><p:nvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>`)
		sb.WriteString(`<p:txBody><a:p><a:r><a:t>` + title + `</a:t></a:r></a:p></p:txBody></p:sp>`)
	}
	if len(bullets) > 0 {
		sb.WriteString(`<p:sp><p:txBody>`)
		for _, b := range bullets {
			sb.WriteString(`<a:p><a:r><a:t>` + b + `</a:t></a:r></a:p>`)
		}
		sb.WriteString(`</p:txBody></p:sp>`)
	}
	sb.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return sb.String()
}

func buildPPTX(t *testing.T, slides ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, xml := range slides {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", i+1))
		if err != nil {
			t.Fatalf("zip create failed: %v", err)
		}
		if _, err := w.Write([]byte(xml)); err != nil {
			t.Fatalf("zip write failed: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close failed: %v", err)
	}
	return buf.Bytes()
}

func TestExtractOutlineFromBytes(t *testing.T) {
	data := buildPPTX(t,
		slideXML("Annual Report"),
		slideXML("Financials", "Revenue grew 8%", "Costs flat"),
		slideXML("Summary", "Strong year"),
	)

	o, err := ExtractOutlineFromBytes(data)
	if err != nil {
		t.Fatalf("ExtractOutlineFromBytes() failed: %v", err)
	}
	if o.Title != "Annual Report" {
		t.Errorf("deck title = %q", o.Title)
	}
	if len(o.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(o.Slides))
	}
	if o.Slides[0].SlideType != outline.SlideTypeTitle {
		t.Errorf("first slide type = %q", o.Slides[0].SlideType)
	}
	if o.Slides[2].SlideType != outline.SlideTypeConclusion {
		t.Errorf("last slide type = %q", o.Slides[2].SlideType)
	}
	got := o.Slides[1]
	if got.Title != "Financials" {
		t.Errorf("slide 1 title = %q", got.Title)
	}
	if len(got.Bullets) != 2 || got.Bullets[0] != "Revenue grew 8%" {
		t.Errorf("slide 1 bullets = %v", got.Bullets)
	}
}

func TestExtractOutlineOrdersSlidesNumerically(t *testing.T) {
	// slide10.xml must sort after slide2.xml, not lexically before it.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"ppt/slides/slide10.xml", "ppt/slides/slide2.xml", "ppt/slides/slide1.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create failed: %v", err)
		}
		title := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/"), ".xml")
		if _, err := w.Write([]byte(slideXML(title))); err != nil {
			t.Fatalf("zip write failed: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close failed: %v", err)
	}

	o, err := ExtractOutlineFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("ExtractOutlineFromBytes() failed: %v", err)
	}
	wantOrder := []string{"slide1", "slide2", "slide10"}
	for i, w := range wantOrder {
		if o.Slides[i].Title != w {
			t.Errorf("slide %d title = %q, want %q", i, o.Slides[i].Title, w)
		}
	}
}

func TestExtractOutlineUntitledSlideFallsBackToFirstParagraph(t *testing.T) {
	data := buildPPTX(t, slideXML("", "Promoted Title", "Stays a bullet"))
	o, err := ExtractOutlineFromBytes(data)
	if err != nil {
		t.Fatalf("ExtractOutlineFromBytes() failed: %v", err)
	}
	s := o.Slides[0]
	if s.Title != "Promoted Title" {
		t.Errorf("title = %q", s.Title)
	}
	if len(s.Bullets) != 1 || s.Bullets[0] != "Stays a bullet" {
		t.Errorf("bullets = %v", s.Bullets)
	}
}

func TestExtractOutlineRejectsNonPresentations(t *testing.T) {
	if _, err := ExtractOutlineFromBytes([]byte("this is not a zip")); !errors.Is(err, ErrNotPresentation) {
		t.Errorf("non-zip error = %v, want ErrNotPresentation", err)
	}

	// Valid zip, but no slide parts.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/document.xml")
	w.Write([]byte("<doc/>"))
	zw.Close()
	if _, err := ExtractOutlineFromBytes(buf.Bytes()); !errors.Is(err, ErrNotPresentation) {
		t.Errorf("slideless zip error = %v, want ErrNotPresentation", err)
	}
}
