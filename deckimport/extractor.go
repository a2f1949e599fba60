// Package deckimport extracts an editable outline from an existing .pptx
// file so an uploaded deck can seed a session the same way AI-generated
// notes do. Only slide text is recovered; layout, theming and media are the
// renderer's business on the way back out.
package deckimport

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"slidecraft/outline"
)

// ErrNotPresentation is returned when the file is not a readable .pptx or
// contains no slides.
var ErrNotPresentation = errors.New("not a PowerPoint file or no slides found")

var slidePathRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ExtractOutline reads the .pptx at path and converts its slide text into an
// outline: one outline slide per presentation slide, title from the title
// placeholder, remaining text paragraphs as bullets.
func ExtractOutline(path string) (outline.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return outline.Outline{}, fmt.Errorf("failed to read presentation file: %w", err)
	}
	return ExtractOutlineFromBytes(data)
}

// ExtractOutlineFromBytes converts in-memory .pptx bytes into an outline.
func ExtractOutlineFromBytes(data []byte) (outline.Outline, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return outline.Outline{}, ErrNotPresentation
	}

	type numberedFile struct {
		num  int
		file *zip.File
	}
	var slideFiles []numberedFile
	for _, f := range zr.File {
		m := slidePathRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slideFiles = append(slideFiles, numberedFile{num: n, file: f})
	}
	if len(slideFiles) == 0 {
		return outline.Outline{}, ErrNotPresentation
	}
	sort.Slice(slideFiles, func(i, j int) bool { return slideFiles[i].num < slideFiles[j].num })

	var o outline.Outline
	for i, sf := range slideFiles {
		rc, err := sf.file.Open()
		if err != nil {
			return outline.Outline{}, fmt.Errorf("failed to open slide %d: %w", sf.num, err)
		}
		shapes, err := parseSlideShapes(rc)
		rc.Close()
		if err != nil {
			return outline.Outline{}, fmt.Errorf("failed to parse slide %d: %w", sf.num, err)
		}

		slide := buildSlide(shapes, i, len(slideFiles))
		o.Slides = append(o.Slides, slide)
	}

	o.Title = o.Slides[0].Title
	return o, nil
}

// shapeText is one text-bearing shape: its placeholder role and its
// paragraphs in document order.
type shapeText struct {
	isTitle    bool
	paragraphs []string
}

// parseSlideShapes walks the slide XML token stream and gathers the text of
// every shape. Namespace prefixes vary between producers, so matching is by
// local element name (sp, ph, p, t).
func parseSlideShapes(r io.Reader) ([]shapeText, error) {
	dec := xml.NewDecoder(r)

	var shapes []shapeText
	var current *shapeText
	var para strings.Builder
	inParagraph := false

	flushParagraph := func() {
		if current == nil || !inParagraph {
			return
		}
		if text := strings.TrimSpace(para.String()); text != "" {
			current.paragraphs = append(current.paragraphs, text)
		}
		para.Reset()
		inParagraph = false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				shapes = append(shapes, shapeText{})
				current = &shapes[len(shapes)-1]
			case "ph":
				if current != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "type" && (attr.Value == "title" || attr.Value == "ctrTitle") {
							current.isTitle = true
						}
					}
				}
			case "p":
				flushParagraph()
				if current != nil {
					inParagraph = true
				}
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, err
				}
				if current != nil {
					if !inParagraph {
						inParagraph = true
					}
					para.WriteString(text)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				flushParagraph()
			case "sp":
				flushParagraph()
				current = nil
			}
		}
	}
	flushParagraph()
	return shapes, nil
}

// buildSlide assembles an outline slide from the extracted shapes: the title
// placeholder wins the title, every other paragraph becomes a bullet. The
// first and last slides of the deck get advisory types.
func buildSlide(shapes []shapeText, index, total int) outline.Slide {
	var title string
	var bullets []string

	for _, sh := range shapes {
		if sh.isTitle && title == "" && len(sh.paragraphs) > 0 {
			title = strings.Join(sh.paragraphs, " ")
			continue
		}
		bullets = append(bullets, sh.paragraphs...)
	}
	if title == "" && len(bullets) > 0 {
		title, bullets = bullets[0], bullets[1:]
	}
	if title == "" {
		title = fmt.Sprintf("Slide %d", index+1)
	}

	slideType := outline.SlideTypeContent
	switch {
	case index == 0:
		slideType = outline.SlideTypeTitle
	case index == total-1 && total > 2:
		slideType = outline.SlideTypeConclusion
	}

	return outline.Slide{
		Title:     title,
		Bullets:   bullets,
		SlideType: slideType,
	}
}
