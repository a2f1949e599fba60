package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidecraft/outline"
)

// GoPPTService renders slide decks using GoPPT (pure Go, zero dependencies).
type GoPPTService struct{}

// NewGoPPTService creates a new GoPPT deck renderer.
func NewGoPPTService() *GoPPTService {
	return &GoPPTService{}
}

// Deck layout constants, 16:9 widescreen.
const (
	emuPerInch = 914400

	deckMarginLeft   = int64(0.4 * emuPerInch)
	deckContentWidth = int64(9.2 * emuPerInch)
	deckSlideWidth   = int64(10.0 * emuPerInch)
	deckSlideHeight  = int64(5.625 * emuPerInch)

	deckFontTitle    = 36
	deckFontSubtitle = 20
	deckFontHeading  = 28
	deckFontSection  = 32
	deckFontBody     = 14
	deckFontSmall    = 12
	deckFontFooter   = 9
)

const maxImagesPerSlide = 2

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// RenderDeck renders the whole outline into .pptx bytes in one pass. images
// maps slide index to the image payloads assigned to that slide; the
// renderer trusts the caller to pass only in-range indices (the assignment
// projector already excludes dangling ones).
func (s *GoPPTService) RenderDeck(o outline.Outline, images map[int][][]byte) ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = o.Title
	p.GetDocumentProperties().Creator = "SlideCraft"

	for i, sl := range o.Slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}

		switch sl.SlideType {
		case outline.SlideTypeTitle:
			s.renderTitleSlide(slide, o, sl)
		case outline.SlideTypeSection:
			s.renderSectionSlide(slide, sl)
		default:
			s.renderContentSlide(slide, sl, images[i])
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

// renderTitleSlide renders the opening slide: accent bars, deck title, and
// the estimated duration as subtitle.
func (s *GoPPTService) renderTitleSlide(slide *ppt.Slide, o outline.Outline, sl outline.Slide) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(deckSlideWidth).SetHeight(int64(0.15 * emuPerInch))
	topBar.SetFill(solidFill("FF3B82F6"))

	title := sl.Title
	if title == "" {
		title = o.Title
	}
	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(1.8 * emuPerInch))
	titleShape.SetWidth(deckContentWidth).SetHeight(int64(1.0 * emuPerInch))
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(deckFontTitle).SetBold(true).SetColor(ppt.NewColor("FF1E40AF"))
	alignCenter(titleShape.GetActiveParagraph())

	if o.EstimatedDuration != "" {
		subShape := slide.CreateRichTextShape()
		subShape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(3.0 * emuPerInch))
		subShape.SetWidth(deckContentWidth).SetHeight(int64(0.5 * emuPerInch))
		subTr := subShape.CreateTextRun(o.EstimatedDuration)
		subTr.GetFont().SetSize(deckFontSubtitle).SetColor(ppt.NewColor("FF475569"))
		alignCenter(subShape.GetActiveParagraph())
	}

	tsShape := slide.CreateRichTextShape()
	tsShape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(4.4 * emuPerInch))
	tsShape.SetWidth(deckContentWidth).SetHeight(int64(0.4 * emuPerInch))
	tsTr := tsShape.CreateTextRun(time.Now().Format("January 2, 2006"))
	tsTr.GetFont().SetSize(deckFontSmall).SetColor(ppt.NewColor("FF94A3B8"))
	alignCenter(tsShape.GetActiveParagraph())

	bottomBar := slide.CreateRichTextShape()
	bottomBar.SetOffsetX(0).SetOffsetY(int64(5.5 * emuPerInch))
	bottomBar.SetWidth(deckSlideWidth).SetHeight(int64(0.125 * emuPerInch))
	bottomBar.SetFill(solidFill("FF3B82F6"))

	s.addPresenterFooter(slide, sl.PresenterNotes)
}

// renderSectionSlide renders a divider slide with just the section name.
func (s *GoPPTService) renderSectionSlide(slide *ppt.Slide, sl outline.Slide) {
	bar := slide.CreateRichTextShape()
	bar.SetOffsetX(0).SetOffsetY(int64(2.1 * emuPerInch))
	bar.SetWidth(deckSlideWidth).SetHeight(int64(0.06 * emuPerInch))
	bar.SetFill(solidFill("FF3B82F6"))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(2.3 * emuPerInch))
	titleShape.SetWidth(deckContentWidth).SetHeight(int64(1.0 * emuPerInch))
	tr := titleShape.CreateTextRun(sl.Title)
	tr.GetFont().SetSize(deckFontSection).SetBold(true).SetColor(ppt.NewColor("FF1E40AF"))
	alignCenter(titleShape.GetActiveParagraph())

	s.addPresenterFooter(slide, sl.PresenterNotes)
}

// renderContentSlide renders a header, the body lines (bullets then free
// text), and up to maxImagesPerSlide assigned images.
func (s *GoPPTService) renderContentSlide(slide *ppt.Slide, sl outline.Slide, slideImages [][]byte) {
	s.addSlideHeader(slide, sl.Title, headerBadge(sl.SlideType))

	hasImages := len(slideImages) > 0

	bodyHeight := 4.3
	if hasImages {
		bodyHeight = 2.0
	}

	lines := s.layoutBodyLines(sl)
	if len(lines) > 0 {
		contentShape := slide.CreateRichTextShape()
		contentShape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(1.0 * emuPerInch))
		contentShape.SetWidth(deckContentWidth).SetHeight(int64(bodyHeight * emuPerInch))

		for i, line := range lines {
			if i > 0 {
				contentShape.CreateParagraph()
			}
			tr := contentShape.CreateTextRun(line)
			tr.GetFont().SetSize(deckFontBody).SetColor(ppt.NewColor("FF334155"))
		}
	}

	if hasImages {
		s.placeImages(slide, slideImages)
	}

	s.addPresenterFooter(slide, sl.PresenterNotes)
}

// addPresenterFooter renders the slide's presenter notes as a small footer
// line along the bottom edge. Notes are advisory speaking cues, so they get
// the footer treatment rather than a body block.
func (s *GoPPTService) addPresenterFooter(slide *ppt.Slide, notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}
	lines := s.wrapText(notes, 140)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(5.2 * emuPerInch))
	shape.SetWidth(deckContentWidth).SetHeight(int64(0.35 * emuPerInch))
	for i, line := range lines {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(line)
		tr.GetFont().SetSize(deckFontFooter).SetColor(ppt.NewColor("FF94A3B8"))
	}
}

// placeImages lays the slide's images in a row across the lower half.
func (s *GoPPTService) placeImages(slide *ppt.Slide, slideImages [][]byte) {
	if len(slideImages) > maxImagesPerSlide {
		slideImages = slideImages[:maxImagesPerSlide]
	}

	imgY := int64(3.1 * emuPerInch)
	imgHeight := int64(2.3 * emuPerInch)
	imgWidth := int64(4.1 * emuPerInch)
	spacing := int64(0.2 * emuPerInch)
	if len(slideImages) == 1 {
		imgWidth = int64(6.0 * emuPerInch)
	}

	rowWidth := int64(len(slideImages))*imgWidth + int64(len(slideImages)-1)*spacing
	x := (deckSlideWidth - rowWidth) / 2

	for _, data := range slideImages {
		if len(data) == 0 {
			continue
		}
		imgShape := slide.CreateDrawingShape()
		imgShape.SetImageData(data, detectImageMIME(data))
		imgShape.SetOffsetX(x).SetOffsetY(imgY)
		imgShape.SetWidth(imgWidth).SetHeight(imgHeight)
		x += imgWidth + spacing
	}
}

// addSlideHeader adds the accent bar and heading shared by content slides.
func (s *GoPPTService) addSlideHeader(slide *ppt.Slide, title string, badge string) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(deckSlideWidth).SetHeight(int64(0.08 * emuPerInch))
	topBar.SetFill(solidFill("FF3B82F6"))

	heading := title
	if badge != "" {
		heading = badge + "  " + title
	}
	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(deckMarginLeft).SetOffsetY(int64(0.3 * emuPerInch))
	titleShape.SetWidth(deckContentWidth).SetHeight(int64(0.6 * emuPerInch))
	tr := titleShape.CreateTextRun(heading)
	tr.GetFont().SetSize(deckFontHeading).SetBold(true).SetColor(ppt.NewColor("FF1E40AF"))
}

// layoutBodyLines flattens a slide's bullets and free text into wrapped
// display lines. Bullets get a leading dot marker.
func (s *GoPPTService) layoutBodyLines(sl outline.Slide) []string {
	var lines []string
	for _, b := range sl.Bullets {
		for j, w := range s.wrapText(b, 85) {
			if j == 0 {
				lines = append(lines, "• "+w)
			} else {
				lines = append(lines, "   "+w)
			}
		}
	}
	for _, c := range sl.Content {
		lines = append(lines, s.wrapText(c, 95)...)
	}
	return lines
}

// headerBadge returns the small advisory prefix for meeting-minute slide
// types; plain content slides get none.
func headerBadge(t outline.SlideType) string {
	switch t {
	case outline.SlideTypeAgenda:
		return "Agenda:"
	case outline.SlideTypeDecisions:
		return "Decisions:"
	case outline.SlideTypeActions:
		return "Action Items:"
	case outline.SlideTypeConclusion:
		return "Wrap-up:"
	default:
		return ""
	}
}

// detectImageMIME sniffs the payload's content type, defaulting to PNG.
func detectImageMIME(data []byte) string {
	switch ct := http.DetectContentType(data); ct {
	case "image/jpeg", "image/gif", "image/png":
		return ct
	default:
		return "image/png"
	}
}

// wrapText wraps text to fit within maxLen characters.
func (s *GoPPTService) wrapText(text string, maxLen int) []string {
	if len(text) == 0 {
		return []string{""}
	}

	var lines []string
	runes := []rune(text)

	if containsCJK(text) {
		maxLen = maxLen * 2 / 3
	}

	for len(runes) > 0 {
		if len(runes) <= maxLen {
			lines = append(lines, string(runes))
			break
		}

		breakPoint := maxLen
		for i := maxLen; i > maxLen/2; i-- {
			if runes[i] == ' ' || runes[i] == '，' || runes[i] == '。' || runes[i] == '、' || runes[i] == '；' {
				breakPoint = i + 1
				break
			}
		}

		lines = append(lines, strings.TrimRight(string(runes[:breakPoint]), " "))
		runes = runes[breakPoint:]

		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}

	return lines
}

// containsCJK checks if text contains CJK ideographs.
func containsCJK(text string) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
