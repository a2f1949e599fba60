package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"slidecraft/outline"
)

// rawOutline mirrors outline.Outline but keeps slideType as a free string so
// a sloppy model reply ("Content", "bullet_points", ...) normalizes instead
// of failing.
type rawOutline struct {
	Title             string     `json:"title"`
	EstimatedDuration string     `json:"estimatedDuration"`
	Slides            []rawSlide `json:"slides"`
}

type rawSlide struct {
	Title          string   `json:"title"`
	Bullets        []string `json:"bullets"`
	Content        []string `json:"content"`
	SlideType      string   `json:"slideType"`
	PresenterNotes string   `json:"presenterNotes"`
}

// ParseOutlineReply extracts the JSON outline from an LLM reply. Models
// routinely wrap JSON in markdown fences or add lead-in prose, so the parser
// works on the outermost {...} span rather than the raw reply.
func ParseOutlineReply(reply string) (outline.Outline, error) {
	jsonText := extractJSONObject(reply)
	if jsonText == "" {
		return outline.Outline{}, fmt.Errorf("no JSON object found in model reply")
	}

	var raw rawOutline
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return outline.Outline{}, fmt.Errorf("failed to parse outline JSON: %w", err)
	}
	if len(raw.Slides) == 0 {
		return outline.Outline{}, fmt.Errorf("model reply contains no slides")
	}

	o := outline.Outline{
		Title:             strings.TrimSpace(raw.Title),
		EstimatedDuration: strings.TrimSpace(raw.EstimatedDuration),
	}
	for _, rs := range raw.Slides {
		title := strings.TrimSpace(rs.Title)
		if title == "" {
			// An untitled slide would fail export validation anyway;
			// drop it rather than produce a deck that cannot export.
			continue
		}
		o.Slides = append(o.Slides, outline.Slide{
			Title:          title,
			Bullets:        trimAll(rs.Bullets),
			Content:        trimAll(rs.Content),
			SlideType:      outline.NormalizeSlideType(strings.ToLower(strings.TrimSpace(rs.SlideType))),
			PresenterNotes: strings.TrimSpace(rs.PresenterNotes),
		})
	}
	if len(o.Slides) == 0 {
		return outline.Outline{}, fmt.Errorf("model reply contains no usable slides")
	}
	if o.Title == "" {
		o.Title = o.Slides[0].Title
	}
	return o, nil
}

// extractJSONObject returns the outermost {...} span of s, stripping any
// markdown code fences first.
func extractJSONObject(s string) string {
	s = strings.ReplaceAll(s, "```json", "```")
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			s = rest[:j]
		} else {
			s = rest
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
