package outline

import "strings"

const maxFallbackBullets = 8

// Synthesize builds a minimal outline directly from raw note text. It is the
// degraded path used when the LLM gateway fails: the user still gets a deck
// to edit instead of an error. The result always has at least one slide, so
// it is safe to hand to Model.Replace.
func Synthesize(notes string) Outline {
	title := "Presentation"
	var bullets []string

	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line == "" {
			continue
		}
		if title == "Presentation" {
			// First non-empty line doubles as the deck title.
			title = truncateLine(line, 80)
			continue
		}
		if len(bullets) < maxFallbackBullets {
			bullets = append(bullets, truncateLine(line, 120))
		}
	}

	o := Outline{
		Title: title,
		Slides: []Slide{
			{Title: title, SlideType: SlideTypeTitle},
		},
		EstimatedDuration: "5 minutes",
	}
	if len(bullets) > 0 {
		o.Slides = append(o.Slides, Slide{
			Title:     "Key Points",
			Bullets:   bullets,
			SlideType: SlideTypeContent,
		})
	}
	return o
}

func truncateLine(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
