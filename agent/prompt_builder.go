package agent

import (
	"fmt"
	"strings"
)

const maxPromptNotesChars = 12000

// BuildOutlinePrompt assembles the single-turn prompt asking the model for a
// strict-JSON slide outline. The schema in the prompt mirrors the
// outline.Outline JSON shape exactly so the reply can be unmarshalled
// without field mapping.
func BuildOutlinePrompt(notes string, language string) string {
	notes = strings.TrimSpace(notes)
	if runes := []rune(notes); len(runes) > maxPromptNotesChars {
		notes = string(runes[:maxPromptNotesChars])
	}

	var sb strings.Builder
	sb.WriteString("You are a presentation designer. Convert the notes below into a slide outline.\n\n")
	sb.WriteString("Respond with ONLY a JSON object, no prose, using this exact schema:\n")
	sb.WriteString(`{
  "title": "deck title",
  "estimatedDuration": "10 minutes",
  "slides": [
    {
      "title": "slide title",
      "bullets": ["point 1", "point 2"],
      "content": ["optional free-text paragraph"],
      "slideType": "title|content|conclusion|section|agenda|decisions|actions",
      "presenterNotes": "what the presenter should say"
    }
  ]
}` + "\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- The first slide is the title slide, the last a conclusion.\n")
	sb.WriteString("- Every slide needs a non-empty title.\n")
	sb.WriteString("- Use agenda/decisions/actions slide types when the notes are meeting minutes.\n")
	sb.WriteString("- 4 to 12 slides total, at most 6 bullets per slide.\n")
	if language != "" && language != "en" {
		sb.WriteString(fmt.Sprintf("- Write all slide text in language %q.\n", language))
	}
	sb.WriteString("\nNotes:\n")
	sb.WriteString(notes)
	return sb.String()
}
