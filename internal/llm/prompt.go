package llm

import (
	"fmt"
	"strings"
)

const feasibilitySystemPrompt = "You are a feasibility analyst. Output ONLY valid JSON."

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Any"
	}
	return s
}

func joinOrAny(list []string) string {
	if len(list) == 0 {
		return "Any"
	}
	return strings.Join(list, ", ")
}

// IdeaPrompt renders the generation prompt for attrs.
func IdeaPrompt(attrs IdeaAttributes) string {
	var b strings.Builder
	b.WriteString("You are a senior game designer. Create one original video game concept.\n\n")
	fmt.Fprintf(&b, "Genre: %s\n", joinOrAny(attrs.GenreList()))
	fmt.Fprintf(&b, "Platform: %s\n", joinOrAny(attrs.PlatformList()))
	fmt.Fprintf(&b, "Target audience: %s\n", orAny(attrs.TargetAudience))
	fmt.Fprintf(&b, "Core mechanic: %s\n", orAny(attrs.CoreMechanic))
	fmt.Fprintf(&b, "Art style: %s\n", orAny(attrs.ArtStyle))
	fmt.Fprintf(&b, "Monetization: %s\n\n", orAny(attrs.Monetization))
	b.WriteString("Respond in plain text with these sections:\n")
	b.WriteString("TITLE: <game title>\n")
	b.WriteString("PITCH: two or three sentences\n")
	b.WriteString("GAMEPLAY LOOP: the core loop\n")
	b.WriteString("KEY FEATURES: a short list\n")
	b.WriteString("VISUAL STYLE: one paragraph\n")
	b.WriteString("MONETIZATION: how it earns\n")
	b.WriteString("AUDIENCE FIT: why it suits the audience\n")
	b.WriteString("CONSIDERATIONS: production risks and open questions\n")
	return b.String()
}

// FeasibilityPrompt asks for a JSON score of idea.
func FeasibilityPrompt(idea string) string {
	return "Assess how feasible it is for a small indie team to build this game.\n" +
		"Return JSON exactly like {\"score\": <0-100>, \"reasoning\": \"<one paragraph>\", \"risks\": [\"<risk>\", ...]}.\n\n" +
		"Game idea:\n" + idea
}
