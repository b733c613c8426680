package llm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	defaultScore     = 50
	defaultReasoning = "Analysis completed"
)

var (
	scoreRe     = regexp.MustCompile(`"score"\s*:\s*(\d+)`)
	reasoningRe = regexp.MustCompile(`"reasoning"\s*:\s*"([^"]+)"`)
	risksRe     = regexp.MustCompile(`(?s)"risks"\s*:\s*\[(.*?)\]`)
	fenceRe     = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// ParseFeasibility extracts a Feasibility from model output. Strict JSON is tried
// first (inside a code fence when present), then field-by-field regex extraction.
// Missing fields take their defaults and the score is clamped to 0..100.
func ParseFeasibility(text string) Feasibility {
	body := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(body); m != nil {
		body = strings.TrimSpace(m[1])
	}
	if start, end := strings.Index(body, "{"), strings.LastIndex(body, "}"); start >= 0 && end > start {
		var strict struct {
			Score     *float64 `json:"score"`
			Reasoning string   `json:"reasoning"`
			Risks     []string `json:"risks"`
		}
		if err := sonic.UnmarshalString(body[start:end+1], &strict); err == nil && strict.Score != nil {
			return normalized(Feasibility{
				Score:     int(*strict.Score),
				Reasoning: strict.Reasoning,
				Risks:     strict.Risks,
			})
		}
	}
	return normalized(extract(text))
}

func extract(text string) Feasibility {
	out := Feasibility{Score: defaultScore}
	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.Score = n
		}
	}
	if m := reasoningRe.FindStringSubmatch(text); m != nil {
		out.Reasoning = m[1]
	}
	if m := risksRe.FindStringSubmatch(text); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			r := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"'`))
			if r != "" {
				out.Risks = append(out.Risks, r)
			}
		}
	}
	return out
}

func normalized(f Feasibility) Feasibility {
	if f.Score < 0 {
		f.Score = 0
	}
	if f.Score > 100 {
		f.Score = 100
	}
	if strings.TrimSpace(f.Reasoning) == "" {
		f.Reasoning = defaultReasoning
	}
	if f.Risks == nil {
		f.Risks = []string{}
	}
	return f
}
