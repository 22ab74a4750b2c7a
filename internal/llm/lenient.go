package llm

import (
	"strings"
)

// IsReject reports whether the model answered with the reject sentinel rather
// than a JSON object.
func IsReject(content string) bool {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == RejectSentinel {
		return true
	}
	// Some models wrap the sentinel in quotes or prose.
	return !strings.Contains(trimmed, "{") && strings.Contains(trimmed, RejectSentinel)
}

// ExtractJSONPayload pulls the JSON object out of a model answer that may be
// wrapped in markdown code fences or surrounded by stray prose. Returns the
// input unchanged when no object boundaries are found.
func ExtractJSONPayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end < start {
		return trimmed
	}
	return trimmed[start : end+1]
}

func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// A fence may carry a language tag on the first line.
	if nl := strings.Index(trimmed, "\n"); nl >= 0 {
		first := strings.TrimSpace(trimmed[:nl])
		if first == "json" || first == "" {
			trimmed = trimmed[nl+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
