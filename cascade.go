package computo

import (
	"regexp"
	"strings"
)

// cascadePattern is one candidate item-start detector tried by the generic
// cascade. exclude vetoes lines the pattern matches but must not split on.
type cascadePattern struct {
	name    string
	start   *regexp.Regexp
	exclude *regexp.Regexp
}

// Candidate start-of-item patterns, in trial order. Text is normalized before
// the cascade runs, so fraction numbers appear as "1/17", not "1 / 17".
var cascadePatterns = []cascadePattern{
	{
		name:  "fraction-prefix",
		start: regexp.MustCompile(`^\d+/\d+\s+[A-Za-z]`),
	},
	{
		name:  "bare-number-prefix",
		start: regexp.MustCompile(`^\d+\s+[A-Z]`),
		// A leading 3-digit token is a wrapped reference code tail, see the
		// tabular strategy.
		exclude: regexp.MustCompile(`^\d{3}\s`),
	},
	{
		name:  "tariff-code-prefix",
		start: regexp.MustCompile(`^\d+\s+\d+\.\w+`),
	},
}

func (p cascadePattern) matches(text string) bool {
	if !p.start.MatchString(text) {
		return false
	}
	if p.exclude != nil && p.exclude.MatchString(text) {
		return false
	}
	return true
}

// SegmentCascade tries each candidate pattern against the whole line
// sequence, splitting at its match positions and keeping only segments that
// contain the totals keyword and exceed the minimum length. The pattern that
// yields the most valid segments wins.
func SegmentCascade(lines []NormalizedLine, cfg Config) []ItemChunk {
	var best [][]NormalizedLine
	for _, pattern := range cascadePatterns {
		segments := splitOnPattern(lines, pattern)
		valid := segments[:0:0]
		for _, segment := range segments {
			if chunkTextLen(segment) > cfg.GenericMinChunkLen && containsKeyword(segment, cfg.Keyword) {
				valid = append(valid, segment)
			}
		}
		if len(valid) > len(best) {
			best = valid
		}
	}
	return buildChunks(best, StrategyCascade)
}

// splitOnPattern partitions lines at every line the pattern accepts as an
// item start. Lines before the first start form their own leading segment.
func splitOnPattern(lines []NormalizedLine, pattern cascadePattern) [][]NormalizedLine {
	var segments [][]NormalizedLine
	var current []NormalizedLine
	for _, line := range lines {
		if pattern.matches(line.Text) && len(current) > 0 {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

func containsKeyword(lines []NormalizedLine, keyword string) bool {
	for _, line := range lines {
		if strings.Contains(line.Text, keyword) {
			return true
		}
	}
	return false
}
