package computo

import (
	"regexp"
	"strings"
)

// A fraction-numbered item start: "19/35 4033", "1/1 Rimozione". The token
// after the fraction must be another number or an uppercase letter, otherwise
// the fraction is a measurement, not an item number.
var fractionItemStart = regexp.MustCompile(`^\d+/\d+(\s+\d|\s+[A-Z])`)

// SegmentFraction scans for fraction-numbered item starts. A chunk closes
// either when the next start is found or eagerly as soon as a totals-keyword
// line is seen inside it; the accumulator reopens empty afterward.
func SegmentFraction(lines []NormalizedLine, cfg Config) []ItemChunk {
	var sealed [][]NormalizedLine
	var open []NormalizedLine

	seal := func() {
		if len(open) > 0 && chunkTextLen(open) > cfg.GenericMinChunkLen {
			sealed = append(sealed, open)
		}
		open = nil
	}

	for _, line := range lines {
		if fractionItemStart.MatchString(line.Text) {
			seal()
			open = []NormalizedLine{line}
			continue
		}
		if len(open) == 0 {
			continue
		}
		open = append(open, line)
		if strings.Contains(line.Text, cfg.Keyword) {
			seal()
		}
	}
	seal()

	return buildChunks(sealed, StrategyFraction)
}
