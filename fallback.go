package computo

import (
	"regexp"
	"strings"
)

var bareNumberLead = regexp.MustCompile(`^\d+\s+`)

// SegmentFallback is the last-resort strategy: accumulate lines into a
// running buffer and seal it as a chunk whenever the totals keyword appears,
// the buffer holds more than a handful of lines, and the buffer opens with a
// bare leading number. Buffers failing the leading-number check are dropped,
// not merged into the next chunk.
func SegmentFallback(lines []NormalizedLine, cfg Config) []ItemChunk {
	var sealed [][]NormalizedLine
	var buffer []NormalizedLine
	for _, line := range lines {
		buffer = append(buffer, line)
		if strings.Contains(line.Text, cfg.Keyword) && len(buffer) > cfg.FallbackMinLines {
			if bareNumberLead.MatchString(buffer[0].Text) {
				sealed = append(sealed, buffer)
			}
			buffer = nil
		}
	}
	return buildChunks(sealed, StrategyFallback)
}
