package computo

import (
	"regexp"
	"strconv"
	"strings"
)

// tabularState is the explicit state of the tabular scan.
type tabularState int

const (
	seekingHeader tabularState = iota
	inDataSection
)

// Section header lines that open the data section of a tabular document.
var sectionHeaders = []string{
	descriptionMarker,
	"LAVORI A CORPO",
}

var (
	// A line-leading 3-digit token is the wrapped tail of a reference code
	// such as "01.A01.A65." followed by "010"; it visually resembles a new
	// item number but must never start one.
	refCodeTail = regexp.MustCompile(`^\d{3}(\s|$)`)

	mainItemStart = regexp.MustCompile(`^([1-9]\d?)\s+([A-Z][a-zA-Z]{3,})`)
	fractionStart = regexp.MustCompile(`^([1-9]\d?)/\d+`)
	// Known item numbers that legitimately pair with a lowercase lead word.
	specialCaseStart = regexp.MustCompile(`^(13|37|74)\s+(cemento|metalli|legno)`)
)

// Lead words after an item number that indicate a sub-line or circuit
// continuation, not a new top-level item.
var leadWordBlacklist = []string{"circuit", "linea", "sotto"}

// Carry-forward boilerplate that survives normalization on some variants.
var continuationBlacklist = []string{
	"A R I P O R T A R E",
	"R I P O R T O",
	"COMMITTENTE",
	"Pag.",
}

const maxItemNumber = 100

// tabularAccumulator threads the scan state through the fold over the line
// sequence. Sealed chunks and the still-open chunk are both part of the
// value; nothing is mutated outside it.
type tabularAccumulator struct {
	state  tabularState
	open   []NormalizedLine
	sealed [][]NormalizedLine
}

// SegmentTabular runs the tabular-layout state machine over the normalized
// line sequence and returns one chunk per recognized work item.
func SegmentTabular(lines []NormalizedLine, cfg Config) []ItemChunk {
	acc := tabularAccumulator{state: seekingHeader}
	for _, line := range lines {
		switch acc.state {
		case seekingHeader:
			acc = stepSeekingHeader(acc, line)
		case inDataSection:
			acc = stepInDataSection(acc, line, cfg)
		}
	}
	acc = sealOpenChunk(acc, cfg.TabularMinChunkLen)
	return buildChunks(acc.sealed, StrategyTabular)
}

// stepSeekingHeader waits for a section header before collecting anything.
func stepSeekingHeader(acc tabularAccumulator, line NormalizedLine) tabularAccumulator {
	if isSectionHeader(line.Text) {
		acc.state = inDataSection
	}
	return acc
}

// stepInDataSection classifies one data-section line as a reference-code
// continuation, a new-item start, or a plain continuation of the open chunk.
func stepInDataSection(acc tabularAccumulator, line NormalizedLine, cfg Config) tabularAccumulator {
	if isSectionHeader(line.Text) {
		return acc
	}

	if refCodeTail.MatchString(line.Text) {
		if len(acc.open) > 0 {
			acc.open = append(acc.open, line)
		}
		return acc
	}

	if start, valid := classifyItemStart(line.Text); start {
		if valid {
			acc = sealOpenChunk(acc, cfg.TabularMinChunkLen)
			acc.open = []NormalizedLine{line}
			return acc
		}
		// Blacklisted lead word: a sub-item line, keep it in the open chunk.
		if len(acc.open) > 0 {
			acc.open = append(acc.open, line)
		}
		return acc
	}

	if len(acc.open) > 0 && !isBlacklistedContinuation(line.Text) {
		acc.open = append(acc.open, line)
	}
	return acc
}

// classifyItemStart reports whether the line looks like the start of a work
// item, and whether that start is valid (in-range number, lead word allowed).
func classifyItemStart(text string) (start, valid bool) {
	if m := mainItemStart.FindStringSubmatch(text); m != nil {
		number, _ := strconv.Atoi(m[1])
		if number > maxItemNumber {
			return true, false
		}
		lead := strings.ToLower(m[2])
		for _, banned := range leadWordBlacklist {
			if strings.HasPrefix(lead, banned) {
				return true, false
			}
		}
		return true, true
	}
	if fractionStart.MatchString(text) {
		return true, true
	}
	if specialCaseStart.MatchString(text) {
		return true, true
	}
	return false, false
}

func isSectionHeader(text string) bool {
	for _, header := range sectionHeaders {
		if strings.Contains(text, header) {
			return true
		}
	}
	return false
}

func isBlacklistedContinuation(text string) bool {
	for _, prefix := range continuationBlacklist {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// sealOpenChunk moves the open chunk to the sealed list when it meets the
// minimum text-length floor, then clears it.
func sealOpenChunk(acc tabularAccumulator, minLen int) tabularAccumulator {
	if len(acc.open) > 0 && chunkTextLen(acc.open) > minLen {
		acc.sealed = append(acc.sealed, acc.open)
	}
	acc.open = nil
	return acc
}

func chunkTextLen(lines []NormalizedLine) int {
	total := 0
	for i, line := range lines {
		total += len(line.Text)
		if i > 0 {
			total++ // newline
		}
	}
	return total
}

// buildChunks assigns 1-based ordinals in sealing order.
func buildChunks(sealed [][]NormalizedLine, strategy Strategy) []ItemChunk {
	chunks := make([]ItemChunk, 0, len(sealed))
	for i, lines := range sealed {
		chunks = append(chunks, ItemChunk{
			Ordinal:  i + 1,
			Lines:    lines,
			Strategy: strategy,
		})
	}
	return chunks
}
