package computo

import (
	"regexp"
	"strings"
)

// junkPatterns matches running headers, footers, column labels and other
// structural noise that must never reach segmentation. Matched against the
// lower-cased, trimmed line. The TARIFFA / DESIGNAZIONE DEI LAVORI markers are
// deliberately absent: layout detection needs them.
var junkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^pag\.\s*\d+$`),
	regexp.MustCompile(`^riporto\s*$`),
	regexp.MustCompile(`^a\s*riportare\s*$`),
	regexp.MustCompile(`^r i p o r t o$`),
	regexp.MustCompile(`^a r i p o r t a r e`),
	regexp.MustCompile(`d i m e n s i o n i`),
	regexp.MustCompile(`i m p o r t i`),
	regexp.MustCompile(`^committente:`),
	regexp.MustCompile(`^via\s*\.{3,}`),
	regexp.MustCompile(`^num\.\s*ord\.`),
	regexp.MustCompile(`parziale\s+s\d{2}-s\d{2}`),
	regexp.MustCompile(`riepilogo\s+super\s+categorie`),
	regexp.MustCompile(`^quantità$`),
	regexp.MustCompile(`^par\.ug\.`),
	regexp.MustCompile(`^lung\.`),
	regexp.MustCompile(`^larg\.`),
	regexp.MustCompile(`^h/peso`),
	regexp.MustCompile(`^unitario`),
	regexp.MustCompile(`^totale$`),
	regexp.MustCompile(`^totale\s*€`),
	regexp.MustCompile(`^data\s*:`),
	regexp.MustCompile(`^firma\s*:`),
	regexp.MustCompile(`^\s*€\s*[\d,.]+\s*$`),
}

var (
	slashSpacing = regexp.MustCompile(`\s*/\s*`)
	dashSpacing  = regexp.MustCompile(`\s*-\s*`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// IsJunkLine reports whether a raw text line is structural noise: page-number
// footers, carry-forward boilerplate, spaced-out watermark headers, table
// column labels. Empty lines are junk.
func IsJunkLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return true
	}
	for _, pattern := range junkPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// NormalizeLine canonicalizes a raw text line: spacing around / and - is
// tightened ("1 / 1" becomes "1/1"), whitespace runs collapse to single
// spaces, and the result is trimmed. Idempotent.
func NormalizeLine(line string) string {
	line = slashSpacing.ReplaceAllString(line, "/")
	line = dashSpacing.ReplaceAllString(line, "-")
	line = spaceRuns.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// CleanLine applies the junk filter and, for surviving lines, normalization.
// The second return value is false when the line should be discarded.
func CleanLine(line string) (string, bool) {
	if IsJunkLine(line) {
		return "", false
	}
	normalized := NormalizeLine(line)
	if normalized == "" {
		return "", false
	}
	return normalized, true
}

// CleanDocument runs every page's text lines through the junk filter and
// normalizer, keeping track of where each surviving line came from.
func CleanDocument(doc *Document) []NormalizedLine {
	var cleaned []NormalizedLine
	for _, page := range doc.Pages {
		for i, line := range page.Lines {
			text, ok := CleanLine(line.Text())
			if !ok {
				continue
			}
			cleaned = append(cleaned, NormalizedLine{
				Text:       text,
				SourcePage: page.Number,
				SourceLine: i,
			})
		}
	}
	return cleaned
}

// CleanText is CleanDocument for raw text that already has line breaks, e.g.
// text handed over by an external extraction step. Page numbering starts at
// the given page number.
func CleanText(pageNumber int, text string) []NormalizedLine {
	var cleaned []NormalizedLine
	for i, line := range strings.Split(text, "\n") {
		normalized, ok := CleanLine(line)
		if !ok {
			continue
		}
		cleaned = append(cleaned, NormalizedLine{
			Text:       normalized,
			SourcePage: pageNumber,
			SourceLine: i,
		})
	}
	return cleaned
}
