package computo

import (
	"math"
	"sort"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// pageChar is a single character with its bounding box.
type pageChar struct {
	text rune
	box  Rect
}

// ExtractPage pulls all text with geometry from a loaded PDF page. Words are
// split on whitespace only: reference codes like "01.A01.A65." and decimal
// quantities like "6,00" must stay intact.
func ExtractPage(instance pdfium.Pdfium, page references.FPDF_PAGE, pageNumber int) (*Page, error) {
	pageWidth, err := instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}

	pageHeight, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}

	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	result := &Page{
		Number: pageNumber,
		Width:  float64(pageWidth.PageWidth),
		Height: float64(pageHeight.PageHeight),
	}
	if charCount.Count == 0 {
		return result, nil
	}

	chars, err := extractChars(instance, textPage.TextPage, charCount.Count, result.Height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract characters")
	}

	result.Words = groupCharsIntoWords(chars)
	result.Lines = groupWordsIntoLines(result.Words)
	return result, nil
}

// extractChars reads every character and its box, converting pdfium's
// bottom-left origin to top-left.
func extractChars(instance pdfium.Pdfium, textPage references.FPDF_TEXTPAGE, count int, pageHeight float64) ([]pageChar, error) {
	chars := make([]pageChar, 0, count)

	for i := range count {
		unicodeRes, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		chars = append(chars, pageChar{
			text: rune(unicodeRes.Unicode),
			box: Rect{
				X0: charBox.Left,
				Y0: pageHeight - charBox.Top,
				X1: charBox.Right,
				Y1: pageHeight - charBox.Bottom,
			},
		})
	}

	return chars, nil
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// groupCharsIntoWords splits the character stream on whitespace and merges
// each run's bounding boxes.
func groupCharsIntoWords(chars []pageChar) []Word {
	var words []Word
	var current []rune
	var wordBox Rect

	flush := func() {
		if len(current) > 0 {
			words = append(words, Word{Text: string(current), Box: wordBox})
			current = nil
		}
	}

	for _, char := range chars {
		if isWhitespace(char.text) {
			flush()
			continue
		}
		if len(current) == 0 {
			wordBox = char.box
		} else {
			wordBox.X0 = math.Min(wordBox.X0, char.box.X0)
			wordBox.Y0 = math.Min(wordBox.Y0, char.box.Y0)
			wordBox.X1 = math.Max(wordBox.X1, char.box.X1)
			wordBox.Y1 = math.Max(wordBox.Y1, char.box.Y1)
		}
		current = append(current, char.text)
	}
	flush()

	return words
}

// lineGroupTolerance is the vertical distance within which two words are
// considered part of the same text line, in points.
const lineGroupTolerance = 3.0

// groupWordsIntoLines sorts words top-to-bottom, left-to-right and groups
// runs with close bottom edges into lines.
func groupWordsIntoLines(words []Word) []TextLine {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Box.Y1-sorted[j].Box.Y1) < lineGroupTolerance {
			return sorted[i].Box.X0 < sorted[j].Box.X0
		}
		return sorted[i].Box.Y1 < sorted[j].Box.Y1
	})

	var lines []TextLine
	var current []Word
	var lineBox Rect
	var baseline float64

	for _, word := range sorted {
		if len(current) == 0 {
			current = []Word{word}
			lineBox = word.Box
			baseline = word.Box.Y1
			continue
		}
		if math.Abs(word.Box.Y1-baseline) < lineGroupTolerance {
			current = append(current, word)
			lineBox.X0 = math.Min(lineBox.X0, word.Box.X0)
			lineBox.Y0 = math.Min(lineBox.Y0, word.Box.Y0)
			lineBox.X1 = math.Max(lineBox.X1, word.Box.X1)
			lineBox.Y1 = math.Max(lineBox.Y1, word.Box.Y1)
			continue
		}
		lines = append(lines, TextLine{Words: current, Box: lineBox})
		current = []Word{word}
		lineBox = word.Box
		baseline = word.Box.Y1
	}
	if len(current) > 0 {
		lines = append(lines, TextLine{Words: current, Box: lineBox})
	}

	return lines
}
