package computo

import "math"

// Rect is an axis-aligned bounding box in PDF points, top-left origin
// (converted from pdfium's bottom-left coordinates at extraction time).
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// Intersect clips the rectangle against other. The result may be empty.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: math.Max(r.X0, other.X0),
		Y0: math.Max(r.Y0, other.Y0),
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
	}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Word is a run of characters with a shared bounding box on a page.
type Word struct {
	Text string
	Box  Rect
}

// TextLine is a horizontal line of words on a page, reading order left to right.
type TextLine struct {
	Words []Word
	Box   Rect
}

// Text returns the line's words joined with single spaces.
func (l TextLine) Text() string {
	var result string
	for i, word := range l.Words {
		result += word.Text
		if i < len(l.Words)-1 {
			result += " "
		}
	}
	return result
}

// Page holds everything extracted from a single PDF page.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Words  []Word
	Lines  []TextLine
}

// Document is the text-and-geometry view of a whole PDF.
type Document struct {
	Pages []Page
}

// NormalizedLine is one cleaned text line that survived the junk filter.
type NormalizedLine struct {
	Text       string
	SourcePage int // 1-based page number
	SourceLine int // 0-based line index within the page
}

// LayoutTag identifies which known table layout a document uses.
type LayoutTag int

const (
	LayoutUnknown LayoutTag = iota
	LayoutTabular
	LayoutFractionNumbered
	LayoutGeneric
)

func (t LayoutTag) String() string {
	switch t {
	case LayoutTabular:
		return "tabular"
	case LayoutFractionNumbered:
		return "fraction-numbered"
	case LayoutGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Strategy identifies which segmentation algorithm produced a chunk list.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyTabular
	StrategyFraction
	StrategyCascade
	StrategyFallback
)

func (s Strategy) String() string {
	switch s {
	case StrategyTabular:
		return "tabular"
	case StrategyFraction:
		return "fraction"
	case StrategyCascade:
		return "cascade"
	case StrategyFallback:
		return "fallback"
	default:
		return "none"
	}
}

// ItemChunk is the contiguous block of normalized lines believed to describe
// one work item. Ordinal is 1-based assignment order; it does not have to
// match the document's own progressive numbering.
type ItemChunk struct {
	Ordinal  int
	Lines    []NormalizedLine
	Strategy Strategy
}

// Text returns the chunk's lines joined with newlines.
func (c ItemChunk) Text() string {
	var result string
	for i, line := range c.Lines {
		result += line.Text
		if i < len(c.Lines)-1 {
			result += "\n"
		}
	}
	return result
}

// SegmentationResult is the engine's final output for one document.
// An empty Chunks slice means "no items recognized" and is not an error.
type SegmentationResult struct {
	Chunks   []ItemChunk
	Strategy Strategy
	Layout   LayoutTag
}

// KeywordHit is one occurrence of the delimiter keyword on a rendered page.
type KeywordHit struct {
	Page int // 1-based
	Box  Rect
}

// RowCrop is a rasterized region of a page corresponding to one work item row.
// GlobalOrdinal is assigned in document-wide scan order (page ascending, then
// row ascending within the page) starting at 1, with no gaps.
type RowCrop struct {
	Page          int
	RowIndex      int // 1-based within the page
	GlobalOrdinal int
	Box           Rect // in PDF points
	ImageBytes    []byte
}
