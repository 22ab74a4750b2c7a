package computo

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Config controls segmentation and row splitting behavior.
type Config struct {
	// Keyword is the totals-line delimiter used both to close chunks in the
	// fallback strategies and to delimit rows geometrically (default: SOMMANO).
	Keyword string

	// DPI is the render resolution for row crops (default: 144).
	DPI int

	// LeftMargin and RightMargin trim the crop horizontally, in PDF points.
	LeftMargin  float64
	RightMargin float64

	// ExtendTop adjusts the content top derived from the first word on a
	// page. Negative values reach slightly above it (default: -4).
	ExtendTop float64

	// ExtendBottom extends the crop below the keyword baseline so the totals
	// line itself is captured (default: 6).
	ExtendBottom float64

	// KeywordPadding is extra room under the keyword, on top of ExtendBottom
	// (default: 8).
	KeywordPadding float64

	// MinCropSize drops crops whose width or height falls below this many
	// points; such rectangles indicate an unreliable keyword hit (default: 6).
	MinCropSize float64

	// TabularMinChunks and FractionMinChunks are the acceptance floors for the
	// layout-specific strategies. They are tuned to large documents with
	// hundreds of items; short documents fall through to the generic cascade,
	// which is accepted behavior (default: 200 each).
	TabularMinChunks  int
	FractionMinChunks int

	// TabularMinChunkLen and GenericMinChunkLen are the minimum chunk text
	// lengths below which a candidate chunk is discarded as noise. The
	// tabular strategy uses TabularMinChunkLen (default: 30); the fraction
	// and cascade strategies share GenericMinChunkLen (default: 50).
	TabularMinChunkLen int
	GenericMinChunkLen int

	// FallbackMinLines is the minimum buffered line count before the
	// keyword-grouping fallback seals a chunk (default: 5).
	FallbackMinLines int

	// Logger receives structured progress and page-skip events.
	// Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Keyword:            "SOMMANO",
		DPI:                144,
		LeftMargin:         6,
		RightMargin:        6,
		ExtendTop:          -4,
		ExtendBottom:       6,
		KeywordPadding:     8,
		MinCropSize:        6,
		TabularMinChunks:   200,
		FractionMinChunks:  200,
		TabularMinChunkLen: 30,
		GenericMinChunkLen: 50,
		FallbackMinLines:   5,
	}
}

// Validate checks the configuration for values that would silently break
// segmentation or cropping. Misconfiguration fails here, at startup, rather
// than mid-document.
func (c Config) Validate() error {
	if c.Keyword == "" {
		return errors.New("config: keyword must not be empty")
	}
	if c.DPI <= 0 {
		return errors.Errorf("config: dpi must be positive, got %d", c.DPI)
	}
	if c.LeftMargin < 0 || c.RightMargin < 0 {
		return errors.New("config: margins must not be negative")
	}
	if c.MinCropSize <= 0 {
		return errors.Errorf("config: min crop size must be positive, got %v", c.MinCropSize)
	}
	if c.TabularMinChunks < 0 || c.FractionMinChunks < 0 {
		return errors.New("config: strategy chunk thresholds must not be negative")
	}
	if c.TabularMinChunkLen < 0 || c.GenericMinChunkLen < 0 {
		return errors.New("config: chunk length floors must not be negative")
	}
	if c.FallbackMinLines < 1 {
		return errors.Errorf("config: fallback min lines must be at least 1, got %d", c.FallbackMinLines)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
