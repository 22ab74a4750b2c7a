package computo

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Segmenter turns a normalized line stream into an ordered chunk list by
// racing the four strategies in precedence order. It is stateless across
// documents; one Segmenter may serve concurrent calls.
type Segmenter struct {
	cfg Config
	log *slog.Logger
}

// NewSegmenter validates the configuration and returns a ready Segmenter.
func NewSegmenter(cfg Config) (*Segmenter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "segmenter")
	}
	return &Segmenter{cfg: cfg, log: cfg.logger()}, nil
}

// Segment selects the winning strategy for one document's normalized lines.
//
// Precedence: tabular and fraction are accepted only when they meet their
// configured chunk-count floors; the generic cascade is accepted when it
// produces anything; the keyword-grouping fallback takes whatever remains.
// An all-strategies miss yields an empty result, which signals "no items
// recognized" and is not an error.
func (s *Segmenter) Segment(lines []NormalizedLine) SegmentationResult {
	layout := DetectLayout(lines)
	s.log.Debug("layout detected", "layout", layout.String(), "lines", len(lines))

	if chunks := SegmentTabular(lines, s.cfg); len(chunks) > s.cfg.TabularMinChunks {
		return s.accept(chunks, StrategyTabular, layout)
	}
	if chunks := SegmentFraction(lines, s.cfg); len(chunks) > s.cfg.FractionMinChunks {
		return s.accept(chunks, StrategyFraction, layout)
	}
	if chunks := SegmentCascade(lines, s.cfg); len(chunks) > 0 {
		return s.accept(chunks, StrategyCascade, layout)
	}
	if chunks := SegmentFallback(lines, s.cfg); len(chunks) > 0 {
		return s.accept(chunks, StrategyFallback, layout)
	}

	s.log.Warn("no strategy produced chunks", "layout", layout.String(), "lines", len(lines))
	return SegmentationResult{Strategy: StrategyNone, Layout: layout}
}

func (s *Segmenter) accept(chunks []ItemChunk, strategy Strategy, layout LayoutTag) SegmentationResult {
	s.log.Info("segmentation accepted",
		"strategy", strategy.String(),
		"layout", layout.String(),
		"chunks", len(chunks),
	)
	return SegmentationResult{Chunks: chunks, Strategy: strategy, Layout: layout}
}
