package computo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentFallback_SealsOnKeyword(t *testing.T) {
	lines := nlines(
		"12 Tinteggiatura di pareti interne con idropittura traspirante",
		"a due mani su superfici nuove",
		"colore bianco a scelta della direzione lavori",
		"misurazione vuoto per pieno",
		"inclusa la preparazione del fondo",
		"SOMMANO m² 240,00",
	)

	chunks := SegmentFallback(lines, DefaultConfig())
	require.Len(t, chunks, 1)
	assert.Equal(t, StrategyFallback, chunks[0].Strategy)
	assert.True(t, strings.HasPrefix(chunks[0].Text(), "12 Tinteggiatura"))
	assert.Contains(t, chunks[0].Text(), "SOMMANO m² 240,00")
}

func TestSegmentFallback_DropsBufferWithoutNumberLead(t *testing.T) {
	lines := nlines(
		"Tinteggiatura di pareti interne con idropittura traspirante",
		"a due mani su superfici nuove",
		"colore bianco a scelta della direzione lavori",
		"misurazione vuoto per pieno",
		"inclusa la preparazione del fondo",
		"SOMMANO m² 240,00",
	)

	chunks := SegmentFallback(lines, DefaultConfig())
	assert.Empty(t, chunks, "a buffer not opening with a bare number is dropped")
}

func TestSegmentFallback_TooFewLinesKeepsBuffering(t *testing.T) {
	// The first totals line arrives with only three buffered lines, so the
	// buffer keeps growing until the second totals line.
	lines := nlines(
		"7 Massetto di sottofondo in sabbia e cemento",
		"spessore 5 cm",
		"SOMMANO m² 60,00",
		"tirato a frattazzo fino",
		"per posa di pavimenti",
		"SOMMANO m² 35,00",
	)

	chunks := SegmentFallback(lines, DefaultConfig())
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Text(), "SOMMANO m² 60,00")
	assert.Contains(t, chunks[0].Text(), "SOMMANO m² 35,00")
}
