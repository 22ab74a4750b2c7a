package computo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentTabular_TwoItems(t *testing.T) {
	lines := nlines(
		"TARIFFA DESIGNAZIONE DEI LAVORI",
		"1 Rimozione di pavimentazione esistente in pietra",
		"01.A01.A65. Scavo a sezione obbligata in terreno di qualsiasi natura",
		"005 Eseguito a macchina fino alla profondità di due metri",
		"SOMMANO m² 25,00",
		"2 Demolizione di muratura portante in mattoni pieni",
		"SOMMANO m³ 12,50",
	)

	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 2)

	assert.Equal(t, 1, chunks[0].Ordinal)
	assert.Equal(t, 2, chunks[1].Ordinal)
	assert.Equal(t, StrategyTabular, chunks[0].Strategy)

	// The wrapped reference code tail "005 ..." belongs to the first item,
	// it must not open a third chunk.
	assert.Contains(t, chunks[0].Text(), "005 Eseguito a macchina")
	assert.True(t, strings.HasPrefix(chunks[0].Text(), "1 Rimozione"))
	assert.True(t, strings.HasPrefix(chunks[1].Text(), "2 Demolizione"))
}

func TestSegmentTabular_NothingBeforeHeader(t *testing.T) {
	lines := nlines(
		"1 Rimozione di pavimentazione esistente in pietra naturale",
		"SOMMANO m² 25,00",
	)
	chunks := SegmentTabular(lines, DefaultConfig())
	assert.Empty(t, chunks, "data before any section header must be ignored")
}

func TestSegmentTabular_LavoriACorpoHeader(t *testing.T) {
	lines := nlines(
		"LAVORI A CORPO",
		"1 Impianto idrico sanitario completo di ogni onere e accessorio",
		"SOMMANO a corpo 1,00",
	)
	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0].Text(), "1 Impianto"))
}

func TestSegmentTabular_LeadWordBlacklist(t *testing.T) {
	lines := nlines(
		"TARIFFA DESIGNAZIONE DEI LAVORI",
		"1 Impianto elettrico generale completo di ogni onere accessorio",
		"2 Circuito di illuminazione delle aree esterne",
		"3 Linea di alimentazione del quadro generale",
		"SOMMANO cad 4,00",
	)

	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 1)
	text := chunks[0].Text()
	assert.Contains(t, text, "2 Circuito di illuminazione")
	assert.Contains(t, text, "3 Linea di alimentazione")
}

func TestSegmentTabular_SpecialCaseStarts(t *testing.T) {
	lines := nlines(
		"TARIFFA DESIGNAZIONE DEI LAVORI",
		"13 cemento armato per opere di fondazione gettato in opera",
		"SOMMANO m³ 45,00",
		"37 metalli lavorati per carpenteria metallica di copertura",
		"SOMMANO kg 1200,00",
	)

	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[0].Text(), "13 cemento"))
	assert.True(t, strings.HasPrefix(chunks[1].Text(), "37 metalli"))
}

func TestSegmentTabular_ContinuationBlacklist(t *testing.T) {
	lines := nlines(
		"TARIFFA DESIGNAZIONE DEI LAVORI",
		"1 Demolizione di tramezzi interni in laterizio forato",
		"COMMITTENTE Comune di Milano",
		"SOMMANO m² 80,00",
	)

	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 1)
	assert.NotContains(t, chunks[0].Text(), "COMMITTENTE")
}

func TestSegmentTabular_ShortChunkDropped(t *testing.T) {
	lines := nlines(
		"TARIFFA DESIGNAZIONE DEI LAVORI",
		"1 Scavo breve",
		"2 Demolizione di muratura portante in mattoni pieni",
		"SOMMANO m³ 12,50",
	)

	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0].Text(), "2 Demolizione"))
}

func TestSegmentTabular_CoversInputInOrder(t *testing.T) {
	lines := nlines(
		"TARIFFA DESIGNAZIONE DEI LAVORI",
		"1 Rimozione di pavimentazione esistente in pietra naturale",
		"SOMMANO m² 25,00",
		"2 Demolizione di muratura portante in mattoni pieni",
		"SOMMANO m³ 12,50",
		"3 Scavo a sezione obbligata in terreno di qualsiasi natura",
		"SOMMANO m³ 60,00",
	)

	chunks := SegmentTabular(lines, DefaultConfig())
	require.Len(t, chunks, 3)

	// Chunk line provenance must be strictly increasing across chunks.
	last := -1
	for _, chunk := range chunks {
		for _, line := range chunk.Lines {
			require.Greater(t, line.SourceLine, last)
			last = line.SourceLine
		}
	}
}
