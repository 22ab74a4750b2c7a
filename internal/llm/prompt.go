package llm

import (
	"strconv"
	"strings"
)

// RejectSentinel is the single word the model answers with when a chunk does
// not describe a work item.
const RejectSentinel = "REJECT"

// BuildSystemPrompt composes the system message: document context, extraction
// rules per field, and the reject escape hatch.
func BuildSystemPrompt() string {
	parts := []string{
		"You are analyzing a computo metrico estimativo for construction works.",
		"The document can be in multiple formats:",
		"traditional format with progressive numbers, tariff codes, work descriptions and SOMMANO totals;",
		"structured table format with columns Numero d'ordine Listino Prezzi, Descrizione, u.m., Quantità, prezzo unitario;",
		"computo metrico table format with columns N., Rif., Descrizione, Quantità, Prezzo unitario, Prezzo complessivo;",
		"allegato table format with columns No., TARIFFA, DESIGNAZIONE DEI LAVORI, Quantità, IMPORTI;",
		"Primus format with TARIFFA and DESIGNAZIONE columns and SOMMANO totals.",
		"Act as an assistant specialized in structured data extraction from computi metrici edilizi, with strict fidelity to the original text.",
		"Identify the work item in the provided text and return ONLY JSON matching the provided JSON Schema.",
		"Do not modify, interpret, or summarize: keep the exact original values. If a field is missing, use null.",
		"Rules per field:",
		"progressiveNumber: the progressive number at the start (1-100); if written as 2/2 or similar take only the first integer; always an integer.",
		"referenceCode: alphanumeric codes like 01.P24.C60.0 or 07.A20.T30.015; also codes like A 3.01.9 from patterns like '1 A 3.01.9'; null if unclear.",
		"description: the text before SOMMANO or calculations; include all relevant detail but exclude measurement and price calculations.",
		"quantity: the numeric value after SOMMANO, converted to a decimal number (6,00 becomes 6.0).",
		"unitPrice: the unit price before the final total, as a number without currency symbols.",
		"unitOfMeasurement: the unit after SOMMANO (h, m², m³, kg, cad), in the exact Italian notation.",
		"IMPORTANT: if the provided text is not a detailed work item description (a header, a random line), return the single word " + RejectSentinel + " instead of a JSON object.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages one chunk plus light provenance hints.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if f := strings.TrimSpace(req.SourceFile); f != "" {
		b.WriteString("Source file: ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	if req.ChunkOrdinal > 0 {
		b.WriteString("Chunk ordinal: ")
		b.WriteString(strconv.Itoa(req.ChunkOrdinal))
		b.WriteString("\n")
	}
	b.WriteString("\nText to analyze:\n---\n")
	b.WriteString(strings.TrimSpace(req.ChunkText))
	b.WriteString("\n---\n")
	return b.String()
}
