package llm

import (
	"context"

	"github.com/pkg/errors"
)

// ErrRejected is returned when the model decides the chunk is not a work item
// (a page header, a summary row, stray text) and answers with the reject
// sentinel instead of JSON.
var ErrRejected = errors.New("llm: chunk rejected as non-work-item")

// ItemFields is the normalized shape we want back for one work item chunk.
// Field names match the document-level JSON contract.
type ItemFields struct {
	ProgressiveNumber int      `json:"progressiveNumber"`
	ReferenceCode     *string  `json:"referenceCode"`
	Description       *string  `json:"description"`
	Quantity          *float64 `json:"quantity"`
	UnitPrice         *float64 `json:"unitPrice"`
	UnitOfMeasurement *string  `json:"unitOfMeasurement"`
}

// ExtractRequest carries one segmented chunk plus the context the prompt
// builder wants.
type ExtractRequest struct {
	ChunkText    string
	ChunkOrdinal int
	Strategy     string
	SourceFile   string
}

// FieldExtractor is the interface the extraction pipeline depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (ItemFields, []byte /*rawJSON*/, error)
}
