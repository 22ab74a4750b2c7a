package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt()
	assert.Contains(t, prompt, "computo metrico")
	assert.Contains(t, prompt, "progressiveNumber")
	assert.Contains(t, prompt, "SOMMANO")
	assert.Contains(t, prompt, RejectSentinel)
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(ExtractRequest{
		ChunkText:    "7 Scavo a sezione obbligata\nSOMMANO m³ 25,00",
		ChunkOrdinal: 7,
		SourceFile:   "computo.pdf",
	})

	assert.Contains(t, prompt, "computo.pdf")
	assert.Contains(t, prompt, "Chunk ordinal: 7")
	assert.Contains(t, prompt, "7 Scavo a sezione obbligata")
	assert.True(t, strings.Contains(prompt, "Text to analyze"))
}

func TestBuildUserPrompt_Minimal(t *testing.T) {
	prompt := BuildUserPrompt(ExtractRequest{ChunkText: "testo"})
	assert.NotContains(t, prompt, "Source file")
	assert.NotContains(t, prompt, "Chunk ordinal")
	assert.Contains(t, prompt, "testo")
}
