package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTextErrorDocument(t *testing.T) {
	doc := Document{"error": "Plan generation failed: timeout"}
	assert.Equal(t, "Error: Plan generation failed: timeout", FormatText(doc))
}

func TestFormatTextHandlesStringListLeaf(t *testing.T) {
	doc := Document{
		"executive_summary": "Summary",
		"products_and_services": map[string]any{
			// Degenerate shape from a malformed generation.
			"offerings":           "One single offering",
			"key_differentiators": []any{"Quality", "Price"},
		},
		"metadata": map[string]any{"company_name": "Acme", "version": "1.0"},
	}

	out := FormatText(doc)

	assert.Contains(t, out, "One single offering")
	assert.NotContains(t, out, "- O\n", "string leaves must not iterate character-wise")
	assert.Contains(t, out, "  - Quality\n  - Price\n")
	assert.Contains(t, out, "Company: Acme")
}

func TestFormatTextMissingSections(t *testing.T) {
	out := FormatText(Document{})

	assert.Contains(t, out, "ACCOUNT PLAN")
	assert.Contains(t, out, "Company: N/A")
	assert.Contains(t, out, "EXECUTIVE SUMMARY")
	assert.Contains(t, out, "N/A")
}
