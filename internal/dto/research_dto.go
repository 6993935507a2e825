package dto

import "ai-research-be/pkg/synthesis"

// --- Company Research ---

type ResearchRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	SessionId   string `json:"session_id"`
}

type ResearchResponse struct {
	CompanyName     string            `json:"company_name"`
	Summary         string            `json:"summary"`
	Synthesis       *synthesis.Record `json:"synthesized_data"`
	Conflicts       []string          `json:"conflicts"`
	TotalSources    int               `json:"total_sources"`
	SourcesAnalyzed int               `json:"sources_analyzed"`
	SessionId       string            `json:"session_id"`
}

// ProgressFrame is one event in a live research stream. Type is one of
// "status", "conflict", "research_complete" or "response".
type ProgressFrame struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
	Data    interface{} `json:"data,omitempty"`
}
