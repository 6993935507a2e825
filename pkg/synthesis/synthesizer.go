package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-research-be/pkg/llm"
	"ai-research-be/pkg/research"
)

const callTimeout = 120 * time.Second

const synthesisPromptTemplate = `Analyze the following research sources about %s and synthesize the information into a structured format.

%s

Provide a comprehensive synthesis in the following JSON format:
{
    "company_overview": "Brief overview of the company",
    "products_services": ["List of main products/services"],
    "market_position": "Market position and competitive landscape",
    "recent_developments": ["Recent news and developments"],
    "key_insights": ["Key insights from the research"],
    "potential_conflicts": ["Any conflicting information found"],
    "data_quality": "Assessment of data quality and completeness"
}

Return only valid JSON, nothing else.`

const conflictPromptTemplate = `Analyze these sources and identify any conflicting information:

%s

List any contradictions or conflicting claims you find. If no conflicts exist, return an empty list.
Return a JSON array of strings, each describing a conflict.
Example: ["Source 1 claims X while Source 3 claims Y", "Conflicting revenue figures found"]

Return only valid JSON array, nothing else.`

// Synthesizer reduces a research batch into a normalized Record through the
// completion provider. Every provider or parse failure is converted into a
// degraded in-band result at this boundary; Synthesize and DetectConflicts
// never surface a Go error to callers.
type Synthesizer struct {
	provider llm.LLMProvider
}

func NewSynthesizer(provider llm.LLMProvider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Synthesize distills the batch's usable sources into a Record.
func (s *Synthesizer) Synthesize(ctx context.Context, batch *research.Batch) *Record {
	usable := batch.UsableSources()
	if len(usable) == 0 {
		return degradedRecord("synthesis failed: no usable sources", 0)
	}

	prompt := fmt.Sprintf(synthesisPromptTemplate, batch.CompanyName, sourcesText(usable, true))

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	response, err := s.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(2000),
	)
	if err != nil {
		return degradedRecord(fmt.Sprintf("synthesis failed: %v", err), len(usable))
	}

	jsonContent := llm.ExtractObject(response)
	if jsonContent == "" {
		return degradedRecord("synthesis failed: no JSON object in response", len(usable))
	}

	var record Record
	if err := json.Unmarshal([]byte(jsonContent), &record); err != nil {
		return degradedRecord(fmt.Sprintf("synthesis failed: %v", err), len(usable))
	}

	record.Err = ""
	record.SourcesAnalyzed = len(usable)
	return &record
}

// DetectConflicts asks the provider for cross-source contradictions. Fewer
// than two usable sources short-circuits to an empty list without a call:
// conflict detection needs at least two independent claims.
func (s *Synthesizer) DetectConflicts(ctx context.Context, batch *research.Batch) []string {
	usable := batch.UsableSources()
	if len(usable) < 2 {
		return []string{}
	}

	prompt := fmt.Sprintf(conflictPromptTemplate, sourcesText(usable, false))

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	response, err := s.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return []string{fmt.Sprintf("Error identifying conflicts: %v", err)}
	}

	var parsed any
	if err := json.Unmarshal([]byte(llm.CleanResponse(response)), &parsed); err != nil {
		return []string{fmt.Sprintf("Error identifying conflicts: %v", err)}
	}

	items, ok := parsed.([]any)
	if !ok {
		// Valid JSON of the wrong shape is a schema mismatch, not a failure.
		return []string{}
	}

	conflicts := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			conflicts = append(conflicts, s)
		} else {
			conflicts = append(conflicts, fmt.Sprint(item))
		}
	}
	return conflicts
}

func degradedRecord(cause string, sourcesAnalyzed int) *Record {
	return &Record{
		Err:             cause,
		CompanyOverview: "Unable to synthesize data",
		SourcesAnalyzed: sourcesAnalyzed,
	}
}

// sourcesText serializes usable sources into the bounded text block fed to the
// provider. The full form carries title and URL; the short form only snippets.
func sourcesText(sources []research.SourceRecord, full bool) string {
	var sb strings.Builder
	for i, src := range sources {
		if full {
			sb.WriteString(fmt.Sprintf("\nSource %d:\n", i+1))
			sb.WriteString(fmt.Sprintf("Title: %s\n", valueOrNA(src.Title)))
			sb.WriteString(fmt.Sprintf("Content: %s\n", valueOrNA(src.Snippet)))
			sb.WriteString(fmt.Sprintf("URL: %s\n", valueOrNA(src.Link)))
		} else {
			sb.WriteString(fmt.Sprintf("\nSource %d: %s\n", i+1, valueOrNA(src.Snippet)))
		}
	}
	return sb.String()
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
