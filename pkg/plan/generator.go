package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-research-be/pkg/llm"
	"ai-research-be/pkg/synthesis"
)

const callTimeout = 120 * time.Second

const planPromptTemplate = `Based on the following research data about %s, generate a comprehensive account plan.

Research Data:
%s

Create an account plan with the following sections in JSON format:
{
    "executive_summary": "High-level overview of the account and opportunity",
    "company_background": {
        "overview": "Company description",
        "size": "Company size (employees, revenue if known)",
        "industry": "Industry and sector",
        "headquarters": "Location"
    },
    "products_and_services": {
        "offerings": ["List of products/services"],
        "key_differentiators": ["What makes them unique"]
    },
    "market_analysis": {
        "position": "Market position",
        "competitors": ["Main competitors"],
        "trends": ["Relevant market trends"]
    },
    "key_stakeholders": {
        "decision_makers": ["Potential decision makers (titles/roles)"],
        "influencers": ["Key influencers"]
    },
    "opportunity_assessment": {
        "potential_needs": ["Potential business needs"],
        "pain_points": ["Possible pain points"],
        "opportunities": ["Engagement opportunities"]
    },
    "engagement_strategy": {
        "approach": "Recommended approach",
        "value_proposition": "Value we can offer",
        "next_steps": ["Recommended next steps"]
    },
    "risks_and_challenges": ["Potential risks or challenges"],
    "success_metrics": ["How to measure success"]
}

Return only valid JSON, nothing else.`

// Generator expands a synthesis record into an account plan document through
// the completion provider. Failures degrade to an error-form document with
// partial metadata; Generate never returns a Go error.
type Generator struct {
	provider llm.LLMProvider
}

func NewGenerator(provider llm.LLMProvider) *Generator {
	return &Generator{provider: provider}
}

// Generate builds the account plan for a company from its synthesis record.
// On success the document carries metadata{company_name, generated_at,
// version:"1.0"}, replacing anything the provider emitted; the degraded form
// carries no version at all.
func (g *Generator) Generate(ctx context.Context, companyName string, record *synthesis.Record) Document {
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return g.degraded(companyName, err)
	}

	prompt := fmt.Sprintf(planPromptTemplate, companyName, string(recordJSON))

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	response, err := g.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(3000),
	)
	if err != nil {
		return g.degraded(companyName, err)
	}

	jsonContent := llm.ExtractObject(response)
	if jsonContent == "" {
		return g.degraded(companyName, fmt.Errorf("no JSON object in response"))
	}

	var doc Document
	if err := json.Unmarshal([]byte(jsonContent), &doc); err != nil {
		return g.degraded(companyName, err)
	}

	doc["metadata"] = map[string]any{
		"company_name": companyName,
		"generated_at": time.Now().Format(time.RFC3339),
		"version":      "1.0",
	}

	return doc
}

func (g *Generator) degraded(companyName string, cause error) Document {
	return Document{
		"error": fmt.Sprintf("Plan generation failed: %v", cause),
		"metadata": map[string]any{
			"company_name": companyName,
			"generated_at": time.Now().Format(time.RFC3339),
		},
	}
}
