package plan

import (
	"fmt"
	"strings"
)

// FormatText renders an account plan as readable plain text. Every lookup is
// defensive: sections may be missing and list leaves may be bare strings when
// a generation came back malformed.
func FormatText(doc Document) string {
	if errMsg, ok := doc["error"].(string); ok {
		return fmt.Sprintf("Error: %s", errMsg)
	}

	rule := strings.Repeat("=", 80)
	var sb strings.Builder

	header := func(title string) {
		sb.WriteString(fmt.Sprintf("\n%s\n%s\n%s\n", rule, title, rule))
	}

	meta := doc.Metadata()
	sb.WriteString(fmt.Sprintf("\n%s\nACCOUNT PLAN\n%s\n\n", rule, rule))
	sb.WriteString(fmt.Sprintf("Company: %s\n", stringField(meta, "company_name")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", stringField(meta, "generated_at")))
	sb.WriteString(fmt.Sprintf("Version: %s\n", stringField(meta, "version")))

	header("EXECUTIVE SUMMARY")
	sb.WriteString(stringField(doc, "executive_summary"))
	sb.WriteString("\n")

	background := section(doc, "company_background")
	header("COMPANY BACKGROUND")
	sb.WriteString(fmt.Sprintf("Overview: %s\n", stringField(background, "overview")))
	sb.WriteString(fmt.Sprintf("Size: %s\n", stringField(background, "size")))
	sb.WriteString(fmt.Sprintf("Industry: %s\n", stringField(background, "industry")))
	sb.WriteString(fmt.Sprintf("Headquarters: %s\n", stringField(background, "headquarters")))

	products := section(doc, "products_and_services")
	header("PRODUCTS AND SERVICES")
	sb.WriteString("Offerings:\n")
	writeListField(&sb, products, "offerings")
	sb.WriteString("\nKey Differentiators:\n")
	writeListField(&sb, products, "key_differentiators")

	market := section(doc, "market_analysis")
	header("MARKET ANALYSIS")
	sb.WriteString(fmt.Sprintf("Position: %s\n\n", stringField(market, "position")))
	sb.WriteString("Competitors:\n")
	writeListField(&sb, market, "competitors")
	sb.WriteString("\nMarket Trends:\n")
	writeListField(&sb, market, "trends")

	opportunity := section(doc, "opportunity_assessment")
	header("OPPORTUNITY ASSESSMENT")
	sb.WriteString("Potential Needs:\n")
	writeListField(&sb, opportunity, "potential_needs")
	sb.WriteString("\nPain Points:\n")
	writeListField(&sb, opportunity, "pain_points")
	sb.WriteString("\nOpportunities:\n")
	writeListField(&sb, opportunity, "opportunities")

	engagement := section(doc, "engagement_strategy")
	header("ENGAGEMENT STRATEGY")
	sb.WriteString(fmt.Sprintf("Approach: %s\n", stringField(engagement, "approach")))
	sb.WriteString(fmt.Sprintf("Value Proposition: %s\n\n", stringField(engagement, "value_proposition")))
	sb.WriteString("Next Steps:\n")
	writeListField(&sb, engagement, "next_steps")

	header("RISKS AND CHALLENGES")
	writeListValue(&sb, doc["risks_and_challenges"])

	header("SUCCESS METRICS")
	writeListValue(&sb, doc["success_metrics"])

	sb.WriteString(fmt.Sprintf("\n%s\n", rule))
	return sb.String()
}

func section(doc Document, key string) map[string]any {
	m, _ := doc[key].(map[string]any)
	return m
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return "N/A"
}

func writeListField(sb *strings.Builder, m map[string]any, key string) {
	writeListValue(sb, m[key])
}

// writeListValue renders a list leaf. A bare string is a single line, never a
// character sequence.
func writeListValue(sb *strings.Builder, value any) {
	switch v := value.(type) {
	case string:
		sb.WriteString(v)
		sb.WriteString("\n")
	case []any:
		for _, item := range v {
			sb.WriteString(fmt.Sprintf("  - %v\n", item))
		}
	case []string:
		for _, item := range v {
			sb.WriteString(fmt.Sprintf("  - %s\n", item))
		}
	}
}
