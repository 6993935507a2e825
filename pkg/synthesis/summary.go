package synthesis

import (
	"fmt"
	"strings"
)

// Summary renders a Record as human-readable text. Pure formatting: no
// provider calls, deterministic for a given record.
func Summary(record *Record) string {
	var sb strings.Builder

	sb.WriteString("Company Research Summary\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n")

	sb.WriteString("Company Overview:\n")
	sb.WriteString(valueOrNA(record.CompanyOverview))
	sb.WriteString("\n\nProducts & Services:\n")
	writeBullets(&sb, record.ProductsServices)

	sb.WriteString("\nMarket Position:\n")
	sb.WriteString(valueOrNA(record.MarketPosition))
	sb.WriteString("\n\nRecent Developments:\n")
	writeBullets(&sb, record.RecentDevelopments)

	sb.WriteString("\nKey Insights:\n")
	writeBullets(&sb, record.KeyInsights)

	if len(record.PotentialConflicts) > 0 {
		sb.WriteString("\nPotential Conflicts Detected:\n")
		for _, conflict := range record.PotentialConflicts {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", conflict))
		}
	}

	dataQuality := record.DataQuality
	if dataQuality == "" {
		dataQuality = "Unknown"
	}
	sb.WriteString(fmt.Sprintf("\nData Quality: %s\n", dataQuality))
	sb.WriteString(fmt.Sprintf("Sources Analyzed: %d\n", record.SourcesAnalyzed))

	return sb.String()
}

func writeBullets(sb *strings.Builder, items FlexList) {
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
}
