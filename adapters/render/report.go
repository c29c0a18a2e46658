package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"cleansheet/domain/report"
)

// Markdown renders the analysis bundle as a markdown document: overview,
// cleaning summary, per-column statistics, anomalies, and recommendations
// ranked high to low
func Markdown(bundle report.Bundle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Data Quality Report: %s\n\n", bundle.Summary.SourceName)
	fmt.Fprintf(&b, "%d rows, %d columns.\n\n", bundle.Summary.TotalRows, bundle.Summary.TotalColumns)

	if bundle.Cleaning != nil {
		c := bundle.Cleaning
		b.WriteString("## Cleaning\n\n")
		fmt.Fprintf(&b, "- Rows modified: %d\n", c.TotalRowsModified)
		fmt.Fprintf(&b, "- Values imputed: %d\n", c.Totals.ValuesImputed)
		fmt.Fprintf(&b, "- Errors fixed: %d\n", c.Totals.ErrorsFixed)
		fmt.Fprintf(&b, "- Types converted: %d\n\n", c.Totals.TypesConverted)
	}

	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Type | Missing | Summary |\n|---|---|---|---|\n")
	statsByName := make(map[string]report.ColumnStats, len(bundle.Stats))
	for _, cs := range bundle.Stats {
		statsByName[cs.Name] = cs
	}
	for _, col := range bundle.Summary.Columns {
		fmt.Fprintf(&b, "| %s | %s | %.1f%% | %s |\n",
			col.Name, col.Type, col.MissingRate*100, columnDigest(statsByName[col.Name]))
	}
	b.WriteString("\n")

	if pairs := correlationLines(bundle.Correlations); len(pairs) > 0 {
		b.WriteString("## Correlations\n\n")
		for _, line := range pairs {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(bundle.Anomalies) > 0 {
		b.WriteString("## Anomalies\n\n")
		for _, a := range bundle.Anomalies {
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n", a.Kind, a.ColumnName, a.Severity, a.Description)
		}
		b.WriteString("\n")
	}

	if len(bundle.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range rankRecommendations(bundle.Recommendations) {
			fmt.Fprintf(&b, "- **[%s] %s** (%s): %s", r.Priority, r.Title, r.Category, r.Description)
			if r.SuggestedAction != "" {
				fmt.Fprintf(&b, " Suggested: %s.", r.SuggestedAction)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// HTML renders the bundle's markdown report to HTML
func HTML(bundle report.Bundle) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(bundle)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.Render(doc, renderer)
}

// columnDigest produces a one-line summary for the column table
func columnDigest(cs report.ColumnStats) string {
	switch {
	case cs.Numerical != nil:
		n := cs.Numerical
		return fmt.Sprintf("mean %.2f, median %.2f, range [%.2f, %.2f], %d outliers",
			n.Mean, n.Median, n.Min, n.Max, len(n.Outliers))
	case cs.Categorical != nil:
		c := cs.Categorical
		if len(c.TopValues) == 0 {
			return fmt.Sprintf("%d unique values", c.UniqueCount)
		}
		return fmt.Sprintf("%d unique, most frequent %q (%.1f%%)",
			c.UniqueCount, c.TopValues[0].Value, c.TopValues[0].Percentage)
	}
	return ""
}

// correlationLines lists each unordered pair once, sorted by name
func correlationLines(m report.CorrelationMatrix) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			lines = append(lines, fmt.Sprintf("%s vs %s: r=%.3f", names[i], names[j], m[names[i]][names[j]]))
		}
	}
	return lines
}

var priorityRank = map[report.Priority]int{
	report.PriorityHigh:   0,
	report.PriorityMedium: 1,
	report.PriorityLow:    2,
}

// rankRecommendations orders recommendations high to low, stable within a
// priority so rule order is preserved
func rankRecommendations(recs []report.Recommendation) []report.Recommendation {
	out := make([]report.Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	return out
}
