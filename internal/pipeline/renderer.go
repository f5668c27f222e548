package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pvolkov/koiscope/internal/model"
)

// Renderer writes catalog reports as JSON files, Markdown files, and terminal
// summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.CatalogReport, path string) error {
	return r.WriteJSON(report, path)
}

// WriteJSON writes any payload as indented JSON to path
func (r *Renderer) WriteJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report
func (r *Renderer) RenderMarkdown(report *model.CatalogReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Catalog Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **Source**: %s\n", report.Source)
	fmt.Fprintf(&b, "- **Loaded**: %s\n", report.LoadedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Records**: %d\n", report.Summary.TotalRecords)
	fmt.Fprintf(&b, "- **Stars**: %d\n\n", report.StarCount)

	b.WriteString("## Dispositions\n\n")
	b.WriteString("| Disposition | Count |\n|---|---|\n")
	for _, dc := range report.Summary.Dispositions {
		fmt.Fprintf(&b, "| %s | %d |\n", dc.Label, dc.Count)
	}
	b.WriteString("\n## Aggregates\n\n")
	fmt.Fprintf(&b, "- Median planet radius: %s R⊕\n", formatOptional(report.Summary.MedianPlanetRadius))
	fmt.Fprintf(&b, "- Mean brightness index: %s\n", formatOptional(report.Summary.MeanBrightnessIndex))
	fmt.Fprintf(&b, "- Temperate small worlds: %d\n", report.Summary.TemperateSmallWorlds)

	if len(report.Featured) > 0 {
		b.WriteString("\n## Featured planets\n\n")
		b.WriteString("| KOI | Name | Disposition | Score | Radius (R⊕) | Teq (K) | Axis (AU) |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, view := range report.Featured {
			name := view.CommonName
			if name == "" {
				name = "—"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				view.CatalogID, name, view.Disposition.Label(),
				formatOptional(view.Score), formatOptional(view.PlanetRadius),
				formatOptional(view.EqTemperature), formatOptional(view.SemiMajorAxisAU))
		}
	}

	if report.Drops.MissingIdentifier+report.Drops.MissingStarID+report.Drops.MissingCoordinates > 0 {
		b.WriteString("\n## Dropped rows\n\n")
		fmt.Fprintf(&b, "- Missing KOI designation: %d\n", report.Drops.MissingIdentifier)
		fmt.Fprintf(&b, "- Missing star identifier: %d\n", report.Drops.MissingStarID)
		fmt.Fprintf(&b, "- Missing coordinates: %d\n", report.Drops.MissingCoordinates)
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by koiscope. Aggregates never include fabricated values; star-map fallbacks apply only to plotting fields.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderSummary prints the headline numbers to stdout
func (r *Renderer) RenderSummary(report *model.CatalogReport) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", report.Subject)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Records:                %d\n", report.Summary.TotalRecords)
	fmt.Printf("  Confirmed:              %d\n", report.Summary.Confirmed)
	fmt.Printf("  Candidates:             %d\n", report.Summary.Candidates)
	fmt.Printf("  False positives:        %d\n", report.Summary.FalsePositives)
	fmt.Printf("  Median planet radius:   %s R⊕\n", formatOptional(report.Summary.MedianPlanetRadius))
	fmt.Printf("  Mean brightness index:  %s\n", formatOptional(report.Summary.MeanBrightnessIndex))
	fmt.Printf("  Temperate small worlds: %d\n", report.Summary.TemperateSmallWorlds)
	fmt.Printf("  Distinct stars:         %d\n", report.StarCount)
	if d := report.Drops; d.MissingIdentifier+d.MissingStarID+d.MissingCoordinates > 0 {
		fmt.Printf("  Dropped rows:           %d id / %d star / %d coords\n",
			d.MissingIdentifier, d.MissingStarID, d.MissingCoordinates)
	}
	fmt.Println()
}

// formatOptional renders a nullable quantity, using an em-width dash for nil
// so missing values are visibly missing rather than zero
func formatOptional(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.3g", *v)
}
