package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"healeo-sense/internal/engine"
	"healeo-sense/internal/models"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

type Writer struct {
	format Format
	output io.Writer
}

func NewWriter(format Format, output io.Writer) *Writer {
	return &Writer{format: format, output: output}
}

func (w *Writer) WriteRecommendation(resp models.RecommendationResponse) error {
	if w.format == FormatTable {
		return w.recommendationTable(resp)
	}
	return w.encode(resp)
}

func (w *Writer) WriteCatalogue(c *engine.Catalogue) error {
	if w.format == FormatTable {
		return w.catalogueTable(c)
	}
	return w.encode(c)
}

func (w *Writer) encode(v any) error {
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w.output)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) recommendationTable(resp models.RecommendationResponse) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)

	r := resp.Readings
	fmt.Fprintln(tw, "READING\tVALUE")
	fmt.Fprintf(tw, "BP\t%d\n", r.BloodPressureSystolic)
	fmt.Fprintf(tw, "SUGAR\t%d\n", r.BloodSugar)
	fmt.Fprintf(tw, "PROTEIN\t%d\n", r.ProteinLevel)
	fmt.Fprintf(tw, "CALORIES\t%d\n", r.Calories)
	fmt.Fprintf(tw, "FIBER\t%d\n", r.Fiber)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Personalized Indian Menu (%s, %s)\n", resp.MealPeriod, resp.Preference)
	writeRows(tw, resp.Rows)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Recommended water intake:\t%.1f L/day\n", resp.HydrationLitres)
	return tw.Flush()
}

func (w *Writer) catalogueTable(c *engine.Catalogue) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)

	periods := make([]string, 0, len(c.Periods))
	for p := range c.Periods {
		periods = append(periods, string(p))
	}
	sort.Strings(periods)
	sort.SliceStable(periods, func(i, j int) bool {
		return periodOrder(periods[i]) < periodOrder(periods[j])
	})

	for _, p := range periods {
		fmt.Fprintf(tw, "%s\n", p)
		writeRows(tw, c.Periods[engine.MealPeriod(p)].Rows(engine.Placeholder))
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "%s (any period)\n", engine.HighProtein)
	writeRows(tw, c.HighProtein.Rows(engine.Placeholder))

	return tw.Flush()
}

func writeRows(tw io.Writer, rows []engine.MenuRow) {
	fmt.Fprintln(tw, "VEGETARIAN\tNON-VEGETARIAN")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.Vegetarian, row.NonVegetarian)
	}
}

// periodOrder ranks periods by time of day; unknown names sort last.
func periodOrder(p string) int {
	for i, known := range engine.SupportedMealPeriods() {
		if strings.EqualFold(p, known) {
			return i
		}
	}
	return len(engine.SupportedMealPeriods())
}
