package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/ShelfSort/internal/engine"
)

// ComparisonChart builds a bar chart of fill and shelves used per
// scenario. Failed scenarios plot as zero.
func ComparisonChart(results []engine.ComparisonResult) *charts.Bar {
	names := make([]string, 0, len(results))
	fill := make([]opts.BarData, 0, len(results))
	used := make([]opts.BarData, 0, len(results))
	failed := 0

	for _, r := range results {
		names = append(names, r.Scenario.Name)
		if !r.OK() {
			failed++
			fill = append(fill, opts.BarData{Value: 0})
			used = append(used, opts.BarData{Value: 0})
			continue
		}
		fill = append(fill, opts.BarData{Value: r.FillPercent})
		used = append(used, opts.BarData{Value: r.ShelvesUsed})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ShelfSort comparison"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Scenario comparison",
			Subtitle: fmt.Sprintf("%d scenarios, %d failed", len(results), failed),
		}),
	)
	bar.SetXAxis(names).
		AddSeries("Fill %", fill).
		AddSeries("Shelves used", used)
	return bar
}

// WriteComparisonChart renders the comparison chart as a standalone HTML page.
func WriteComparisonChart(w io.Writer, results []engine.ComparisonResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no scenarios to chart")
	}
	return ComparisonChart(results).Render(w)
}

// ExportComparisonChart writes the comparison chart HTML page to path.
func ExportComparisonChart(path string, results []engine.ComparisonResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no scenarios to chart")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := WriteComparisonChart(f, results); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
