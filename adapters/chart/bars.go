package chart

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"coassoc/domain/stats"
)

// GenotypeProportions renders the genotype composition of each group as a
// bar chart, one bar per (genotype, group) pair, with the significance
// comparison annotated in the title.
func GenotypeProportions(path string, res *stats.FrequencyResult, chi *stats.ChiSquareResult) error {
	var bars []chart.Value
	for gi, group := range res.Groups {
		for li, level := range res.GenotypeLevels {
			bars = append(bars, chart.Value{
				Value: res.GenotypeProps[li][gi],
				Label: fmt.Sprintf("%s %s", level, group),
			})
		}
	}

	title := res.Locus
	if chi != nil {
		title = fmt.Sprintf("%s genotype proportions (chi2=%.2f, p=%.4f)",
			res.Locus, chi.Statistic, chi.PValue)
	}

	graph := chart.BarChart{
		Title:    title,
		Height:   512,
		BarWidth: 48,
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
