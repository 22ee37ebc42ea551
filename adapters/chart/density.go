// Package chart renders the report figures: an age density plot, a
// conditional-proportion bar chart per locus, and an expression boxplot.
package chart

import (
	"fmt"
	"math"
	"os"

	mstats "github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"coassoc/domain/core"
)

const kdeGridPoints = 200

// AgeDensity renders overlaid kernel density estimates of age for the two
// outcome groups.
func AgeDensity(path string, labelA string, groupA []float64, labelB string, groupB []float64) error {
	xa, ya, err := gaussianKDE(groupA)
	if err != nil {
		return err
	}
	xb, yb, err := gaussianKDE(groupB)
	if err != nil {
		return err
	}

	graph := chart.Chart{
		Title: "Age distribution by outcome",
		XAxis: chart.XAxis{Name: "age (years)"},
		YAxis: chart.YAxis{Name: "density"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    labelA,
				XValues: xa,
				YValues: ya,
				Style:   chart.Style{StrokeColor: drawing.ColorBlue, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    labelB,
				XValues: xb,
				YValues: yb,
				Style:   chart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

// gaussianKDE evaluates a Gaussian kernel density estimate on a regular
// grid spanning the data plus three bandwidths on each side. Bandwidth is
// Silverman's rule of thumb.
func gaussianKDE(data []float64) (xs, ys []float64, err error) {
	n := len(data)
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: density estimate needs n >= 2, got %d",
			core.ErrInsufficientData, n)
	}
	sd, _ := mstats.StandardDeviationSample(data)
	if sd == 0 {
		return nil, nil, fmt.Errorf("%w: constant sample", core.ErrZeroVariance)
	}
	h := 1.06 * sd * math.Pow(float64(n), -0.2)

	lo, _ := mstats.Min(data)
	hi, _ := mstats.Max(data)
	lo -= 3 * h
	hi += 3 * h

	xs = make([]float64, kdeGridPoints)
	ys = make([]float64, kdeGridPoints)
	step := (hi - lo) / float64(kdeGridPoints-1)
	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i := range xs {
		x := lo + float64(i)*step
		xs[i] = x
		sum := 0.0
		for _, v := range data {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		ys[i] = norm * sum
	}
	return xs, ys, nil
}
