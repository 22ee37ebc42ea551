package chart

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	mstats "github.com/montanaflynn/stats"

	"coassoc/domain/core"
)

const (
	boxplotWidth  = 640
	boxplotHeight = 480
	boxplotMargin = 60
)

type boxStats struct {
	q1, median, q3       float64
	whiskerLo, whiskerHi float64
}

// ExpressionBoxplot draws side-by-side boxplots of Ct ratios for the two
// collapsed genotype groups. go-chart has no box-and-whisker primitive,
// so the boxes are drawn directly.
func ExpressionBoxplot(path, title string, labels [2]string, groups [2][]float64) error {
	var stats [2]boxStats
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, g := range groups {
		s, err := summarize(g)
		if err != nil {
			return fmt.Errorf("group %s: %w", labels[i], err)
		}
		stats[i] = s
		lo = math.Min(lo, s.whiskerLo)
		hi = math.Max(hi, s.whiskerHi)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	lo, hi = lo-pad, hi+pad

	dc := gg.NewContext(boxplotWidth, boxplotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, boxplotWidth/2, boxplotMargin/2, 0.5, 0.5)

	// Map a value onto the vertical plot area.
	yOf := func(v float64) float64 {
		frac := (v - lo) / (hi - lo)
		return float64(boxplotHeight-boxplotMargin) - frac*float64(boxplotHeight-2*boxplotMargin)
	}

	boxW := 120.0
	for i, s := range stats {
		cx := float64(boxplotWidth) * (float64(i)*0.5 + 0.25)

		// Whiskers.
		dc.DrawLine(cx, yOf(s.whiskerLo), cx, yOf(s.q1))
		dc.DrawLine(cx, yOf(s.q3), cx, yOf(s.whiskerHi))
		dc.DrawLine(cx-boxW/4, yOf(s.whiskerLo), cx+boxW/4, yOf(s.whiskerLo))
		dc.DrawLine(cx-boxW/4, yOf(s.whiskerHi), cx+boxW/4, yOf(s.whiskerHi))
		dc.Stroke()

		// Box and median.
		dc.DrawRectangle(cx-boxW/2, yOf(s.q3), boxW, yOf(s.q1)-yOf(s.q3))
		dc.Stroke()
		dc.SetLineWidth(2)
		dc.DrawLine(cx-boxW/2, yOf(s.median), cx+boxW/2, yOf(s.median))
		dc.Stroke()
		dc.SetLineWidth(1)

		dc.DrawStringAnchored(labels[i], cx, float64(boxplotHeight)-boxplotMargin/2, 0.5, 0.5)
	}

	return dc.SavePNG(path)
}

// summarize computes box quartiles and Tukey whiskers (furthest points
// within 1.5 IQR of the box).
func summarize(data []float64) (boxStats, error) {
	if len(data) < 3 {
		return boxStats{}, fmt.Errorf("%w: boxplot needs n >= 3, got %d",
			core.ErrInsufficientData, len(data))
	}
	q1, _ := mstats.Percentile(data, 25)
	med, _ := mstats.Median(data)
	q3, _ := mstats.Percentile(data, 75)
	iqr := q3 - q1

	s := boxStats{q1: q1, median: med, q3: q3}
	s.whiskerLo, s.whiskerHi = q1, q3
	for _, v := range data {
		if v >= q1-1.5*iqr && v < s.whiskerLo {
			s.whiskerLo = v
		}
		if v <= q3+1.5*iqr && v > s.whiskerHi {
			s.whiskerHi = v
		}
	}
	return s, nil
}
