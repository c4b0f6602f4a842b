package sweep

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"lambda-ca/internal/analysis"
)

// Series is one scatter series of swept values against mean cycle length.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// SeriesFromResults pairs every point's rule value (or lambda) with its mean
// cycle length.
func SeriesFromResults(name string, results []Result) Series {
	s := Series{Name: name, X: make([]float64, len(results)), Y: make([]float64, len(results))}
	for i, r := range results {
		s.X[i] = r.Point.Label()
		s.Y[i] = r.MeanCycle
	}
	return s
}

var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	{R: 255, G: 165, B: 0, A: 255},
	{R: 128, G: 0, B: 128, A: 255},
}

// PlotMeans renders the series as a PNG scatter plot.
func PlotMeans(w io.Writer, title, xLabel string, series []Series) error {
	if len(series) == 0 {
		return errors.New("sweep: nothing to plot")
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMax := 0.0
	var cs []chart.Series
	for i, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("sweep: series %q has %d x values and %d y values", s.Name, len(s.X), len(s.Y))
		}
		for j := range s.X {
			xMin = math.Min(xMin, s.X[j])
			xMax = math.Max(xMax, s.X[j])
			yMax = math.Max(yMax, s.Y[j])
		}
		color := seriesColors[i%len(seriesColors)]
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}
	if math.IsInf(xMin, 1) {
		return errors.New("sweep: nothing to plot")
	}
	// A flat range cannot be drawn.
	if xMin == xMax {
		xMin, xMax = xMin-1, xMax+1
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  xLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  "Avg Cycle",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax + 1},
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// PlotZeroCounts renders, per series, how many points had no cycles at all.
func PlotZeroCounts(w io.Writer, title string, series []Series) error {
	if len(series) == 0 {
		return errors.New("sweep: nothing to plot")
	}
	bars := make([]chart.Value, len(series))
	top := 0
	for i, s := range series {
		n := analysis.CountZeros(s.Y)
		top = max(top, n)
		bars[i] = chart.Value{
			Label: s.Name,
			Value: float64(n),
			Style: chart.Style{
				FillColor:   seriesColors[i%len(seriesColors)],
				StrokeColor: seriesColors[i%len(seriesColors)],
			},
		}
	}

	graph := chart.BarChart{
		Title:  title,
		Width:  max(180*len(bars), 400),
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth:   60,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top + 1)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
