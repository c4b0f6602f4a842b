package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"lambda-ca/internal/analysis"
	"lambda-ca/internal/store"
)

var csvHeader = []string{
	"index", "source", "width", "height", "k", "r", "rule", "langton", "random",
	"repetitions", "cycles", "mean_cycle", "final_activity", "steps", "error",
}

// WriteCSV writes a header followed by one row per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		c := r.Point.Config
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		row := []string{
			strconv.Itoa(r.Point.Index),
			string(c.Source),
			strconv.Itoa(c.Width),
			strconv.Itoa(c.Height),
			strconv.Itoa(c.K),
			strconv.Itoa(c.R),
			strconv.FormatUint(c.Rule, 10),
			formatFloat(c.Langton),
			strconv.FormatBool(c.Random),
			strconv.Itoa(r.Point.Repetitions),
			strconv.Itoa(r.Cycles),
			formatFloat(r.MeanCycle),
			formatFloat(r.FinalActivity),
			strconv.Itoa(r.Steps),
			errText,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMeansLine appends the mean cycle lengths as one line, each value
// followed by a comma.
func WriteMeansLine(w io.Writer, results []Result) error {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(formatFloat(r.MeanCycle))
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// ReadMeansLine parses a line written by WriteMeansLine.
func ReadMeansLine(line string) ([]float64, error) {
	line = strings.TrimSpace(line)
	var means []float64
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("sweep: bad mean %q: %w", field, err)
		}
		means = append(means, v)
	}
	return means, nil
}

// Summary renders the mean cycle lengths as a terminal line graph followed
// by a short tally.
func Summary(results []Result, caption string) string {
	if len(results) == 0 {
		return "no results\n"
	}
	means := Means(results)
	var b strings.Builder
	if len(means) > 1 {
		b.WriteString(asciigraph.Plot(means,
			asciigraph.Height(10),
			asciigraph.Width(min(len(means)*2, 80)),
			asciigraph.Caption(caption)))
		b.WriteByte('\n')
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(&b, "points=%d failed=%d zero-mean=%d\n",
		len(results), failed, analysis.CountZeros(means))
	return b.String()
}

// StorePoints converts results into rows for the store.
func StorePoints(runID string, results []Result) []store.Point {
	points := make([]store.Point, len(results))
	for i, r := range results {
		c := r.Point.Config
		p := store.Point{
			RunID:         runID,
			Index:         r.Point.Index,
			Width:         c.Width,
			Height:        c.Height,
			K:             c.K,
			R:             c.R,
			Rule:          c.Rule,
			Langton:       c.Langton,
			Random:        c.Random,
			Repetitions:   r.Point.Repetitions,
			Cycles:        r.Cycles,
			MeanCycle:     r.MeanCycle,
			FinalActivity: r.FinalActivity,
			Steps:         r.Steps,
		}
		if r.Err != nil {
			p.Error = r.Err.Error()
		}
		points[i] = p
	}
	return points
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
