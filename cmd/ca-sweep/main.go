package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"lambda-ca/internal/app"
	"lambda-ca/internal/sims/kca"
	"lambda-ca/internal/store"
	"lambda-ca/internal/sweep"
)

type options struct {
	From    uint64 `json:"from"`
	To      uint64 `json:"to"`
	Widths  string `json:"widths"`
	Height  int    `json:"height"`
	K       int    `json:"k"`
	R       int    `json:"r"`
	Random  bool   `json:"random"`
	Lambdas string `json:"lambdas,omitempty"`
	Reps    int    `json:"reps"`
	Workers int    `json:"workers"`

	CSV   string `json:"-"`
	Means string `json:"-"`
	Plot  string `json:"-"`
	Zeros string `json:"-"`
	DB    string `json:"-"`
	Quiet bool   `json:"-"`
}

func main() {
	var opt options
	flag.Uint64Var(&opt.From, "from", 0, "first rule number")
	flag.Uint64Var(&opt.To, "to", 255, "last rule number (inclusive)")
	flag.StringVar(&opt.Widths, "widths", "50", "comma-separated grid widths; one plot series per width")
	flag.IntVar(&opt.Height, "height", 50, "rows per run")
	flag.IntVar(&opt.K, "k", 2, "number of states")
	flag.IntVar(&opt.R, "r", 1, "neighbourhood radius")
	flag.BoolVar(&opt.Random, "random", false, "start from a random row instead of a single seed")
	flag.StringVar(&opt.Lambdas, "langton", "", "comma-separated lambda values; switches to Langton tables")
	flag.IntVar(&opt.Reps, "reps", 1, "runs per point")
	flag.IntVar(&opt.Workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.StringVar(&opt.CSV, "csv", "", "write per-point results to this CSV file")
	flag.StringVar(&opt.Means, "means", "", "append the mean cycle lengths as one line to this file")
	flag.StringVar(&opt.Plot, "plot", "", "write a scatter plot of mean cycle lengths to this PNG")
	flag.StringVar(&opt.Zeros, "zeros", "", "write a bar chart of zero-cycle counts per width to this PNG")
	flag.StringVar(&opt.DB, "db", "", "record the run in this SQLite database")
	flag.BoolVar(&opt.Quiet, "q", false, "skip the terminal graph")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := app.NewLogger(*verbose)
	if err := run(opt, logger); err != nil {
		logger.Fatal("sweep failed", "err", err)
	}
}

func run(opt options, logger *log.Logger) error {
	widths, err := parseInts(opt.Widths)
	if err != nil {
		return fmt.Errorf("-widths: %w", err)
	}
	lambdas, err := parseFloats(opt.Lambdas)
	if err != nil {
		return fmt.Errorf("-langton: %w", err)
	}

	base := kca.DefaultConfig()
	base.Height = opt.Height
	base.K = opt.K
	base.R = opt.R
	base.Random = opt.Random
	space := sweep.Space{Widths: widths, Repetitions: opt.Reps}
	xLabel := "Rule"
	if len(lambdas) > 0 {
		base.Source = kca.SourceLangton
		space.Lambdas = lambdas
		xLabel = "Lambda"
	} else {
		space.Rules = sweep.RuleRange(opt.From, opt.To)
	}
	points := space.Points(base)
	if len(points) == 0 {
		return fmt.Errorf("empty sweep: rule range %d..%d", opt.From, opt.To)
	}
	for _, p := range points {
		if err := p.Config.ValidateShape(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runner := &sweep.Runner{Workers: opt.Workers, Logger: logger}
	results, err := runner.Run(ctx, points)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !opt.Quiet {
		fmt.Print(sweep.Summary(results, fmt.Sprintf("mean cycle by point (%s)", strings.ToLower(xLabel))))
	}

	if opt.CSV != "" {
		if err := writeFile(opt.CSV, false, func(f *os.File) error { return sweep.WriteCSV(f, results) }); err != nil {
			return err
		}
		logger.Info("wrote csv", "path", opt.CSV)
	}
	if opt.Means != "" {
		if err := writeFile(opt.Means, true, func(f *os.File) error { return sweep.WriteMeansLine(f, results) }); err != nil {
			return err
		}
		logger.Info("appended means", "path", opt.Means)
	}

	series := seriesByWidth(results)
	if opt.Plot != "" {
		title := fmt.Sprintf("Mean cycle length (k=%d, r=%d)", opt.K, opt.R)
		if err := writeFile(opt.Plot, false, func(f *os.File) error { return sweep.PlotMeans(f, title, xLabel, series) }); err != nil {
			return err
		}
		logger.Info("wrote plot", "path", opt.Plot)
	}
	if opt.Zeros != "" {
		if err := writeFile(opt.Zeros, false, func(f *os.File) error {
			return sweep.PlotZeroCounts(f, "Points without cycles", series)
		}); err != nil {
			return err
		}
		logger.Info("wrote zero counts", "path", opt.Zeros)
	}

	if opt.DB != "" {
		id, err := record(opt, results, elapsed, string(base.Source))
		if err != nil {
			return err
		}
		logger.Info("recorded run", "db", opt.DB, "id", id)
	}
	return nil
}

func record(opt options, results []sweep.Result, elapsed time.Duration, source string) (string, error) {
	db, err := store.NewSQLiteDB(opt.DB)
	if err != nil {
		return "", err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return "", err
	}

	params, err := json.Marshal(opt)
	if err != nil {
		return "", err
	}
	run := &store.Run{
		Source:     source,
		PointCount: len(results),
		Workers:    opt.Workers,
		Elapsed:    elapsed,
		ParamsJSON: string(params),
	}
	if err := db.SaveRun(run); err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	if err := db.SavePoints(run.ID, sweep.StorePoints(run.ID, results)); err != nil {
		return "", fmt.Errorf("save points: %w", err)
	}
	return run.ID, nil
}

func seriesByWidth(results []sweep.Result) []sweep.Series {
	var order []int
	groups := map[int][]sweep.Result{}
	for _, r := range results {
		w := r.Point.Config.Width
		if _, ok := groups[w]; !ok {
			order = append(order, w)
		}
		groups[w] = append(groups[w], r)
	}
	series := make([]sweep.Series, len(order))
	for i, w := range order {
		series[i] = sweep.SeriesFromResults(fmt.Sprintf("w=%d", w), groups[w])
	}
	return series
}

func writeFile(path string, appendMode bool, write func(*os.File) error) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, field := range splitList(s) {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, field := range splitList(s) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}
