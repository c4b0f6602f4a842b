package sweep

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"lambda-ca/internal/analysis"
	"lambda-ca/internal/lcg"
)

// Result summarises every repetition of one point.
type Result struct {
	Point Point

	// Cycles is the number of cycle lengths observed over all repetitions.
	Cycles    int
	MeanCycle float64
	// FinalActivity is the mean fraction of non-quiescent cells in the last
	// row of each repetition.
	FinalActivity float64
	Steps         int
	Elapsed       time.Duration
	Err           error
}

// Runner evaluates points on a pool of workers. Each point gets its own
// engine and an LCG register seeded from Register in point order before
// dispatch, so successive points diverge while results stay independent of
// scheduling.
type Runner struct {
	Workers int
	Logger  *log.Logger

	// Register hands out one seed per point. It persists across calls to
	// Run; nil means a register starting at lcg.DefaultSeed.
	Register *lcg.LCG
}

// seed copies points, drawing each point's seed from the runner's register.
func (r *Runner) seed(points []Point) []Point {
	if r.Register == nil {
		r.Register = lcg.NewDefault()
	}
	seeded := make([]Point, len(points))
	for i, p := range points {
		p.Seed = r.Register.Advance()
		seeded[i] = p
	}
	return seeded
}

// Run evaluates points and returns one result per point, in point order.
// Points that fail carry their error in Result.Err. If ctx is cancelled the
// results gathered so far are returned with ctx's error.
func (r *Runner) Run(ctx context.Context, points []Point) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(points), 1))
	points = r.seed(points)

	logger.Info("sweep starting", "points", len(points), "workers", workers)
	start := time.Now()

	type job struct {
		slot  int
		point Point
	}
	type done struct {
		slot int
		res  Result
	}

	jobs := make(chan job)
	results := make(chan done)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := Evaluate(j.point)
				select {
				case results <- done{slot: j.slot, res: res}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, p := range points {
			select {
			case jobs <- job{slot: i, point: p}:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := make([]Result, len(points))
	filled := make([]bool, len(points))
	completed := 0
	for d := range results {
		out[d.slot] = d.res
		filled[d.slot] = true
		completed++
		if d.res.Err != nil {
			logger.Warn("point failed", "index", d.res.Point.Index, "err", d.res.Err)
			continue
		}
		logger.Debug("point done",
			"index", d.res.Point.Index,
			"label", d.res.Point.Label(),
			"cycles", d.res.Cycles,
			"mean", d.res.MeanCycle,
			"elapsed", d.res.Elapsed)
	}

	if err := ctx.Err(); err != nil {
		partial := make([]Result, 0, completed)
		for i, ok := range filled {
			if ok {
				partial = append(partial, out[i])
			}
		}
		logger.Warn("sweep cancelled", "completed", completed, "points", len(points))
		return partial, err
	}

	logger.Info("sweep finished", "points", len(points), "elapsed", time.Since(start))
	return out, nil
}

// Evaluate runs a single point on a fresh engine seeded with p.Seed. Cycle
// lengths are pooled across repetitions before averaging.
func Evaluate(p Point) (res Result) {
	res.Point = p
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	e, err := p.Engine()
	if err != nil {
		res.Err = err
		return res
	}

	var cycles []int
	var activity float64
	reps := max(p.Repetitions, 1)
	for i := 0; i < reps; i++ {
		if err := e.Reset(); err != nil {
			res.Err = err
			return res
		}
		res.Steps += e.Run()
		cycles = append(cycles, analysis.Cycles(e.Rows())...)
		activity += analysis.Activity(e.Latest(), e.Table().Quiescent())
	}

	res.Cycles = len(cycles)
	res.MeanCycle = analysis.Mean(cycles)
	res.FinalActivity = activity / float64(reps)
	return res
}

// Means returns the mean cycle length of every result, in order.
func Means(results []Result) []float64 {
	means := make([]float64, len(results))
	for i, r := range results {
		means[i] = r.MeanCycle
	}
	return means
}
