package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"lambda-ca/internal/store"
)

func TestParseLists(t *testing.T) {
	ints, err := parseInts(" 10, 20,,30 ")
	if err != nil || len(ints) != 3 || ints[2] != 30 {
		t.Fatalf("parseInts = %v, %v", ints, err)
	}
	if _, err := parseInts("1,x"); err == nil {
		t.Fatalf("expected error")
	}
	floats, err := parseFloats("0,0.5,1")
	if err != nil || len(floats) != 3 || floats[1] != 0.5 {
		t.Fatalf("parseFloats = %v, %v", floats, err)
	}
	if got, _ := parseFloats(""); got != nil {
		t.Fatalf("empty list should be nil, got %v", got)
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opt := options{
		From: 28, To: 32, Widths: "21,31", Height: 20, K: 2, R: 1, Reps: 1, Workers: 2,
		CSV:   filepath.Join(dir, "out.csv"),
		Means: filepath.Join(dir, "means.txt"),
		Plot:  filepath.Join(dir, "means.png"),
		Zeros: filepath.Join(dir, "zeros.png"),
		DB:    filepath.Join(dir, "runs.db"),
		Quiet: true,
	}
	if err := run(opt, log.New(io.Discard)); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	csvData, err := os.ReadFile(opt.CSV)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if lines := strings.Count(string(csvData), "\n"); lines != 11 {
		t.Fatalf("expected header plus 10 rows, got %d lines", lines)
	}

	// Means are appended, one line per run.
	if err := run(opt, log.New(io.Discard)); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	means, err := os.ReadFile(opt.Means)
	if err != nil {
		t.Fatalf("read means: %v", err)
	}
	if lines := strings.Count(string(means), "\n"); lines != 2 {
		t.Fatalf("expected 2 means lines, got %d", lines)
	}

	for _, p := range []string{opt.Plot, opt.Zeros} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Fatalf("missing plot %s: %v", p, err)
		}
	}

	db, err := store.NewSQLiteDB(opt.DB)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].PointCount != 10 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	points, err := db.ListPoints(runs[0].ID)
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(points) != 10 || points[0].Rule != 28 || points[5].Width != 31 {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestRunLangton(t *testing.T) {
	opt := options{Widths: "15", Height: 10, K: 2, R: 1, Lambdas: "0,0.5,1", Reps: 2, Workers: 1, Quiet: true}
	if err := run(opt, log.New(io.Discard)); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunRejectsBadShape(t *testing.T) {
	opt := options{Widths: "0", Height: 10, K: 2, R: 1, Quiet: true}
	if err := run(opt, log.New(io.Discard)); err == nil {
		t.Fatalf("expected error for zero width")
	}
}
