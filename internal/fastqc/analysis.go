package fastqc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lucasnoah/readqc/internal/report"
)

// Analysis is one FastQC run over a set of read files. Settings are fixed at
// construction; construct a new Analysis to change them. The tool is not
// executed until Results is first called, and a successful run is cached for
// the lifetime of the Analysis.
type Analysis struct {
	readPaths []string
	outDir    string
	threads   int
	binary    string
	runner    CommandRunner
	logger    *slog.Logger

	mu      sync.Mutex
	ran     bool
	results map[string]*report.Results
}

// Option configures an Analysis.
type Option func(*Analysis)

// WithOutDir directs FastQC output to dir instead of each read file's
// directory.
func WithOutDir(dir string) Option {
	return func(a *Analysis) { a.outDir = dir }
}

// WithThreads sets FastQC's worker thread count. Values below 1 are ignored.
func WithThreads(n int) Option {
	return func(a *Analysis) {
		if n > 0 {
			a.threads = n
		}
	}
}

// WithBinary overrides the fastqc executable name or path.
func WithBinary(bin string) Option {
	return func(a *Analysis) {
		if bin != "" {
			a.binary = bin
		}
	}
}

// WithRunner substitutes the command runner. Used by tests.
func WithRunner(r CommandRunner) Option {
	return func(a *Analysis) { a.runner = r }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analysis) { a.logger = l }
}

// NewAnalysis creates an Analysis over the given read files.
func NewAnalysis(readPaths []string, opts ...Option) *Analysis {
	a := &Analysis{
		readPaths: append([]string(nil), readPaths...),
		threads:   1,
		binary:    "fastqc",
		runner:    &ExecRunner{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// ReadPaths returns the read files covered by this analysis.
func (a *Analysis) ReadPaths() []string {
	return append([]string(nil), a.readPaths...)
}

// OutDir returns the configured output directory ("" means FastQC's default,
// next to each input file).
func (a *Analysis) OutDir() string { return a.outDir }

// Threads returns the configured thread count.
func (a *Analysis) Threads() int { return a.threads }

// Results runs FastQC if it has not run yet and returns the parsed report
// for every read file, keyed by read path. Only a fully successful run is
// cached; after a failure the next call executes the tool again.
func (a *Analysis) Results(ctx context.Context) (map[string]*report.Results, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ran {
		return a.results, nil
	}

	args := a.commandArgs()
	a.logger.Info("running fastqc",
		"binary", a.binary,
		"files", len(a.readPaths),
		"threads", a.threads,
	)
	_, stderr, exitCode, err := a.runner.Run(ctx, a.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("run fastqc: %w", err)
	}
	if exitCode != 0 {
		return nil, fmt.Errorf("fastqc exited with code %d: %s", exitCode, tail(stderr, 2000))
	}

	results, err := a.parseReports(ctx)
	if err != nil {
		return nil, err
	}
	a.results = results
	a.ran = true
	return a.results, nil
}

// commandArgs builds the fastqc argv (without the binary itself).
func (a *Analysis) commandArgs() []string {
	args := []string{"--extract", "-T", strconv.Itoa(a.threads)}
	if a.outDir != "" {
		args = append(args, "-o", a.outDir)
	}
	return append(args, a.readPaths...)
}

// ReportPath returns where FastQC writes the data report for one read file:
// <outdir>/<basename before first dot>_fastqc/fastqc_data.txt, with the read
// file's own directory standing in when no output directory is set.
func (a *Analysis) ReportPath(readPath string) string {
	dir := a.outDir
	if dir == "" {
		dir = filepath.Dir(readPath)
	}
	base, _, _ := strings.Cut(filepath.Base(readPath), ".")
	return filepath.Join(dir, base+"_fastqc", "fastqc_data.txt")
}

// parseReports parses every read file's report. Parses run concurrently;
// each parse owns its Results exclusively, so no coordination is needed
// beyond collecting into the pre-sized slice.
func (a *Analysis) parseReports(ctx context.Context) (map[string]*report.Results, error) {
	parsed := make([]*report.Results, len(a.readPaths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.threads)
	for i, path := range a.readPaths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := report.ParseFile(a.ReportPath(path))
			if err != nil {
				return fmt.Errorf("report for %s: %w", path, err)
			}
			parsed[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string]*report.Results, len(a.readPaths))
	for i, path := range a.readPaths {
		results[path] = parsed[i]
	}
	return results, nil
}

// tail returns at most n trailing bytes of s; errors and tracebacks are
// usually at the end.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n:]
}
