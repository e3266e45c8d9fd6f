// internal/growth/validate.go
//
// Package growth checks that a collection of model files achieves biomass
// flux under a candidate diet. Model loading and optimization sit behind the
// Loader capability so the loop is testable without a solver.
package growth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"dietadapt/internal/diet"
)

// Model is the slice of a loaded reconstruction the validator needs.
type Model interface {
	ApplyDiet(t diet.Table)
	Grow() (float64, error)
}

// Loader turns a model file path into a Model.
type Loader interface {
	Load(path string) (Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (Model, error)

func (f LoaderFunc) Load(path string) (Model, error) { return f(path) }

// Config controls a validation run. Solver configuration is explicit here;
// there is no package-level solver state.
type Config struct {
	// Threshold is the minimum objective value counted as growth.
	Threshold float64
	// Threads is the worker count; 0 means one worker per model file.
	Threads int
	// Pattern is the model filename glob, default "*.json".
	Pattern string
}

// DefaultThreshold is the growth cutoff used when Config.Threshold is 0.
const DefaultThreshold = 1e-5

// Result is one model's outcome.
type Result struct {
	Path      string
	Objective float64
	Grew      bool
}

// Report aggregates a run over a model directory.
type Report struct {
	Results []Result
	AllGrew bool
}

// Validate applies the diet to every model file in dir and optimizes each
// model's biomass. Models are independent, so files fan out to a worker pool;
// the first load or solve error cancels the remaining work and fails the whole
// stage. Results are reported in path order regardless of completion order.
func Validate(ctx context.Context, dir string, t diet.Table, ld Loader, cfg Config, log *zap.Logger) (Report, error) {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "*.json"
	}

	paths, err := listModels(dir, cfg.Pattern)
	if err != nil {
		return Report{}, err
	}
	workers := cfg.Threads
	if workers <= 0 || workers > len(paths) {
		workers = len(paths)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string, workers)
	results := make(chan Result, workers)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case path, ok := <-jobs:
					if !ok {
						return
					}
					r, err := testModel(path, t, ld, cfg.Threshold)
					if err != nil {
						fail(err)
						return
					}
					log.Debug("model tested",
						zap.String("model", path),
						zap.Float64("objective", r.Objective),
						zap.Bool("grew", r.Grew))
					select {
					case results <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	var (
		cwg      sync.WaitGroup
		gathered []Result
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			gathered = append(gathered, r)
		}
	}()

feed:
	for _, p := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if firstErr != nil {
		return Report{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	sort.Slice(gathered, func(i, j int) bool { return gathered[i].Path < gathered[j].Path })
	rep := Report{Results: gathered, AllGrew: true}
	for _, r := range gathered {
		if !r.Grew {
			rep.AllGrew = false
			log.Warn("model failed to grow",
				zap.String("model", r.Path),
				zap.Float64("objective", r.Objective))
		}
	}
	return rep, nil
}

func testModel(path string, t diet.Table, ld Loader, threshold float64) (Result, error) {
	m, err := ld.Load(path)
	if err != nil {
		return Result{}, err
	}
	m.ApplyDiet(t)
	obj, err := m.Grow()
	if err != nil {
		return Result{}, err
	}
	return Result{Path: path, Objective: obj, Grew: obj > threshold}, nil
}

func listModels(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("model directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("model pattern %q: %w", pattern, err)
		}
		if ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("model directory %s: no files match %q", dir, pattern)
	}
	sort.Strings(paths)
	return paths, nil
}
