// internal/growth/validate_test.go
package growth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dietadapt/internal/diet"
)

type fakeModel struct {
	objective float64
	solveErr  error

	mu      sync.Mutex
	applied diet.Table
}

func (f *fakeModel) ApplyDiet(t diet.Table) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = t
}

func (f *fakeModel) Grow() (float64, error) { return f.objective, f.solveErr }

// modelDir creates one empty file per name so the directory listing has
// something to enumerate; the fake loader keys on the base name.
func modelDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("{}"), 0644))
	}
	return dir
}

func loaderFor(models map[string]*fakeModel) Loader {
	return LoaderFunc(func(path string) (Model, error) {
		m, ok := models[filepath.Base(path)]
		if !ok {
			return nil, errors.New("unexpected model " + path)
		}
		return m, nil
	})
}

func TestValidateAllGrew(t *testing.T) {
	models := map[string]*fakeModel{
		"a.json": {objective: 0.5},
		"b.json": {objective: 0.02},
	}
	dir := modelDir(t, "a.json", "b.json")
	tab := diet.Table{{ID: "EX_glc_D(e)", Lower: -10}}

	rep, err := Validate(context.Background(), dir, tab, loaderFor(models), Config{}, zap.NewNop())
	require.NoError(t, err)
	require.True(t, rep.AllGrew)
	require.Len(t, rep.Results, 2)

	// Results come back in path order regardless of completion order.
	require.Equal(t, filepath.Join(dir, "a.json"), rep.Results[0].Path)
	require.Equal(t, filepath.Join(dir, "b.json"), rep.Results[1].Path)

	for _, m := range models {
		require.Equal(t, tab, m.applied, "diet must be applied before optimizing")
	}
}

func TestValidateOneFails(t *testing.T) {
	models := map[string]*fakeModel{
		"a.json": {objective: 0.5},
		"b.json": {objective: 1e-9}, // below threshold
	}
	dir := modelDir(t, "a.json", "b.json")

	rep, err := Validate(context.Background(), dir, nil, loaderFor(models), Config{}, zap.NewNop())
	require.NoError(t, err)
	require.False(t, rep.AllGrew)
	require.True(t, rep.Results[0].Grew)
	require.False(t, rep.Results[1].Grew)
}

func TestValidateThresholdBoundary(t *testing.T) {
	// Growth requires strictly more than the threshold.
	models := map[string]*fakeModel{"a.json": {objective: 1e-5}}
	dir := modelDir(t, "a.json")
	rep, err := Validate(context.Background(), dir, nil, loaderFor(models), Config{Threshold: 1e-5}, zap.NewNop())
	require.NoError(t, err)
	require.False(t, rep.AllGrew)
}

func TestValidateLoadErrorIsFatal(t *testing.T) {
	dir := modelDir(t, "a.json", "b.json")
	boom := errors.New("corrupt model")
	ld := LoaderFunc(func(path string) (Model, error) {
		if filepath.Base(path) == "a.json" {
			return nil, boom
		}
		return &fakeModel{objective: 1}, nil
	})
	_, err := Validate(context.Background(), dir, nil, ld, Config{Threads: 1}, zap.NewNop())
	require.ErrorIs(t, err, boom)
}

func TestValidateSolveErrorIsFatal(t *testing.T) {
	boom := errors.New("solver blew up")
	models := map[string]*fakeModel{"a.json": {solveErr: boom}}
	dir := modelDir(t, "a.json")
	_, err := Validate(context.Background(), dir, nil, loaderFor(models), Config{}, zap.NewNop())
	require.ErrorIs(t, err, boom)
}

func TestValidateEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := Validate(context.Background(), dir, nil, loaderFor(nil), Config{}, zap.NewNop())
	require.Error(t, err)
}

func TestValidateIgnoresNonMatchingFiles(t *testing.T) {
	models := map[string]*fakeModel{"a.json": {objective: 1}}
	dir := modelDir(t, "a.json", "README.md")
	rep, err := Validate(context.Background(), dir, nil, loaderFor(models), Config{}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
}

func TestValidateMissingDirectory(t *testing.T) {
	_, err := Validate(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, loaderFor(nil), Config{}, zap.NewNop())
	require.Error(t, err)
}

func TestValidateManyWorkers(t *testing.T) {
	models := make(map[string]*fakeModel)
	var names []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		name := n + ".json"
		models[name] = &fakeModel{objective: 1}
		names = append(names, name)
	}
	dir := modelDir(t, names...)
	rep, err := Validate(context.Background(), dir, nil, loaderFor(models), Config{Threads: 4}, zap.NewNop())
	require.NoError(t, err)
	require.True(t, rep.AllGrew)
	require.Len(t, rep.Results, len(names))
}

func TestValidateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := modelDir(t, "a.json")
	_, err := Validate(ctx, dir, nil, loaderFor(map[string]*fakeModel{"a.json": {objective: 1}}), Config{}, zap.NewNop())
	require.Error(t, err)
}
