// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func mustFail(t *testing.T, args ...string) {
	t.Helper()
	if _, err := ParseArgs(newFS(), args); err == nil {
		t.Fatalf("want parse error for %v", args)
	}
}

func TestMinimalOK(t *testing.T) {
	o := mustParse(t, "--diet", "d.tsv", "--setup", "AGORA")
	if o.DietFile != "d.tsv" || o.Setup != "AGORA" {
		t.Errorf("got %+v", o)
	}
	if !o.Header {
		t.Errorf("header should default on")
	}
	if o.GrowthThreshold != 1e-5 {
		t.Errorf("growth threshold default = %g", o.GrowthThreshold)
	}
	if o.NoGrowthExitCode != 4 {
		t.Errorf("no-growth exit code default = %d", o.NoGrowthExitCode)
	}
}

func TestModelsAndThreads(t *testing.T) {
	o := mustParse(t, "--diet", "d.tsv", "--setup", "Microbiota", "--models", "models/", "--threads", "8")
	if o.ModelsDir != "models/" || o.Threads != 8 {
		t.Errorf("got %+v", o)
	}
}

func TestNoHeader(t *testing.T) {
	o := mustParse(t, "--diet", "d.tsv", "--setup", "Pairwise", "--no-header")
	if o.Header {
		t.Errorf("--no-header ignored")
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o := mustParse(t, "--version")
	if !o.Version {
		t.Errorf("version flag not set")
	}
}

func TestValidationFailures(t *testing.T) {
	mustFail(t, "--setup", "AGORA")
	mustFail(t, "--diet", "d.tsv")
	mustFail(t, "--diet", "d.tsv", "--setup", "AGORA", "--threads", "-1")
	mustFail(t, "--diet", "d.tsv", "--setup", "AGORA", "--growth-threshold", "0")
	mustFail(t, "--diet", "d.tsv", "--setup", "AGORA", "--no-growth-exit-code", "-2")
	mustFail(t, "--bogus")
}
