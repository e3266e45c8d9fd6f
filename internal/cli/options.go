// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"dietadapt/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	DietFile string
	Setup    string

	// Optional growth validation
	ModelsDir        string
	Threads          int
	GrowthThreshold  float64
	NoGrowthExitCode int

	// Output
	Header  bool // true unless --no-header
	Verbose bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: adapt a dietary constraint table to AGORA metabolic models

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.DietFile, "diet", "", "TSV diet file: exchange identifier, uptake magnitude [*]")
	fs.StringVar(&opt.Setup, "setup", "", "output setup: AGORA | Pairwise | Microbiota [*]")

	// Growth validation
	fs.StringVar(&opt.ModelsDir, "models", "", "directory of COBRA JSON models; enables the growth check")
	fs.IntVar(&opt.Threads, "threads", 0, "growth-check worker threads (0 = all CPUs) [0]")
	fs.Float64Var(&opt.GrowthThreshold, "growth-threshold", 1e-5, "minimum biomass flux counted as growth [1e-5]")
	fs.IntVar(&opt.NoGrowthExitCode, "no-growth-exit-code", 4, "exit code when a model fails the growth check [4]")

	// Output
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug-level logging on stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	if opt.DietFile == "" {
		return opt, errors.New("--diet is required")
	}
	if opt.Setup == "" {
		return opt, errors.New("--setup is required")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.GrowthThreshold <= 0 {
		return opt, errors.New("--growth-threshold must be > 0")
	}
	if opt.NoGrowthExitCode < 0 {
		return opt, errors.New("--no-growth-exit-code must be ≥ 0")
	}
	return opt, nil
}
