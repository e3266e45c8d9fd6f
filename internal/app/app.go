// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dietadapt/internal/adapt"
	"dietadapt/internal/cli"
	"dietadapt/internal/cobramodel"
	"dietadapt/internal/diet"
	"dietadapt/internal/growth"
	"dietadapt/internal/output"
	"dietadapt/internal/refdata"
	"dietadapt/internal/version"
)

// Exit codes: 0 success, 1 runtime failure, 2 usage or input error, 3 output
// flush failure, and Options.NoGrowthExitCode when the growth check ran and a
// model failed it.

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("dietadapt")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); output.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); output.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "dietadapt version %s\n", version.Version)
		if e := outw.Flush(); output.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	setup, err := adapt.ParseSetup(opts.Setup)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := newLogger(stderr, opts.Verbose)
	defer func() { _ = log.Sync() }()

	lists, err := refdata.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	table, err := diet.LoadTSV(opts.DietFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Debug("diet loaded", zap.String("file", opts.DietFile), zap.Int("rows", len(table)))

	adapted, snap := adapt.Apply(table, lists)
	log.Debug("diet adapted", zap.Int("rows", len(adapted)))

	code := 0
	if opts.ModelsDir != "" {
		threads := opts.Threads
		if threads == 0 {
			threads = runtime.NumCPU()
		}
		cfg := growth.Config{Threshold: opts.GrowthThreshold, Threads: threads}
		loader := growth.LoaderFunc(func(path string) (growth.Model, error) {
			m, err := cobramodel.Load(path)
			if err != nil {
				return nil, err
			}
			return m, nil
		})
		corrected := adapt.CorrectedForValidation(adapted)
		report, err := growth.Validate(parent, opts.ModelsDir, corrected, loader, cfg, log)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		log.Info("growth check done",
			zap.Int("models", len(report.Results)),
			zap.Bool("all_grew", report.AllGrew))
		if !report.AllGrew {
			_, _ = fmt.Fprintln(stderr, "warning: not all models achieved growth on the adapted diet")
			code = opts.NoGrowthExitCode
		}
	}

	if err := adapt.Rewrite(adapted, snap, setup); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if err := output.WriteTable(outw, adapted, opts.Header); err != nil {
		if output.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := outw.Flush(); output.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// newLogger builds a stderr logger: debug-level console output with --verbose,
// warnings and up otherwise.
func newLogger(stderr io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	encCfg := zap.NewProductionEncoderConfig()
	if verbose {
		level = zapcore.DebugLevel
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(stderr),
		level,
	)
	return zap.New(core)
}
