package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mera/internal/config"
	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/serialization"
	"github.com/born-ml/mera/internal/srep"
	"github.com/born-ml/mera/internal/tensor"
)

func evalCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML run configuration")
	breakup := fs.Bool("breakup", false, "evaluate through pairwise temporaries")
	matrix := fs.Bool("matrix", false, "print a rank-2 real result as a matrix")
	verbose := fs.Bool("verbose", false, "log evaluation steps")
	save := fs.String("save", "", "write every tensor, the result included, to a .mera snapshot")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("eval needs exactly one equation argument")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if *breakup {
		cfg.Evaluator = config.EvaluatorBreakup
	}
	if *verbose {
		cfg.Verbose = true
	}

	text := fs.Arg(0)
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)

	runID := uuid.NewString()
	logger := newLogger(stderr, cfg.Verbose).With(slog.String("run", runID))
	ecfg := eval.Config{Breakup: cfg.Evaluator == config.EvaluatorBreakup, Logger: logger}
	opts := output{matrix: *matrix, save: *save, runID: runID}

	if cfg.Scalar == config.ScalarComplex {
		opts.matrix = false
		return evaluate[complex128](&cfg, text, ecfg, opts, stdout)
	}
	return evaluate[float64](&cfg, text, ecfg, opts, stdout)
}

// output selects how an evaluation result is reported.
type output struct {
	matrix bool
	save   string
	runID  string
}

func evaluate[T tensor.Scalar](cfg *config.Config, text string, ecfg eval.Config, opts output, stdout io.Writer) error {
	reg, err := config.BuildRegistry[T](cfg)
	if err != nil {
		return err
	}
	eq, err := srep.ParseEquation(text)
	if err != nil {
		return err
	}
	if _, ok := reg.Lookup(eq.OutputName(), eq.OutputID()); !ok {
		if _, err := reg.Add(eq.OutputName(), eq.OutputID(), tensor.NewScalar[T]()); err != nil {
			return err
		}
	}

	ev, err := eval.New(eq, reg, ecfg)
	if err != nil {
		return err
	}
	ecfg.Logger.Info("evaluating", slog.String("equation", eq.String()), slog.Bool("breakup", ecfg.Breakup))
	if err := ev.Run(); err != nil {
		return err
	}

	if opts.save != "" {
		meta := map[string]string{"equation": eq.String(), "run": opts.runID}
		if err := serialization.Save(opts.save, reg, meta); err != nil {
			return err
		}
		ecfg.Logger.Info("snapshot saved", slog.String("path", opts.save), slog.Int("tensors", reg.Len()))
	}

	out := ev.Output()
	if out.Args() == 0 {
		v, err := ev.Scalar()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, v)
		return err
	}
	if d, ok := any(out).(*tensor.Dense[float64]); ok && opts.matrix && d.Args() == 2 {
		m, err := tensor.ToMatrix(d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%v\n", mat.Formatted(m))
		return err
	}
	return ev.PrintResult(stdout)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
