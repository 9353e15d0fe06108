package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/toto/pkgs/diag"
	"github.com/aledsdavies/toto/pkgs/errors"
	"github.com/aledsdavies/toto/pkgs/lexer"
	"github.com/aledsdavies/toto/pkgs/telemetry"
)

// Exit code constants
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitLexicalError     = 3
)

type options struct {
	file     string
	format   string
	only     []string
	noTrivia bool
	compact  bool
	noColor  bool
	debug    bool
	stats    bool
	watch    bool
}

// streams are the process's standard files, swapped out in tests
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, s streams) int {
	cmd := newRootCmd(s)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var d *lexer.Diagnostic
	if !stderrors.As(err, &d) {
		// Diagnostics are already rendered with their source excerpt
		fmt.Fprintf(s.err, "Error: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var d *lexer.Diagnostic
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.As(err, &d):
		return ExitLexicalError
	case errors.IsErrorType(err, errors.ErrInputRead), errors.IsErrorType(err, errors.ErrOutputWrite):
		return ExitIOError
	default:
		return ExitInvalidArguments
	}
}

func newRootCmd(s streams) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "toto [file]",
		Short: "Tokenize TOML documents",
		Long: `toto splits a TOML document into tokens and prints them, or reports
the first lexical error with a source excerpt.

Input comes from the positional file, --file, or stdin ("-" or a pipe).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd.Context(), opts, args, s)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", `Input file, "-" for stdin`)
	flags.StringVarP(&opts.format, "format", "o", "text", "Output format: text, json, yaml or cbor")
	flags.StringSliceVar(&opts.only, "only", nil, "Only print these token kinds (e.g. BareKey,Integer)")
	flags.BoolVar(&opts.noTrivia, "no-trivia", false, "Drop Whitespace and Newline tokens from the output")
	flags.BoolVar(&opts.compact, "compact", false, "One-line diagnostics")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.debug, "debug", false, "Trace the tokenizer on stderr")
	flags.BoolVar(&opts.stats, "stats", false, "Print per-kind token counts in Prometheus text format on stderr")
	flags.BoolVar(&opts.watch, "watch", false, "Re-tokenize whenever the input file changes")

	return cmd
}

func runTokenize(ctx context.Context, opts *options, args []string, s streams) error {
	encode, err := newEncoder(opts.format)
	if err != nil {
		return err
	}
	filter, err := newKindFilter(opts.only, opts.noTrivia)
	if err != nil {
		return err
	}
	path, err := inputPath(opts.file, args)
	if err != nil {
		return err
	}

	logger, syncLogs, err := newLogger(opts.debug, s.err)
	if err != nil {
		return err
	}
	defer syncLogs()

	job := &tokenizeJob{
		path:    path,
		encode:  encode,
		filter:  filter,
		compact: opts.compact,
		color:   useColor(opts.noColor, s.err),
		logger:  logger,
		s:       s,
	}

	if opts.stats {
		reg := prometheus.NewRegistry()
		if job.recorder, err = telemetry.NewRecorder(reg); err != nil {
			return err
		}
		defer func() {
			if werr := telemetry.WriteText(s.err, reg); werr != nil {
				logger.Debug("writing stats failed", "error", werr)
			}
		}()
	}

	if opts.watch {
		if path == "" || path == "-" {
			return fmt.Errorf("--watch needs an input file, not stdin")
		}
		return watchFile(ctx, path, logger, func() {
			if err := job.run(); err != nil {
				var d *lexer.Diagnostic
				if !stderrors.As(err, &d) {
					fmt.Fprintf(s.err, "Error: %v\n", err)
				}
			}
		})
	}
	return job.run()
}

// tokenizeJob reads, tokenizes and prints one input
type tokenizeJob struct {
	path     string
	encode   encoder
	filter   *kindFilter
	compact  bool
	color    bool
	logger   *slog.Logger
	recorder *telemetry.Recorder
	s        streams
}

func (j *tokenizeJob) run() error {
	name, src, err := readInput(j.path, j.s.in)
	if err != nil {
		return err
	}
	j.logger.Debug("read input", "name", name, "bytes", len(src))

	lexOpts := []lexer.Option{lexer.WithLogger(j.logger)}
	if j.recorder != nil {
		lexOpts = append(lexOpts, lexer.WithObserver(j.recorder))
	}
	tz, err := lexer.New(src, lexOpts...)
	if err != nil {
		return err
	}
	defer tz.Close()

	var records []tokenRecord
	for tok, err := range tz.All() {
		if err != nil {
			break
		}
		if j.filter.keep(tok.Kind) {
			records = append(records, newTokenRecord(tok))
		}
	}

	if err := j.encode(j.s.out, records); err != nil {
		return errors.Wrap(errors.ErrOutputWrite, "failed to write tokens", err)
	}

	if d := tz.Err(); d != nil {
		f := diag.Formatter{Source: src, Filename: name, Compact: j.compact, Color: j.color}
		fmt.Fprint(j.s.err, f.Format(d))
		return d
	}
	return nil
}
