// Command tarprobe checks whether files are well-formed TAR archives.
//
// Usage:
//
//	tarprobe [flags] FILE...
//
// Arguments starting with http:// or https:// are fetched over HTTP.
//
// The exit status is 0 when every input is well-formed, 1 when any input is
// not (or could not be checked), and 2 on a usage error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/tarprobe"
)

// Exit codes.
const (
	exitOK        = 0
	exitMalformed = 1
	exitUsage     = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tarprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tarprobe [flags] FILE...")
		fs.PrintDefaults()
	}

	cfg, err := parseArgs(args, fs)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "tarprobe: %v\n", err)
		}
		return exitUsage
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []tarprobe.Option{
		tarprobe.WithLogger(logger),
		tarprobe.WithDigestNames(cfg.Digests...),
		tarprobe.WithDecompression(cfg.Decompress),
		tarprobe.WithDecoderMaxMemory(cfg.MaxDecoderMemory),
	}
	if _, err := tarprobe.NewChecker(opts...); err != nil {
		fmt.Fprintf(stderr, "tarprobe: %v\n", err)
		return exitUsage
	}

	results := checkAll(ctx, cfg, opts)

	if err := writeResults(stdout, cfg.Format, results); err != nil {
		fmt.Fprintf(stderr, "tarprobe: %v\n", err)
		return exitMalformed
	}
	for _, r := range results {
		if r.Report == nil || !r.Report.WellFormed {
			return exitMalformed
		}
	}
	return exitOK
}

// fileResult is the outcome of checking one file.
type fileResult struct {
	Path    string           `json:"path" yaml:"path"`
	Report  *tarprobe.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Entries []string         `json:"entries,omitempty" yaml:"entries,omitempty"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// checkAll checks every file with at most cfg.Jobs checks in flight.
// Results are returned in argument order.
func checkAll(ctx context.Context, cfg config, opts []tarprobe.Option) []fileResult {
	results := make([]fileResult, len(cfg.files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, path := range cfg.files {
		g.Go(func() error {
			results[i] = checkOne(ctx, path, cfg.List, opts)
			return nil
		})
	}
	_ = g.Wait() // checkOne records failures in its result

	return results
}

func checkOne(ctx context.Context, path string, list bool, opts []tarprobe.Option) fileResult {
	res := fileResult{Path: path}

	if list {
		opts = append(opts[:len(opts):len(opts)], tarprobe.WithEntryFunc(func(h *tarprobe.Header) error {
			res.Entries = append(res.Entries, h.Path())
			return nil
		}))
	}

	c, err := tarprobe.NewChecker(opts...)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	var report *tarprobe.Report
	if isURL(path) {
		report, err = c.CheckURL(ctx, path)
	} else {
		report, err = c.CheckFile(ctx, path)
	}
	if err != nil {
		if ctx.Err() != nil {
			res.Error = "aborted"
		} else {
			res.Error = err.Error()
		}
		return res
	}
	res.Report = report
	return res
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}
