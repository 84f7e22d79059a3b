package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/justyntemme/vst3info/pkg/bundle"
	"github.com/justyntemme/vst3info/pkg/config"
	"github.com/justyntemme/vst3info/pkg/report"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// poolDrainTimeout bounds how long a finished scan waits for pool workers
// to exit.
const poolDrainTimeout = 5 * time.Second

// NewScanCmd creates the scan subcommand.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>...",
		Short: "Inspect every plugin bundle under the given directories",
		Long: `Walk the directories for .vst3 bundles whose file name matches --include
and inspect each in its own vst3info process, so a crashing plugin only
loses its own entry. Prints one entry per bundle with either its report or
its error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}
	config.BindScanFlags(cmd.Flags())
	return cmd
}

// scanEntry is the outcome for one bundle.
type scanEntry struct {
	Path   string         `json:"path" yaml:"path"`
	Report *report.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
	Code   string         `json:"code,omitempty" yaml:"code,omitempty"`
}

func errorEntry(path string, err error) scanEntry {
	return scanEntry{Path: path, Error: err.Error(), Code: vst3.CodeOf(err)}
}

// childRunner inspects one bundle in a separate process and returns what
// that process wrote.
type childRunner func(ctx context.Context, path string) (stdout, stderr []byte, err error)

func execRunner(exe string, args ...string) childRunner {
	return func(ctx context.Context, path string) ([]byte, []byte, error) {
		var stdout, stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, exe, append(append([]string{"inspect"}, args...), path)...)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		err := cmd.Run()
		return stdout.Bytes(), stderr.Bytes(), err
	}
}

type scanner struct {
	workers int
	timeout time.Duration
	run     childRunner
	logger  *slog.Logger
}

// scan inspects paths on a pool of s.workers goroutines. Entries come back
// in the order of paths.
func (s *scanner) scan(ctx context.Context, paths []string) ([]scanEntry, error) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pool.ReleaseTimeout(poolDrainTimeout); err != nil {
			s.logger.Warn("scan pool did not drain", "error", err)
		}
	}()

	entries := make([]scanEntry, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			entries[i] = s.inspectOne(ctx, path)
		})
		if err != nil {
			wg.Done()
			entries[i] = errorEntry(path, vst3.NewScanChildFailedError(path, err))
		}
	}
	wg.Wait()
	return entries, nil
}

func (s *scanner) inspectOne(ctx context.Context, path string) scanEntry {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, err := s.run(ctx, path)
	s.logger.Debug("child finished", "path", path, "elapsed", time.Since(start), "error", err)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errorEntry(path, vst3.NewScanTimeoutError(path, s.timeout))
	}
	if err != nil {
		if body, ok := parseErrorBody(stderr); ok {
			return scanEntry{Path: path, Error: body.Error, Code: body.Code}
		}
		return errorEntry(path, vst3.NewScanChildFailedError(path, err))
	}

	if err := report.Validate(stdout); err != nil {
		return errorEntry(path, vst3.NewScanBadReportError(path, err))
	}
	var rep report.Report
	if err := json.Unmarshal(stdout, &rep); err != nil {
		return errorEntry(path, vst3.NewScanBadReportError(path, err))
	}
	return scanEntry{Path: path, Report: &rep}
}

// parseErrorBody reads the error object from the last non-empty line of a
// child's stderr.
func parseErrorBody(stderr []byte) (errorBody, bool) {
	lines := bytes.Split(bytes.TrimSpace(stderr), []byte("\n"))
	var body errorBody
	if err := json.Unmarshal(lines[len(lines)-1], &body); err != nil || body.Error == "" {
		return errorBody{}, false
	}
	return body, true
}

// collectBundles finds the bundles under roots whose base name matches.
func collectBundles(roots []string, match glob.Glob) ([]string, error) {
	var paths []string
	for _, root := range roots {
		found, err := bundle.Find(root)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if match.Match(filepath.Base(p)) {
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

// childArgs are the flags forwarded to every child inspect process.
func childArgs(cfg *config.Config) []string {
	args := []string{"--format=json", "--log-level=off"}
	if configFile != "" {
		args = append(args, "--config="+configFile)
	}
	if !cfg.QuietPluginOutput {
		args = append(args, "--quiet-plugin-output=false")
	}
	return args
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	match, err := cfg.IncludeMatcher()
	if err != nil {
		return vst3.NewConfigInvalidError("scan.include", err)
	}
	paths, err := collectBundles(args, match)
	if err != nil {
		return err
	}
	logger.Info("scanning", "bundles", len(paths), "workers", cfg.Scan.Workers)

	exe, err := os.Executable()
	if err != nil {
		return err
	}
	s := &scanner{
		workers: cfg.Scan.Workers,
		timeout: cfg.Scan.Timeout,
		run:     execRunner(exe, childArgs(cfg)...),
		logger:  logger,
	}
	entries, err := s.scan(cmd.Context(), paths)
	if err != nil {
		return err
	}
	return report.EncodeValue(cmd.OutOrStdout(), entries, cfg.Output.Format, cfg.Output.Pretty)
}
