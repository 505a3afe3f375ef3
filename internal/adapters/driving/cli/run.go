package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/autoprofile/internal/adapters/driven/config/file"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/metrics"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

const prompt = "> "

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the module and read commands from stdin",
	Long: `Run the profile automation and answer chat commands typed on stdin.

Each line is one command, with or without the leading dot:
  .autobio "online {time}"
  .autopfp 30 false

Loops keep running until stdin closes or the process is interrupted.
Edits to config.toml are applied without a restart.

Examples:
  autoprofile run
  autoprofile run --metrics-addr :9090`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return fmt.Errorf("getting metrics-addr flag: %w", err)
	}

	rt, err := newRuntime(configDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeWatcher, err := watchConfig(ctx, rt)
	if err != nil {
		return err
	}
	defer closeWatcher()

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           metrics.Handler(rt.Registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server: %v", err)
			}
		}()
		defer srv.Close()
		logger.Info("metrics listening on %s", metricsAddr)
	}

	in := cmd.InOrStdin()
	return serveLines(ctx, in, cmd.OutOrStdout(), rt.Module, isTerminal(in))
}

// lineDispatcher answers one command line.
type lineDispatcher interface {
	DispatchLine(ctx context.Context, line string) (string, error)
}

// serveLines dispatches each non-empty input line and writes the reply.
// It returns when input is exhausted or ctx is cancelled.
func serveLines(ctx context.Context, in io.Reader, out io.Writer, module lineDispatcher, interactive bool) error {
	lines := make(chan string)
	var readErr error

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr = scanner.Err()
	}()

	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return readErr
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			reply, err := module.DispatchLine(ctx, line)
			if err != nil {
				logger.Debug("dispatch %q: %v", line, err)
			}
			fmt.Fprintln(out, reply)
		}
	}
}

// watchConfig applies config file edits to rt until ctx ends.
func watchConfig(ctx context.Context, rt *Runtime) (func(), error) {
	if rt.Config == nil {
		return func() {}, nil
	}

	watcher, err := file.NewWatcher(rt.Config, rt.ApplySettings)
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("starting config watcher: %w", err)
	}
	return func() { watcher.Close() }, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
