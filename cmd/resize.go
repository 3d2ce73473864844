package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"shrink/internal/resizer"
	"shrink/internal/tui"
)

var (
	resizeFlags requestFlags
	resizePlain bool

	runner resizer.Runner
)

var resizeCmd = &cobra.Command{
	Use:   "resize [flags] <source-folder>",
	Short: "Resize every supported image in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return resizer.ErrNoSource
		}
		req, err := resizeFlags.request(cmd, args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		plain := resizePlain || cfg.Plain || !isTerminal(out)

		var summary resizer.Summary
		if plain {
			summary, err = runPlain(ctx, req, out)
		} else {
			summary, err = runInteractive(ctx, req)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		fmt.Fprintln(out, tui.RenderSummary(tui.SummaryRows(summary)))
		if errors.Is(err, context.Canceled) {
			return errors.New("run cancelled")
		}

		outPath := req.ResolvedOutputDir()
		if abs, absErr := filepath.Abs(outPath); absErr == nil {
			outPath = abs
		}
		fmt.Fprintf(out, "Resized files written to: %s\n", outPath)
		fmt.Fprintln(out, "All images have been processed.")
		return nil
	},
}

// runPlain streams status lines straight to out.
func runPlain(ctx context.Context, req resizer.Request, out io.Writer) (resizer.Summary, error) {
	sink := resizer.LineSink(func(line string) {
		fmt.Fprintln(out, line)
	})
	return runner.Run(ctx, req, sink, resizer.WithLogger(logger))
}

// runInteractive runs the pipeline on one goroutine and the bubbletea view
// on another. The view owns the terminal, so only errors are logged.
func runInteractive(ctx context.Context, req resizer.Request) (resizer.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan resizer.Event, 64)
	program := tea.NewProgram(tui.NewModel(updates, cancel))
	quiet := logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))

	var summary resizer.Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := program.Run()
		// Keep the worker unblocked if the view exits early.
		for range updates {
		}
		return err
	})
	g.Go(func() error {
		defer close(updates)
		var err error
		summary, err = runner.Run(gctx, req, resizer.ChannelSink(updates), resizer.WithLogger(quiet))
		return err
	})

	err := g.Wait()
	return summary, err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	resizeFlags.register(resizeCmd)
	resizeCmd.Flags().BoolVar(&resizePlain, "plain", false, "print status lines instead of the live view")

	rootCmd.AddCommand(resizeCmd)
}
