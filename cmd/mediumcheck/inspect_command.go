package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mediumcheck/internal/config"
	"mediumcheck/internal/inspect"
	"mediumcheck/internal/page"
)

const (
	gridTooltipOffset  = 2
	gridViewportMargin = 10
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var pagePath string
	var eventsPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Hover over an HTML page with scripted pointer and key events",
		Long: "Lay out an HTML page on a character grid and drive the hover inspector with\n" +
			"events read from --events (default stdin), one per line:\n\n" +
			"  move X Y        pointer moved to column X, row Y\n" +
			"  key KEY [TEXT]  key pressed; TEXT answers the manual-search prompt\n" +
			"  wait MS         pause, letting debounced lookups complete\n\n" +
			"The toggle and manual keys default to F8 and F9.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(pagePath) == "" {
				return errors.New("--page is required")
			}
			doc, err := loadPage(pagePath)
			if err != nil {
				return err
			}

			events, closeEvents, err := openEvents(cmd, eventsPath)
			if err != nil {
				return err
			}
			defer closeEvents()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.fileLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			checker, closer, err := ctx.checker(logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			printPage(out, doc)

			host := newPageHost(doc, out, shouldColorize(out))
			ctrl, err := inspect.New(host, checker, inspectOptions(cfg, logger))
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return playPage(runCtx, ctrl, host, events)
		},
	}

	cmd.Flags().StringVar(&pagePath, "page", "", "HTML file to inspect")
	cmd.Flags().StringVar(&eventsPath, "events", "-", "Event script file, - for stdin")
	return cmd
}

// playPage runs the controller while the script plays, then tears it down.
func playPage(ctx context.Context, ctrl *inspect.Controller, host *pageHost, events io.Reader) error {
	runErr := make(chan error, 1)
	go func() { runErr <- ctrl.Run(ctx) }()

	scriptErr := runScript(ctx, events, ctrl, host)
	ctrl.Close()
	<-ctrl.Done()
	if err := <-runErr; err != nil {
		return err
	}
	if errors.Is(scriptErr, context.Canceled) {
		return nil
	}
	return scriptErr
}

func inspectOptions(cfg *config.Config, logger *slog.Logger) inspect.Options {
	return inspect.Options{
		Debounce:      cfg.Debounce(),
		CacheTTL:      cfg.CacheTTL(),
		ToggleKey:     cfg.Inspect.ToggleKey,
		ManualKey:     cfg.Inspect.ManualKey,
		MaxQueryChars: cfg.Inspect.MaxQueryChars,
		AncestorDepth: cfg.Inspect.AncestorDepth,
		TooltipItems:  cfg.Inspect.TooltipItems,
		// Grid cells, not pixels.
		TooltipOffset:  gridTooltipOffset,
		ViewportMargin: gridViewportMargin,
		Logger:         logger,
	}
}

func loadPage(path string) (*page.Document, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return page.Parse(f)
}

func openEvents(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, nil, fmt.Errorf("open events: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func printPage(out io.Writer, doc *page.Document) {
	w, h := doc.Size()
	fmt.Fprintf(out, "page     %dx%d\n", w, h)
	for i, line := range doc.Lines() {
		fmt.Fprintf(out, "%7d  %s\n", i, line)
	}
}
