package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediumcheck/internal/logging"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var ping bool

	cmd := &cobra.Command{
		Use:   "check TEXT...",
		Short: "Look up text in the Kodi music and movie libraries",
		Long: "Look up text in the Kodi music and movie libraries.\n\n" +
			"Text of the form \"Title - Artist\" searches songs by title first. " +
			"With --socket the lookup is sent to a running `mediumcheck serve`.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ping {
				return runPing(cmd, ctx)
			}
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("text to look up is required")
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

			status := checker.Check(cmd.Context(), text)
			if jsonOutput {
				if err := writeJSON(cmd, status); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), renderMediumStatus(status, shouldColorize(cmd.OutOrStdout())))
			}
			if !status.OK {
				return fmt.Errorf("lookup failed: %s", status.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw status as JSON")
	cmd.Flags().BoolVar(&ping, "ping", false, "Only verify Kodi connectivity and credentials")
	return cmd
}

func runPing(cmd *cobra.Command, ctx *commandContext) error {
	logger, err := ctx.fileLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	client, err := ctx.kodiClient(logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	if err := client.Ping(contextOrBackground(cmd)); err != nil {
		logging.WarnWithContext(logger, "kodi ping failed", "kodi_ping_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "lookups will fail"),
			logging.String(logging.FieldErrorHint, "check kodi.url and credentials"))
		fmt.Fprintln(out, renderStatusLine("Kodi", statusError, err.Error(), colorize))
		return fmt.Errorf("kodi ping: %w", err)
	}
	fmt.Fprintln(out, renderStatusLine("Kodi", statusOK, "reachable at "+client.Endpoint(), colorize))
	return nil
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
