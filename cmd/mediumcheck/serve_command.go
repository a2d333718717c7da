package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediumcheck/internal/ipc"
	"mediumcheck/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer lookups on a Unix socket until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			res, client, err := ctx.newResolver(logger)
			if err != nil {
				return err
			}
			logger.Info("kodi client ready",
				logging.String("endpoint", client.Endpoint()),
				logging.Int("page_size", client.PageSize()),
				logging.Duration("timeout", cfg.KodiTimeout()))
			if err := client.Ping(signalCtx); err != nil {
				logging.WarnWithContext(logger, "kodi not reachable at startup", "kodi_ping_failed",
					logging.String("endpoint", client.Endpoint()),
					logging.Error(err),
					logging.String(logging.FieldImpact, "lookups fail until Kodi is reachable"),
					logging.String(logging.FieldErrorHint, "check kodi.url and credentials"))
			}

			socket := ctx.socketPath()
			server, err := ipc.NewServer(signalCtx, socket, res, logger)
			if err != nil {
				return fmt.Errorf("start ipc server: %w", err)
			}
			defer server.Close()
			server.Serve()

			<-signalCtx.Done()
			logger.Info("mediumcheck serve shutting down")
			return nil
		},
	}
}
