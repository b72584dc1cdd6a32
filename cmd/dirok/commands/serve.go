package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dirok/internal/app"
	"dirok/internal/platform/config"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr, kbPath string
		watch        bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Configuration comes from DIROK_* and REDIS_* environment
variables; flags override them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if addr != "" {
				cfg.Addr = addr
			}
			if kbPath != "" {
				cfg.KnowledgeBasePath = kbPath
			}
			if cmd.Flags().Changed("watch") {
				cfg.WatchKnowledgeBase = watch
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = root.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = root.logFormat
			}
			log := (&rootOptions{logLevel: cfg.LogLevel, logFormat: cfg.LogFormat}).logger()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides DIROK_ADDR)")
	cmd.Flags().StringVar(&kbPath, "kb", "", "Knowledge base file (overrides DIROK_KB_PATH)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the knowledge base file when it changes (overrides DIROK_KB_WATCH)")
	return cmd
}
