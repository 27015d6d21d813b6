package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverfjs/directivemd/internal/activitylog"
	"github.com/riverfjs/directivemd/internal/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve [article.md]",
		Short: "Serve the compiled article and the backend API",
		Long: `Serve the article HTML, article JSON and agent log together with the
/api/health and /api/hello routes. Settings come from PORT, FRONTEND_URL,
ARTICLE_PATH, AGENT_LOG_PATH, WATCH and WATCH_DEBOUNCE; flags override them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := server.ParseEnv()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.ArticlePath = args[0]
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watch
			}

			opts, err := compileOptions(ctx, flags)
			if err != nil {
				return err
			}
			return server.New(cfg, loggerFromContext(ctx), opts...).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3001, "listen port")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recompile when the article changes")
	return cmd
}

func newSyncLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-log [src] [dst]",
		Short: "Validate agent-log.json and copy it into the public dir",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := "agent-log.json", "public/agent-log.json"
			if len(args) > 0 {
				src = args[0]
			}
			if len(args) > 1 {
				dst = args[1]
			}

			n, err := activitylog.Sync(src, dst)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info(fmt.Sprintf("synced %s to %s", src, dst), "entries", n)
			return nil
		},
	}
}
