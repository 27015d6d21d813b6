package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/riverfjs/directivemd"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// Typically injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

type rootFlags struct {
	verbose    bool
	configPath string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "directivemd",
		Short:         "Compile directive-annotated Markdown articles",
		Long:          `directivemd turns Markdown articles with [ANIM]/[FX]/[GRAPH]/[MEDIA]/[ELIAS] markers into typed content for the scrollytelling frontend.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("directivemd %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "TOML render configuration")

	root.AddCommand(newCompileCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newSyncLogCmd())

	return root
}

// Execute runs the CLI with ctx.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// compileOptions builds the compile options shared by every command.
func compileOptions(ctx context.Context, flags *rootFlags) ([]directivemd.Option, error) {
	opts := []directivemd.Option{directivemd.WithLogger(loggerFromContext(ctx))}
	if flags.configPath != "" {
		config, err := directivemd.LoadConfigFile(flags.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, directivemd.WithConfig(config))
	}
	return opts, nil
}
