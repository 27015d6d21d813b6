package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/riverfjs/directivemd"
)

func newCompileCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile <article.md>",
		Short: "Compile an article to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := compileOptions(ctx, flags)
			if err != nil {
				return err
			}
			article, err := directivemd.CompileFile(ctx, args[0], opts...)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(article, "", "  ")
			if err != nil {
				return fmt.Errorf("encode article: %w", err)
			}
			data = append(data, '\n')
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <article.md>",
		Short: "Render an article to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := compileOptions(ctx, flags)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read article: %w", err)
			}
			html, _, err := directivemd.RenderHTML(string(data), opts...)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, []byte(html))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <article.md>",
		Short: "Print marker diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := compileOptions(ctx, flags)
			if err != nil {
				return err
			}
			article, err := directivemd.CompileFile(ctx, args[0], opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range article.Diagnostics {
				fmt.Fprintf(out, "%s: %s\n", args[0], d)
			}
			fmt.Fprintf(out, "%d chapters, %d elements, %d cues, %d diagnostics\n",
				len(article.Chapters), article.Stats.Elements, len(article.Cues), len(article.Diagnostics))

			if strict && len(article.Diagnostics) > 0 {
				return fmt.Errorf("%w: %d found", directivemd.ErrDiagnostics, len(article.Diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any diagnostic is found")
	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
