package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seitarof/gen-uml/internal/diagram"
	"github.com/seitarof/gen-uml/internal/generator"
	"github.com/seitarof/gen-uml/internal/relation"
)

// NewCommand returns the root command.
func NewCommand(version string) *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "gen-uml [flags] <root-dir> <output-base>",
		Short: "Generate a class diagram from a source tree",
		Args: func(cmd *cobra.Command, args []string) error {
			if cfg.ShowVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ShowVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			if err := Complete(cmd.Flags(), cfg, args); err != nil {
				return err
			}

			logger, err := NewLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			x := generator.NewExecutor()
			renderer := generator.New(cfg.RendererConfig(), generator.NewFileWriter(), x, generator.NewSystemViewer(x), logger)
			runner := NewRunner(
				NewParser(cfg, logger),
				relation.New(relation.DefaultRules()...),
				diagram.NewEmitter(renderer),
				logger,
			)

			path, err := runner.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Diagram generated at: %s\n", path)
			return nil
		},
	}
	BindFlags(cmd.Flags(), cfg)
	return cmd
}
