package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coassoc/adapters/report"
	"coassoc/app"
	"coassoc/internal"
	"coassoc/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coassoc",
		Short: "Cohort genetic association analysis",
	}

	rootCmd.AddCommand(newRenderCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the full analysis and render the report document",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := internal.DefaultLogger

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			study, err := config.LoadStudy(cfg.StudyFile)
			if err != nil {
				return err
			}

			model, err := app.NewStudyService(cfg, study).Run(cmd.Context())
			if err != nil {
				return err
			}

			path, err := report.NewRenderer(cfg.Output.Dir, cfg.Output.ReportName).Render(model)
			if err != nil {
				return err
			}
			log.Info("done: %s", path)
			return nil
		},
	}
	return cmd
}
