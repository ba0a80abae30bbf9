package main

import (
	"fmt"
	"strings"

	"demand-forecast-app/config"
	"demand-forecast-app/services"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [artifact]",
		Short: "Print the model type and expected feature schema of an artifact",
		Long: "Loads a model artifact the same way the server does and prints its\n" +
			"type and feature names. Defaults to MODEL_PATH when no path is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.LoadConfig()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				path = cfg.Model.Path
			}

			forecaster := services.NewForecaster(services.LoadModelState(path))
			info := forecaster.Info()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "path:       %s\n", info.Path)
			if !info.Loaded {
				return fmt.Errorf("load %s: %s", path, info.Error)
			}
			fmt.Fprintf(out, "model_type: %s\n", info.ModelType)
			fmt.Fprintf(out, "fitted:     %t\n", info.Fitted)
			if !info.Fitted {
				return nil
			}
			fmt.Fprintf(out, "features:   %d\n", len(info.FeatureNames))
			fmt.Fprintf(out, "  %s\n", strings.Join(info.FeatureNames, "\n  "))
			return nil
		},
	}
}
