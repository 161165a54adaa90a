package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"permeability-service/internal/adapters/secondary/xgboost"
	"permeability-service/internal/core/domain"
)

func newInspectModelCmd(root *rootOptions) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "inspect-model",
		Short: "Load a model artifact and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("model") {
				cfg, err := root.config()
				if err != nil {
					return err
				}
				modelPath = cfg.Model.Path
			}

			model, err := xgboost.LoadArtifact(modelPath, domain.FeatureSchema)
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			table.Append("Path", modelPath)
			table.Append("Booster", model.Kind())
			table.Append("Objective", model.Objective())
			table.Append("Trees", fmt.Sprintf("%d", model.Trees()))
			table.Append("Features", strings.Join(model.Features(), "\n"))
			return table.Render()
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "model artifact (default from MODEL_PATH)")
	return cmd
}
