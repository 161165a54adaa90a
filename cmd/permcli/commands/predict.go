package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"permeability-service/internal/adapters/primary/http/view"
	"permeability-service/internal/adapters/secondary/reference"
	"permeability-service/internal/adapters/secondary/xgboost"
	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/services"
)

type predictOptions struct {
	file      string
	model     string
	reference string
	merge     string
	limit     int
}

func newPredictCmd(root *rootOptions) *cobra.Command {
	opts := &predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the prediction pipeline on a CSV file and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if !f.Changed("model") {
				opts.model = cfg.Model.Path
			}
			if !f.Changed("reference") {
				opts.reference = cfg.Reference.Path
			}
			if !f.Changed("merge") {
				opts.merge = cfg.Reference.MergeStrategy
			}
			return runPredict(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "well-log CSV file (required)")
	cmd.Flags().StringVar(&opts.model, "model", "", "model artifact (default from MODEL_PATH)")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "reference CSV (default from REFERENCE_PATH)")
	cmd.Flags().StringVar(&opts.merge, "merge", "", "merge strategy: positional or depth (default from MERGE_STRATEGY)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "print at most this many rows (0 prints all)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPredict(cmd *cobra.Command, opts *predictOptions) error {
	strategy, err := domain.ParseMergeStrategy(opts.merge)
	if err != nil {
		return fmt.Errorf("--merge %q: %w", opts.merge, err)
	}
	if err := services.ValidateUploadName(opts.file); err != nil {
		return err
	}

	model, err := xgboost.LoadArtifact(opts.model, domain.FeatureSchema)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	content, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.file, err)
	}

	merger := services.NewMergeService(reference.NewCSVSource(opts.reference), strategy)
	report, err := services.NewPredictionService(model, merger).Run(cmd.Context(), opts.file, content)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file": opts.file,
		"rows": report.RowCount(),
	}).Debug("prediction complete")

	style, err := view.DefaultPresentation()
	if err != nil {
		return err
	}
	return renderReport(cmd.OutOrStdout(), report, style.Table, opts.limit)
}

func renderReport(w io.Writer, report *domain.Report, style view.TableStyle, limit int) error {
	tv := view.BuildTable(report.Table, style)

	header := make([]any, 0, len(tv.Headers)+1)
	header = append(header, tv.IndexName)
	for _, h := range tv.Headers {
		header = append(header, h)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	rows := tv.Rows
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	for _, r := range rows {
		cells := make([]any, 0, len(r.Cells)+1)
		cells = append(cells, r.Index)
		for _, c := range r.Cells {
			cells = append(cells, c)
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d rows, merge %s\n", report.FileName, report.RowCount(), report.MergeStrategy)
	return nil
}
