package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/model"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a run's content to an xlsx workbook",
	Long:  "Writes the generated content of a run to a spreadsheet: one row per email for sequences, a single content row otherwise, plus a run summary sheet.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export")
		}

		f, err := buildWorkbook(run)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("run-%s.xlsx", truncateID(run.ID))
		}
		if err := f.Save(out); err != nil {
			return eris.Wrapf(err, "export: write %s", out)
		}

		zap.L().Info("exported run", zap.String("run_id", run.ID), zap.String("path", out))
		fmt.Println(out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default run-<id>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

// buildWorkbook renders a run into an in-memory workbook. Runs without
// content export their record metadata only.
func buildWorkbook(run *model.Run) (*xlsx.File, error) {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Run")
	if err != nil {
		return nil, eris.Wrap(err, "export: add sheet")
	}
	addPair := func(key, value string) {
		row := summary.AddRow()
		row.AddCell().SetString(key)
		row.AddCell().SetString(value)
	}
	addPair("Run ID", run.ID)
	addPair("Kind", string(run.Kind))
	addPair("Status", string(run.Status))
	addPair("Product", run.Record.ProductName)
	addPair("Source URL", run.Record.SourceURL)
	addPair("Confidence", fmt.Sprintf("%.2f", run.Record.ConfidenceScore))
	addPair("Created", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.Summary != nil {
		addPair("Enhancers succeeded", fmt.Sprintf("%d", run.Summary.Succeeded))
		addPair("Enhancers failed", fmt.Sprintf("%d", run.Summary.Failed))
		addPair("Confidence delta", fmt.Sprintf("%.3f", run.Summary.ConfidenceDelta))
		addPair("Cost USD", fmt.Sprintf("%.4f", run.Summary.CostUSD))
	}

	content := run.Content
	if content == nil {
		return f, nil
	}

	addPair("Content type", string(content.Type))
	addPair("Provider", content.Metadata.ProviderUsed)
	addPair("Prompt quality", fmt.Sprintf("%.1f", content.Metadata.PromptQualityScore))
	addPair("Generation cost USD", fmt.Sprintf("%.4f", content.Metadata.CostIncurred))

	if content.Type == model.ContentEmailSequence {
		sheet, err := f.AddSheet("Emails")
		if err != nil {
			return nil, eris.Wrap(err, "export: add sheet")
		}
		header := sheet.AddRow()
		for _, h := range []string{"Ordinal", "Stage", "Subject", "Body"} {
			header.AddCell().SetString(h)
		}
		for _, email := range content.Emails {
			row := sheet.AddRow()
			row.AddCell().SetInt(email.Ordinal)
			row.AddCell().SetString(string(email.Stage))
			row.AddCell().SetString(email.Subject)
			row.AddCell().SetString(email.Body)
		}
		return f, nil
	}

	sheet, err := f.AddSheet("Content")
	if err != nil {
		return nil, eris.Wrap(err, "export: add sheet")
	}
	header := sheet.AddRow()
	header.AddCell().SetString("Type")
	header.AddCell().SetString("Body")
	row := sheet.AddRow()
	row.AddCell().SetString(string(content.Type))
	row.AddCell().SetString(content.Body)
	return f, nil
}
