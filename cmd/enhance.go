package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/enhance"
	"github.com/sciados/campaign-engine/internal/model"
)

var enhanceNoSave bool

var enhanceCmd = &cobra.Command{
	Use:   "enhance <record.json>",
	Short: "Enrich an intelligence record with the six AI enhancers",
	Long:  "Reads an intelligence record (use - for stdin), runs all six enhancement categories in parallel, and prints the enriched record. The run is persisted unless --no-save is set.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("enhance"); err != nil {
			return err
		}

		record, err := readRecord(args[0])
		if err != nil {
			return err
		}

		sel, err := initSelector()
		if err != nil {
			return err
		}
		orch := enhance.NewOrchestrator(sel)

		if enhanceNoSave {
			result, err := orch.Enhance(ctx, record)
			if err != nil {
				return eris.Wrap(err, "enhance")
			}
			return printJSON(result)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, model.RunKindEnhance, record)
		if err != nil {
			return eris.Wrap(err, "enhance: create run")
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return eris.Wrap(err, "enhance: mark running")
		}

		result, err := orch.Enhance(ctx, record)
		if err != nil {
			if serr := st.UpdateRunStatus(ctx, run.ID, model.RunStatusFailed); serr != nil {
				zap.L().Error("failed to mark run failed", zap.String("run_id", run.ID), zap.Error(serr))
			}
			return eris.Wrap(err, "enhance")
		}

		summary := model.RunSummary{
			Succeeded:       result.Succeeded,
			Failed:          result.Failed,
			ConfidenceDelta: result.ConfidenceDelta,
			CostUSD:         result.TotalCostUSD,
		}
		if err := st.SaveEnrichment(ctx, run.ID, result.Enriched, summary); err != nil {
			return eris.Wrap(err, "enhance: save enrichment")
		}

		return printJSON(struct {
			RunID string `json:"run_id"`
			enhance.RunResult
		}{RunID: run.ID, RunResult: result})
	},
}

func init() {
	enhanceCmd.Flags().BoolVar(&enhanceNoSave, "no-save", false, "print the result without persisting a run")
	rootCmd.AddCommand(enhanceCmd)
}
