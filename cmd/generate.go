package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/assemble"
	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/store"
)

var (
	generateType   string
	generateRunID  string
	generateNoSave bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [record.json]",
	Short: "Generate campaign content from an intelligence record",
	Long:  "Generates an email sequence, ad copy, or a blog post from a record file (use - for stdin) or from a stored run's enriched record via --run.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("generate"); err != nil {
			return err
		}

		contentType := model.ContentType(generateType)
		if !contentType.Valid() {
			return eris.Errorf("unsupported content type %q (email_sequence, ad_copy, blog_post)", generateType)
		}

		if (generateRunID == "") == (len(args) == 0) {
			return eris.New("provide either a record file or --run, not both")
		}

		sel, err := initSelector()
		if err != nil {
			return err
		}
		asm := assemble.New(sel)

		var st store.Store
		if generateRunID != "" || !generateNoSave {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		var record model.IntelligenceRecord
		if generateRunID != "" {
			run, err := st.GetRun(ctx, generateRunID)
			if err != nil {
				return eris.Wrap(err, "generate")
			}
			record = run.Record
			if run.Enriched != nil {
				record = *run.Enriched
			}
		} else {
			record, err = readRecord(args[0])
			if err != nil {
				return err
			}
		}

		content, err := asm.Generate(ctx, record, contentType)
		if err != nil {
			return eris.Wrap(err, "generate")
		}

		if content.Metadata.PromptQualityScore < cfg.Generate.MinQualityScore {
			zap.L().Warn("prompt built mostly from defaults",
				zap.Float64("quality_score", content.Metadata.PromptQualityScore),
				zap.Float64("threshold", cfg.Generate.MinQualityScore),
				zap.String("product", record.ProductName),
			)
		}

		if generateNoSave {
			return printJSON(content)
		}

		run, err := st.CreateRun(ctx, model.RunKindGenerate, record)
		if err != nil {
			return eris.Wrap(err, "generate: create run")
		}
		if err := st.SaveContent(ctx, run.ID, content); err != nil {
			return eris.Wrap(err, "generate: save content")
		}

		return printJSON(struct {
			RunID   string                  `json:"run_id"`
			Content model.StructuredContent `json:"content"`
		}{RunID: run.ID, Content: content})
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateType, "type", "email_sequence", "content type: email_sequence, ad_copy, blog_post")
	generateCmd.Flags().StringVar(&generateRunID, "run", "", "generate from a stored run's enriched record")
	generateCmd.Flags().BoolVar(&generateNoSave, "no-save", false, "print the result without persisting a run")
	rootCmd.AddCommand(generateCmd)
}
