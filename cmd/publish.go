package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/pkg/notion"
)

var publishCmd = &cobra.Command{
	Use:   "publish <run-id>",
	Short: "Publish a run's content to Notion",
	Long:  "Creates a Notion page under the configured parent with the run's generated content: one section per email for sequences, a single section otherwise.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("publish"); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "publish")
		}
		if run.Content == nil {
			return eris.Errorf("run %s has no generated content", run.ID)
		}

		title, sections := pageForContent(run)

		client := notion.NewClient(cfg.Notion.Token)
		url, err := notion.PublishPage(ctx, client, cfg.Notion.ParentPage, title, sections)
		if err != nil {
			return eris.Wrap(err, "publish")
		}

		zap.L().Info("published run", zap.String("run_id", run.ID), zap.String("url", url))
		fmt.Println(url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

// pageForContent renders a run's content as a Notion page title plus
// sections.
func pageForContent(run *model.Run) (string, []notion.Section) {
	product := run.Record.ProductName
	if product == "" {
		product = run.Record.SourceURL
	}

	content := run.Content
	switch content.Type {
	case model.ContentEmailSequence:
		sections := make([]notion.Section, 0, len(content.Emails))
		for _, email := range content.Emails {
			sections = append(sections, notion.Section{
				Heading:  fmt.Sprintf("Email %d: %s", email.Ordinal, email.Stage),
				Subtitle: "Subject: " + email.Subject,
				Body:     email.Body,
			})
		}
		return product + " Email Sequence", sections
	case model.ContentAdCopy:
		return product + " Ad Copy", []notion.Section{{Heading: "Ad Copy", Body: content.Body}}
	default:
		return product + " Blog Post", []notion.Section{{Heading: "Blog Post", Body: content.Body}}
	}
}
