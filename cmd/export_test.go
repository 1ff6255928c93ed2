package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciados/campaign-engine/internal/model"
)

func exportRun() *model.Run {
	stages := model.EmailStages()
	emails := make([]model.Email, len(stages))
	for i, stage := range stages {
		emails[i] = model.Email{
			Ordinal: i + 1,
			Subject: "Subject line",
			Body:    "Body copy.",
			Stage:   stage,
		}
	}
	return &model.Run{
		ID:     "aaaaaaaa-1111-2222-3333-444444444444",
		Kind:   model.RunKindGenerate,
		Status: model.RunStatusComplete,
		Record: model.IntelligenceRecord{
			ProductName:     "hepatoburn",
			SourceURL:       "https://hepatoburn.com",
			ConfidenceScore: 0.85,
		},
		Content: &model.StructuredContent{
			Type:   model.ContentEmailSequence,
			Emails: emails,
			Metadata: model.ContentMetadata{
				ProviderUsed:       "groq-llama-70b",
				CostIncurred:       0.0021,
				PromptQualityScore: 92.3,
			},
		},
		CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildWorkbook_EmailSequence(t *testing.T) {
	t.Parallel()
	f, err := buildWorkbook(exportRun())
	require.NoError(t, err)

	require.Contains(t, f.Sheet, "Run")
	require.Contains(t, f.Sheet, "Emails")

	emails := f.Sheet["Emails"]
	// header + seven emails
	require.Len(t, emails.Rows, 8)
	assert.Equal(t, "Ordinal", emails.Rows[0].Cells[0].String())
	assert.Equal(t, "problem_awareness", emails.Rows[1].Cells[1].String())
	assert.Equal(t, "call_to_action", emails.Rows[7].Cells[1].String())

	run := f.Sheet["Run"]
	found := false
	for _, row := range run.Rows {
		if len(row.Cells) >= 2 && row.Cells[0].String() == "Provider" {
			assert.Equal(t, "groq-llama-70b", row.Cells[1].String())
			found = true
		}
	}
	assert.True(t, found, "summary sheet should include the provider")
}

func TestBuildWorkbook_BodyContent(t *testing.T) {
	t.Parallel()
	run := exportRun()
	run.Content = &model.StructuredContent{
		Type: model.ContentBlogPost,
		Body: "Long form article.",
	}

	f, err := buildWorkbook(run)
	require.NoError(t, err)

	require.Contains(t, f.Sheet, "Content")
	require.NotContains(t, f.Sheet, "Emails")
	content := f.Sheet["Content"]
	require.Len(t, content.Rows, 2)
	assert.Equal(t, "blog_post", content.Rows[1].Cells[0].String())
	assert.Equal(t, "Long form article.", content.Rows[1].Cells[1].String())
}

func TestBuildWorkbook_NoContent(t *testing.T) {
	t.Parallel()
	run := exportRun()
	run.Content = nil

	f, err := buildWorkbook(run)
	require.NoError(t, err)
	require.Contains(t, f.Sheet, "Run")
	assert.NotContains(t, f.Sheet, "Emails")
	assert.NotContains(t, f.Sheet, "Content")
}
