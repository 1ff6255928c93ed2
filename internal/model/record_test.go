package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() IntelligenceRecord {
	return IntelligenceRecord{
		SourceURL:       "https://example.com/sales",
		ProductName:     "hydraboost",
		ConfidenceScore: 0.6,
		Categories: map[string]FactMap{
			CategoryOffer: {
				"primary_benefit": "deeper hydration",
				"price":           "$49",
			},
			CategoryPsychology: {
				"pain_point":         "dry skin that nothing fixes",
				"emotional_triggers": []any{"frustration", "hope"},
			},
		},
	}
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()
	orig := sampleRecord()
	clone := orig.Clone()

	clone.Categories[CategoryOffer]["price"] = "$99"
	clone.Categories["extra"] = FactMap{"k": "v"}
	clone.ConfidenceScore = 0.9

	assert.Equal(t, "$49", orig.Categories[CategoryOffer]["price"])
	assert.NotContains(t, orig.Categories, "extra")
	assert.InDelta(t, 0.6, orig.ConfidenceScore, 0.0001)
}

func TestFact(t *testing.T) {
	t.Parallel()
	rec := sampleRecord()

	tests := []struct {
		name     string
		category string
		key      string
		want     string
		wantOK   bool
	}{
		{"string fact", CategoryOffer, "primary_benefit", "deeper hydration", true},
		{"list fact returns first element", CategoryPsychology, "emotional_triggers", "frustration", true},
		{"missing key", CategoryOffer, "nope", "", false},
		{"missing category", CategoryBrand, "voice", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := rec.Fact(tt.category, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFact_EmptyValueNotPresent(t *testing.T) {
	t.Parallel()
	rec := IntelligenceRecord{
		Categories: map[string]FactMap{
			CategoryBrand: {"voice": "", "tone": []any{}},
		},
	}
	_, ok := rec.Fact(CategoryBrand, "voice")
	assert.False(t, ok)
	_, ok = rec.Fact(CategoryBrand, "tone")
	assert.False(t, ok)
}

func TestCategoryNames_Sorted(t *testing.T) {
	t.Parallel()
	rec := sampleRecord()
	names := rec.CategoryNames()
	require.Len(t, names, 2)
	assert.Equal(t, []string{CategoryOffer, CategoryPsychology}, names)
}
