package pdf

import (
	"encoding/json"
	"testing"

	"github.com/atlas-ocr/atlas/internal/ocr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_String(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     string
	}{
		{"text extraction strategy", StrategyTextExtraction, "text_extraction"},
		{"ocr strategy", StrategyOCR, "ocr"},
		{"hybrid strategy", StrategyHybrid, "hybrid"},
		{"unknown strategy", Strategy(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.String())
		})
	}
}

func TestRecommend_TruthTable(t *testing.T) {
	tests := []struct {
		name   string
		native bool
		images bool
		want   Strategy
	}{
		{"native text without images", true, false, StrategyTextExtraction},
		{"native text with images", true, true, StrategyHybrid},
		{"no native text without images", false, false, StrategyOCR},
		{"no native text with images", false, true, StrategyOCR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(ocr.Profile{HasNativeText: tt.native, HasImages: tt.images})
			assert.Equal(t, tt.want, rec.Strategy)
			assert.NotEmpty(t, rec.Reasoning)
		})
	}
}

func TestRecommend_EchoesProfileFigures(t *testing.T) {
	rec := Recommend(ocr.Profile{
		FileSizeMB:    3.7,
		PageCount:     12,
		HasNativeText: true,
		HasImages:     true,
	})

	assert.InDelta(t, 3.7, rec.FileSizeMB, 1e-9)
	assert.Equal(t, 12, rec.PageCount)
}

func TestRecommendation_JSON(t *testing.T) {
	rec := Recommend(ocr.Profile{HasNativeText: true})

	b, err := json.Marshal(rec)

	require.NoError(t, err)
	assert.Contains(t, string(b), `"recommended_strategy":"text_extraction"`)
}
