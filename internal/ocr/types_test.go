package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_JoinedText(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want string
	}{
		{"empty row", Row{}, ""},
		{"single block", Row{{Text: "Total"}}, "Total"},
		{"multiple blocks", Row{{Text: "PO"}, {Text: "No:"}, {Text: "123"}}, "PO No: 123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.JoinedText())
		})
	}
}

func TestResult_Validate(t *testing.T) {
	valid := func() *Result {
		return &Result{
			FullText:        "Invoice",
			Rows:            []Row{{{Text: "Invoice", Confidence: 0.8}}},
			AvgConfidence:   0.8,
			TotalTextBlocks: 1,
			Success:         true,
		}
	}

	t.Run("nil result", func(t *testing.T) {
		var r *Result
		require.Error(t, r.Validate())
	})

	t.Run("valid result", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("unsuccessful result skips checks", func(t *testing.T) {
		r := &Result{Success: false, AvgConfidence: 7, TotalTextBlocks: 99}
		require.NoError(t, r.Validate())
	})

	t.Run("avg confidence out of range", func(t *testing.T) {
		r := valid()
		r.AvgConfidence = 1.5
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "avg confidence")
	})

	t.Run("block confidence out of range", func(t *testing.T) {
		r := valid()
		r.Rows[0][0].Confidence = -0.1
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "block confidence")
	})

	t.Run("block count mismatch", func(t *testing.T) {
		r := valid()
		r.TotalTextBlocks = 3
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "total_text_blocks")
	})
}
