package batch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *Result {
	t.Helper()
	dir := populateDir(t, "a.jpg", "bad.jpg")
	res, err := ProcessBatch(context.Background(), newTestPipeline(t), dir, &Config{})
	require.NoError(t, err)
	return res
}

func TestFormatResults_Text(t *testing.T) {
	res := sampleResult(t)

	out, err := res.FormatResults("text")

	require.NoError(t, err)
	assert.Contains(t, out, "Processed 1/2 files successfully")
	assert.Contains(t, out, "# a.jpg")
	assert.Contains(t, out, "PO Number: 42")
	assert.Contains(t, out, "Vendor: ABC Traders")
	assert.Contains(t, out, "# bad.jpg")
	assert.Contains(t, out, "Error: ")
}

func TestFormatResults_JSON(t *testing.T) {
	res := sampleResult(t)

	out, err := res.FormatResults("json")

	require.NoError(t, err)
	var decoded Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2, decoded.Total)
	assert.Equal(t, 1, decoded.Succeeded)
	require.Len(t, decoded.Outcomes, 2)
	assert.Empty(t, decoded.Outcomes[0].Error)
	assert.NotEmpty(t, decoded.Outcomes[1].Error)
}
