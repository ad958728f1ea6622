package timeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_SumsValidRows(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	input := "Component,Feature,Time,Health\n" +
		"Root,Sketch1,0.25,Good\n" +
		"Root,Extrude1,1.5,Good\n" +
		"Root,Broken,oops,Error\n" +
		"Body1,Fillet3,2.25,Warning\n"

	report, err := BuildReport(ctx, "Bracket v3", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Bracket v3", report.DocumentName)
	assert.Len(t, report.Rows, 3)
	assert.InDelta(t, 4.0, report.TotalSeconds, 1e-9)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 4, report.Skipped[0].Line)

	assert.Contains(t, logs.String(), "skipping invalid row")
	assert.Contains(t, logs.String(), `"line":4`)
}

func TestBuildReport_TotalIndependentOfOrder(t *testing.T) {
	ctx := context.Background()
	forward := "h\nA,a,1.25,Good\nB,b,2.5,Good\nC,c,0.125,Good\n"
	reverse := "h\nC,c,0.125,Good\nB,b,2.5,Good\nA,a,1.25,Good\n"

	first, err := BuildReport(ctx, "doc", strings.NewReader(forward))
	require.NoError(t, err)
	second, err := BuildReport(ctx, "doc", strings.NewReader(reverse))
	require.NoError(t, err)

	assert.Equal(t, first.TotalSeconds, second.TotalSeconds)
	assert.Equal(t, "A", first.Rows[0].Component)
	assert.Equal(t, "C", second.Rows[0].Component)
}

func TestBuildReport_InputUnavailable(t *testing.T) {
	report, err := BuildReport(context.Background(), "doc", failingReader{})
	assert.ErrorIs(t, err, ErrInputUnavailable)
	assert.Nil(t, report)
}
