package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/abhisek/soulsupport/internal/diagnosis"
)

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestFromAnswersEmpty(t *testing.T) {
	_, err := FromAnswers(nil, testTime)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFromAnswersPairsQuestions(t *testing.T) {
	in, err := FromAnswers([]int{1, 2, 3, 4, 5}, testTime)
	require.NoError(t, err)

	require.Len(t, in.Entries, 5)
	qs := diagnosis.Questions()
	for i, e := range in.Entries {
		assert.Equal(t, i+1, e.Number)
		assert.Equal(t, qs[i].Prompt, e.Question)
		assert.Equal(t, qs[i].Category, e.Category)
		assert.Equal(t, Palette[i], e.Color)
	}
	assert.Equal(t, 15, in.Total)
	assert.Equal(t, diagnosis.BandModerate, in.Band)
	assert.True(t, in.Complete)
}

func TestFromAnswersPartial(t *testing.T) {
	in, err := FromAnswers([]int{4, 4}, testTime)
	require.NoError(t, err)
	assert.Len(t, in.Entries, 2)
	assert.False(t, in.Complete)
}

func TestChartIsPNG(t *testing.T) {
	in, err := FromAnswers([]int{5, 4, 3, 2, 1}, testTime)
	require.NoError(t, err)

	img, err := Chart(in)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")), "missing PNG signature")
}

func TestChartFullAssessmentLabelsFit(t *testing.T) {
	in, err := FromAnswers([]int{5, 5, 5, 5, 5}, testTime)
	require.NoError(t, err)

	out, err := Chart(in)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, chartWidth, cfg.Width)
	assert.Equal(t, chartHeight, cfg.Height)

	// Labels are wrapped into their bar slot; a word wider than the slot
	// is dropped.
	r, err := chart.PNG(chartWidth, chartHeight)
	require.NoError(t, err)
	font, err := chart.GetDefaultFont()
	require.NoError(t, err)
	r.SetDPI(chart.DefaultDPI)
	r.SetFont(font)
	r.SetFontSize(axisFontSize)

	slot := barWidth + barSpacing
	for _, e := range in.Entries {
		w := r.MeasureText(string(e.Category)).Width()
		assert.Less(t, w, slot, "label %q is %dpx, slot is %dpx", e.Category, w, slot)
	}
	// The bars must fit without go-chart shrinking the slots.
	assert.Less(t, len(in.Entries)*slot, chartWidth-100)
}

func TestWriteProducesPDF(t *testing.T) {
	in, err := FromAnswers([]int{2, 2, 2, 2, 2}, testTime)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteNoData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, Input{}, ""), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	in, err := FromAnswers([]int{5, 5, 5, 5, 5}, testTime)
	require.NoError(t, err)

	out := filepath.Join(dir, "reports", "assessment.pdf")
	require.NoError(t, SaveFile(out, in))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	leftovers, err := filepath.Glob(filepath.Join(dir, "soulsupport-chart-*.png"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "transient chart should be removed")
}

func TestSaveFileNoDataWritesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out := filepath.Join(dir, "empty.pdf")
	assert.ErrorIs(t, SaveFile(out, Input{}), ErrNoData)

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no file should be written")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarkdown(t *testing.T) {
	in, err := FromAnswers([]int{5, 5, 5, 5, 5}, testTime)
	require.NoError(t, err)

	md := Markdown(in)
	assert.True(t, strings.HasPrefix(md, "# "+Title))
	assert.Contains(t, md, "Severe Symptoms")
	assert.Contains(t, md, "(25/25)")
	assert.Contains(t, md, "4. Consider professional counseling")

	partial, err := FromAnswers([]int{1}, testTime)
	require.NoError(t, err)
	assert.Contains(t, Markdown(partial), "1 of 5 questions answered")
}
