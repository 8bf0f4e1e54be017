package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsupport/internal/store"
)

func TestLookupExercise(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"1", "4-7-8 Breathing", false},
		{"3", "5-4-3-2-1 Grounding", false},
		{"progressive relaxation", "Progressive Relaxation", false},
		{"instant calm", "Instant Calm", false},
		{"0", "", true},
		{"4", "", true},
		{"yoga", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := lookupExercise(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(strings.NewReader(tt.input), &out, "Sure? ")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Sure? ", out.String())
	}
}

func TestRemoveDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soulsupport.db")

	n, err := removeDatabase(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, os.WriteFile(path, []byte("db"), 0o600))
	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal"), 0o600))

	n, err = removeDatabase(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+"-wal")
}

func TestPrintStats(t *testing.T) {
	st := &store.Stats{
		Assessments: 3,
		Completed:   2,
		AvgScore:    12.5,
		Bands:       map[string]int{"mild": 1, "severe": 1},
		Exercises: map[string]map[string]int{
			"Instant Calm": {store.ExerciseStarted: 2, store.ExerciseCompleted: 1},
		},
		ReportsSaved: 1,
		Speech:       map[string]int{"ok": 4},
	}

	var buf bytes.Buffer
	printStats(&buf, st)
	out := buf.String()

	assert.Contains(t, out, "12.5/25")
	assert.Contains(t, out, "4-7-8 Breathing")
	assert.Regexp(t, `Instant Calm\s+2\s+1\s+0`, out)
	assert.Regexp(t, `moderate\s+0`, out)
	assert.Contains(t, out, "Speech input")
}

func TestPrintStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, &store.Stats{})
	out := buf.String()

	assert.NotContains(t, out, "Average score")
	assert.NotContains(t, out, "Speech input")
	assert.Regexp(t, `Reports saved\s+0`, out)
}

func TestPrintLLMEvents(t *testing.T) {
	var buf bytes.Buffer
	printLLMEvents(&buf, nil)
	assert.Equal(t, "No LLM events found.\n", buf.String())

	buf.Reset()
	printLLMEvents(&buf, []store.LLMEventRecord{
		{ID: 3, LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "companion", Model: "claude-haiku-4-5", InputTokens: 120, OutputTokens: 40, Success: true,
		}},
		{ID: 4, LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "transcribe", Model: "whisper-1", Success: false,
		}},
	})
	out := buf.String()
	assert.Contains(t, out, "claude-haiku-4-5")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}

func TestPrintLLMEventIndentsJSON(t *testing.T) {
	var buf bytes.Buffer
	printLLMEvent(&buf, &store.LLMEventRecord{ID: 9, LLMRequestEventData: store.LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-haiku-4-5",
		Success:      false,
		ErrorMessage: "rate limited",
		RequestBody:  `{"system":"be kind"}`,
	}})
	out := buf.String()
	assert.Contains(t, out, "failed: rate limited")
	assert.Contains(t, out, "{\n  \"system\": \"be kind\"\n}")
	assert.Contains(t, out, "(not captured)")
}

func TestPrintCost(t *testing.T) {
	var buf bytes.Buffer
	printCost(&buf, []store.LLMUsage{
		{Key: "claude-haiku-4-5", Calls: 2, InputTokens: 1_000_000, OutputTokens: 200_000},
		{Key: "whisper-1", Calls: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "$2.00")
	assert.Contains(t, out, "total (priced models)")
	assert.Contains(t, out, "No pricing for: whisper-1")
}

func TestPrintUsageTotals(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf, []store.LLMUsage{
		{Key: "companion", Calls: 3, InputTokens: 300, OutputTokens: 90},
		{Key: "transcribe", Calls: 1, InputTokens: 0, OutputTokens: 10},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Regexp(t, `^total\s+4\s+300\s+100\s+400$`, lines[len(lines)-1])
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab", 3))
}
