package sonifier

import (
	"strings"
	"testing"

	"github.com/codetone-labs/codetone-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiff_BalancedChange(t *testing.T) {
	diff := "--- a\n+++ b\n@@ -1 +1 @@\n+hello\n-world\n"

	lines, stats := parseDiff(diff)

	assert.Equal(t, 1, stats.AddedLines)
	assert.Equal(t, 1, stats.RemovedLines)
	assert.Equal(t, 0, stats.ContextLines)
	assert.InDelta(t, 0.5, stats.ChangeRatio, 1e-9)
	assert.Len(t, lines, 5) // trailing empty line is not a diff line
}

func TestParseDiff_NoChanges(t *testing.T) {
	_, stats := parseDiff("just some text\nmore text")

	assert.Equal(t, 0, stats.TotalChanges())
	assert.Equal(t, 2, stats.ContextLines)
	assert.InDelta(t, 0.5, stats.ChangeRatio, 1e-9)
}

func TestParseDiff_HeaderKinds(t *testing.T) {
	diff := strings.Join([]string{
		"diff --git a/main.go b/main.go",
		"index 83db48f..bf269f4 100644",
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -10,3 +10,4 @@",
		" unchanged",
		"+added",
	}, "\n")

	lines, stats := parseDiff(diff)

	headers := 0
	for _, line := range lines {
		if line.kind == diffHeader {
			headers++
		}
	}
	assert.Equal(t, 5, headers)
	assert.Equal(t, []string{"main.go"}, stats.Files)
	assert.Equal(t, 1, stats.AddedLines)
	assert.Equal(t, 1, stats.ContextLines)
}

func TestFileFromHeader(t *testing.T) {
	name, ok := fileFromHeader("+++ b/src/main.go")
	require.True(t, ok)
	assert.Equal(t, "src/main.go", name)

	_, ok = fileFromHeader("+++ /dev/null")
	assert.False(t, ok)

	_, ok = fileFromHeader("--- a/src/main.go")
	assert.False(t, ok)
}

func TestDiffMood(t *testing.T) {
	tests := []struct {
		name          string
		ratio         float64
		expectedKey   string
		expectedScale string
	}{
		{"growth-heavy is bright", 0.9, "C", "major"},
		{"removal-heavy is dark", 0.1, "A", "minor"},
		{"balanced sits in dorian", 0.5, "D", "dorian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, scale := diffMood(models.DiffStats{ChangeRatio: tt.ratio})
			assert.Equal(t, tt.expectedKey, key)
			assert.Equal(t, tt.expectedScale, scale)
		})
	}
}

func TestDiffTempo_Clamps(t *testing.T) {
	assert.Equal(t, 80, diffTempo(models.DiffStats{}))
	assert.Equal(t, 90, diffTempo(models.DiffStats{AddedLines: 5}))
	assert.Equal(t, 160, diffTempo(models.DiffStats{AddedLines: 100, RemovedLines: 100}))
}

func TestSynthesizeDiff_IndexPaired(t *testing.T) {
	got := synthesizeDiff("a\nb", "a\nc\nd")

	expected := strings.Join([]string{
		"--- a/previous",
		"+++ b/current",
		"@@ -1,2 +1,3 @@",
		" a",
		"-b",
		"+c",
		"+d",
		"",
	}, "\n")
	assert.Equal(t, expected, got)
}

func TestMapDiffLines_AddedAscendsRemovedDescends(t *testing.T) {
	lines := []diffLine{
		{kind: diffAdded, text: "+short", number: 1},
		{kind: diffRemoved, text: "-short", number: 2},
	}

	notes := mapDiffLines(lines, 0, 120)
	require.NotEmpty(t, notes)

	var melody []models.Note
	percussion := 0
	for _, n := range notes {
		switch n.Instrument {
		case InstrumentMelody:
			melody = append(melody, n)
		case InstrumentPercussion:
			percussion++
		}
	}

	// Each removed line lands a low percussion hit.
	assert.Equal(t, 1, percussion)
	require.NotEmpty(t, melody)
	for i := 1; i < len(notes); i++ {
		assert.GreaterOrEqual(t, notes[i].StartTime, notes[i-1].StartTime)
	}
}
