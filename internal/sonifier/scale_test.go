package sonifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteName(t *testing.T) {
	tests := []struct {
		name       string
		pitchClass int
		octave     int
		expected   string
	}{
		{"plain", 0, 4, "C4"},
		{"sharp", 6, 3, "F#3"},
		{"overflow folds up an octave", 13, 4, "C#5"},
		{"negative folds down an octave", -1, 4, "B3"},
		{"octave floor", -1, 0, "B0"},
		{"octave ceiling", 0, 12, "C8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, noteName(tt.pitchClass, tt.octave))
		})
	}
}

func TestScaleNote(t *testing.T) {
	major := scaleIntervals["major"]

	assert.Equal(t, "C4", scaleNote(0, major, 0, 4))
	assert.Equal(t, "E4", scaleNote(0, major, 2, 4))
	// Degree 7 wraps to the root an octave up.
	assert.Equal(t, "C5", scaleNote(0, major, 7, 4))
	// D dorian third degree: F.
	assert.Equal(t, "F4", scaleNote(2, scaleIntervals["dorian"], 2, 4))
}

func TestIntervalsFor_UnknownFallsBackToMajor(t *testing.T) {
	assert.Equal(t, scaleIntervals["major"], intervalsFor("phrygian"))
}

func TestRootPitchClass(t *testing.T) {
	assert.Equal(t, 0, rootPitchClass("C"))
	assert.Equal(t, 6, rootPitchClass("F#"))
	assert.Equal(t, 10, rootPitchClass("Bb"))
	assert.Equal(t, 0, rootPitchClass("X")) // unknown keys land on C
}
