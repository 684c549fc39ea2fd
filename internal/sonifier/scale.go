package sonifier

import "strconv"

var chromatic = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteOffsets maps note letters (with optional accidental) to semitone
// offsets from C.
var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11,
}

// scaleIntervals are semitone offsets from the scale root.
var scaleIntervals = map[string][]int{
	"major":           {0, 2, 4, 5, 7, 9, 11},
	"minor":           {0, 2, 3, 5, 7, 8, 10},
	"dorian":          {0, 2, 3, 5, 7, 9, 10},
	"pentatonic":      {0, 2, 4, 7, 9},
	"minorPentatonic": {0, 3, 5, 7, 10},
}

func intervalsFor(scaleName string) []int {
	if iv, ok := scaleIntervals[scaleName]; ok {
		return iv
	}
	return scaleIntervals["major"]
}

func rootPitchClass(key string) int {
	if pc, ok := noteOffsets[key]; ok {
		return pc
	}
	return 0
}

// noteName renders a pitch class and octave as a note name like "F#3".
// Out-of-range inputs are folded/clamped rather than rejected.
func noteName(pitchClass, octave int) string {
	for pitchClass < 0 {
		pitchClass += 12
		octave--
	}
	octave += pitchClass / 12
	pitchClass %= 12
	if octave < 0 {
		octave = 0
	}
	if octave > 8 {
		octave = 8
	}
	return chromatic[pitchClass] + strconv.Itoa(octave)
}

// scaleNote picks the given degree of a scale rooted at rootPC, carrying
// degrees past the scale length into the next octave.
func scaleNote(rootPC int, intervals []int, degree, octave int) string {
	if len(intervals) == 0 {
		intervals = scaleIntervals["major"]
	}
	if degree < 0 {
		degree = 0
	}
	return noteName(rootPC+intervals[degree%len(intervals)], octave+degree/len(intervals))
}
