package sonifier

import (
	"math"
	"strconv"

	"github.com/codetone-labs/codetone-api/internal/models"
)

// beatsPerSymbol gives the length of each symbolic duration in beats.
var beatsPerSymbol = map[string]float64{
	"32n": 0.125,
	"16n": 0.25,
	"8n":  0.5,
	"4n":  1,
	"2n":  2,
	"1n":  4,
	"16n.": 0.375,
	"8n.":  0.75,
	"4n.":  1.5,
	"2n.":  3,
}

// operatorPitches is the fixed operator lookup; unseen operators hit the
// default pitch.
var operatorPitches = map[string]string{
	"+": "C5", "-": "A4", "*": "E5", "/": "G4",
	"=": "D5", "==": "F5", "===": "F5",
	"<": "B4", ">": "D4", "<=": "B4", ">=": "D4",
	"!": "D#5", "!=": "D#5",
	"&&": "G5", "||": "F#4", "&": "G5", "|": "F#4",
	"=>": "E4", "->": "A#4", ":=": "D5",
}

const defaultOperatorPitch = "C5"

const (
	baseOctave     = 3
	maxOctaveShift = 3
)

// Mapper converts a token stream into note events. The only mutable state is
// the monotonic time cursor, so independent Mapper instances are safe to use
// concurrently.
type Mapper struct {
	style       Style
	tempo       int
	multiplier  float64 // 120/tempo, normalizes durations to the 120 BPM reference
	rootPC      int
	intervals   []int
	currentTime float64
}

// NewMapper derives the tempo from the code's complexity and prepares the
// style's scale tables.
func NewMapper(complexity int, style Style) *Mapper {
	tempo := TempoFromComplexity(complexity, style)
	return &Mapper{
		style:      style,
		tempo:      tempo,
		multiplier: 120.0 / float64(tempo),
		rootPC:     rootPitchClass(style.Key),
		intervals:  intervalsFor(style.Scale),
	}
}

// TempoFromComplexity interpolates linearly inside the style's tempo range.
func TempoFromComplexity(complexity int, style Style) int {
	if complexity < 0 {
		complexity = 0
	}
	if complexity > 100 {
		complexity = 100
	}
	span := float64(style.MaxTempo - style.MinTempo)
	return style.MinTempo + int(math.Round(float64(complexity)/100.0*span))
}

// Tempo returns the BPM chosen for this mapping.
func (m *Mapper) Tempo() int {
	return m.tempo
}

// MapTokens converts tokens to notes in source order. Each token kind has a
// fixed generation rule; only the time cursor is carried between tokens.
func (m *Mapper) MapTokens(tokens []models.Token) []models.Note {
	notes := make([]models.Note, 0, len(tokens))
	for _, tok := range tokens {
		notes = append(notes, m.mapToken(tok)...)
	}
	return notes
}

func (m *Mapper) mapToken(tok models.Token) []models.Note {
	switch tok.Kind {
	case models.TokenFunction:
		return m.functionPhrase(tok)
	case models.TokenLoop:
		return m.loopPattern(tok)
	case models.TokenConditional:
		return m.conditionalChord(tok)
	case models.TokenVariable:
		return m.variableNote(tok)
	case models.TokenClass:
		return m.classChord(tok)
	case models.TokenString:
		return m.stringNote(tok)
	case models.TokenNumber:
		return m.numberNote(tok)
	case models.TokenOperator:
		return m.operatorHit(tok)
	case models.TokenComment:
		return m.commentNote(tok)
	case models.TokenImport:
		return m.importArpeggio()
	case models.TokenReturn:
		return m.returnResolution()
	case models.TokenError:
		return m.errorCluster()
	case models.TokenBracketOpen:
		return m.bracketGrace(tok, 0)
	case models.TokenBracketClose:
		return m.bracketGrace(tok, -1)
	case models.TokenWhitespace:
		m.advance("16n")
		return nil
	default: // keyword, unknown
		return m.backgroundNote(tok)
	}
}

// seconds converts a symbolic duration to seconds at the reference 120 BPM,
// scaled by the tempo multiplier. Unknown symbols count as a quarter note.
func (m *Mapper) seconds(symbol string) float64 {
	beats, ok := beatsPerSymbol[symbol]
	if !ok {
		beats = 1
	}
	return beats * 0.5 * m.multiplier
}

func (m *Mapper) advance(symbol string) {
	m.currentTime += m.seconds(symbol)
}

func (m *Mapper) note(pitch, duration string, velocity float64, instrument string) models.Note {
	return models.Note{
		Pitch:      pitch,
		Duration:   duration,
		Velocity:   clampVelocity(velocity),
		StartTime:  m.currentTime,
		Instrument: instrument,
	}
}

// functionPhrase emits an ascending 3-5 note run in the active scale.
func (m *Mapper) functionPhrase(tok models.Token) []models.Note {
	count := 3 + len(tok.Text)%3
	octave := octaveForDepth(tok.Depth)
	notes := make([]models.Note, 0, count)
	for i := 0; i < count; i++ {
		pitch := scaleNote(m.rootPC, m.intervals, i, octave)
		notes = append(notes, m.note(pitch, "8n", 0.7+0.05*float64(i), InstrumentMelody))
		m.advance("8n")
	}
	return notes
}

// loopPattern emits a short percussive figure, repeated twice for "for"
// loops and three times for "while" loops.
func (m *Mapper) loopPattern(tok models.Token) []models.Note {
	reps := 1
	switch tok.Text {
	case "for":
		reps = 2
	case "while":
		reps = 3
	}
	pattern := []struct {
		pitch    string
		duration string
	}{
		{"C2", "16n"},
		{"C2", "16n"},
		{"G2", "8n"},
	}
	var notes []models.Note
	for r := 0; r < reps; r++ {
		for _, step := range pattern {
			notes = append(notes, m.note(step.pitch, step.duration, 0.55+0.05*float64(r), InstrumentPercussion))
			m.advance(step.duration)
		}
	}
	return notes
}

// conditionalChord emits a simultaneous triad: major for "if", minor for
// "else"/"elif", then advances by a quarter note.
func (m *Mapper) conditionalChord(tok models.Token) []models.Note {
	intervals := []int{0, 4, 7}
	if tok.Text == "else" || tok.Text == "elif" || tok.Text == "elsif" {
		intervals = []int{0, 3, 7}
	}
	octave := octaveForDepth(tok.Depth)
	notes := make([]models.Note, 0, len(intervals))
	for _, iv := range intervals {
		notes = append(notes, m.note(noteName(m.rootPC+iv, octave), "4n", 0.65, InstrumentHarmony))
	}
	m.advance("4n")
	return notes
}

// variableNote sustains a low note keyed off the identifier's first byte.
func (m *Mapper) variableNote(tok models.Token) []models.Note {
	pc := 0
	if len(tok.Text) > 0 {
		pc = int(tok.Text[0]) % 12
	}
	n := m.note(noteName(pc, 2), "2n", 0.5, InstrumentBass)
	m.advance("4n")
	return []models.Note{n}
}

// classChord emits a root/fifth/octave power chord one octave up.
func (m *Mapper) classChord(tok models.Token) []models.Note {
	octave := octaveForDepth(tok.Depth) + 1
	if octave > 7 {
		octave = 7
	}
	notes := make([]models.Note, 0, 3)
	for _, iv := range []int{0, 7, 12} {
		notes = append(notes, m.note(noteName(m.rootPC+iv, octave), "2n", 0.7, InstrumentHarmony))
	}
	m.advance("2n")
	return notes
}

// stringNote picks a pentatonic note indexed by the literal's length.
func (m *Mapper) stringNote(tok models.Token) []models.Note {
	penta := scaleIntervals["pentatonic"]
	iv := penta[len(tok.Text)%len(penta)]
	n := m.note(noteName(m.rootPC+iv, 4), "8n", 0.4, InstrumentAmbient)
	m.advance("8n")
	return []models.Note{n}
}

// numberNote plays a staccato note: pitch class from the value modulo 12,
// octave from the value's magnitude, clamped to [2,7].
func (m *Mapper) numberNote(tok models.Token) []models.Note {
	value, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		value = 0
	}
	magnitude := math.Abs(value)
	pc := int(magnitude) % 12
	octave := 2 + int(math.Log10(magnitude+1))
	if octave < 2 {
		octave = 2
	}
	if octave > 7 {
		octave = 7
	}
	n := m.note(noteName(pc, octave), "16n", 0.6, InstrumentMelody)
	m.advance("16n")
	return []models.Note{n}
}

func (m *Mapper) operatorHit(tok models.Token) []models.Note {
	pitch, ok := operatorPitches[tok.Text]
	if !ok {
		pitch = defaultOperatorPitch
	}
	n := m.note(pitch, "16n", 0.5, InstrumentPercussion)
	m.advance("16n")
	return []models.Note{n}
}

// commentNote hums quietly on a pentatonic degree indexed by line number.
func (m *Mapper) commentNote(tok models.Token) []models.Note {
	penta := scaleIntervals["pentatonic"]
	iv := penta[tok.Line%len(penta)]
	n := m.note(noteName(m.rootPC+iv, 5), "2n", 0.3, InstrumentAmbient)
	m.advance("8n")
	return []models.Note{n}
}

func (m *Mapper) importArpeggio() []models.Note {
	notes := make([]models.Note, 0, 3)
	for _, degree := range []int{0, 2, 4} {
		notes = append(notes, m.note(scaleNote(m.rootPC, m.intervals, degree, 4), "8n", 0.55, InstrumentMelody))
		m.advance("8n")
	}
	return notes
}

// returnResolution descends onto the scale root.
func (m *Mapper) returnResolution() []models.Note {
	notes := make([]models.Note, 0, 2)
	notes = append(notes, m.note(scaleNote(m.rootPC, m.intervals, 2, 4), "4n", 0.6, InstrumentMelody))
	m.advance("8n")
	notes = append(notes, m.note(scaleNote(m.rootPC, m.intervals, 0, 4), "2n", 0.6, InstrumentMelody))
	m.advance("8n")
	return notes
}

// errorCluster stacks harsh intervals (minor second, tritone, major seventh)
// on the dissonance instrument.
func (m *Mapper) errorCluster() []models.Note {
	notes := make([]models.Note, 0, 4)
	for _, iv := range []int{0, 1, 6, 11} {
		notes = append(notes, m.note(noteName(m.rootPC+iv, 4), "2n", 0.8, InstrumentDissonance))
	}
	m.advance("4n")
	return notes
}

// bracketGrace emits a non-advancing grace note at (or just below) the
// nesting octave.
func (m *Mapper) bracketGrace(tok models.Token, offset int) []models.Note {
	pitch := noteName(m.rootPC+offset, octaveForDepth(tok.Depth))
	return []models.Note{m.note(pitch, "16n", 0.3, InstrumentPercussion)}
}

// backgroundNote covers keyword and unknown tokens with a very quiet pad.
func (m *Mapper) backgroundNote(tok models.Token) []models.Note {
	pc := 0
	if len(tok.Text) > 0 {
		pc = int(tok.Text[0]) % 12
	}
	n := m.note(noteName(pc, 3), "8n", 0.2, InstrumentAmbient)
	m.advance("16n")
	return []models.Note{n}
}

// octaveForDepth shifts the base octave by nesting depth, capped and clamped
// to the playable range.
func octaveForDepth(depth int) int {
	shift := depth
	if shift > maxOctaveShift {
		shift = maxOctaveShift
	}
	octave := baseOctave + shift
	if octave < 1 {
		octave = 1
	}
	if octave > 7 {
		octave = 7
	}
	return octave
}

func clampVelocity(v float64) float64 {
	if v <= 0 {
		return 0.05
	}
	if v > 1 {
		return 1
	}
	return v
}
