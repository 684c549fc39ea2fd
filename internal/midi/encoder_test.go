package midi

import (
	"bytes"
	"testing"

	"github.com/codetone-labs/codetone-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleTrackComposition(notes []models.Note) models.Composition {
	return models.Composition{
		Title:         "Test",
		Tempo:         120,
		TimeSignature: models.TimeSignature{Numerator: 4, Denominator: 4},
		Key:           "C",
		Scale:         "major",
		Tracks: []models.Track{
			{Name: "Melody", Instrument: "melody", Notes: notes},
		},
	}
}

func TestEncode_Header(t *testing.T) {
	data := Encode(singleTrackComposition(nil))

	// MThd, length 6, format 1, two chunks (tempo track + one instrument
	// track), 480 ticks per quarter.
	expected := []byte{
		'M', 'T', 'h', 'd',
		0x00, 0x00, 0x00, 0x06,
		0x00, 0x01,
		0x00, 0x02,
		0x01, 0xE0,
	}
	require.GreaterOrEqual(t, len(data), len(expected))
	assert.Equal(t, expected, data[:len(expected)])
}

func TestEncode_TempoAndTimeSignatureMeta(t *testing.T) {
	data := Encode(singleTrackComposition(nil))

	// 120 BPM -> 500000 microseconds per beat.
	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}))
	// 4/4 with the denominator stored as a power of two.
	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))
}

func TestEncode_QuarterNoteEventPair(t *testing.T) {
	notes := []models.Note{
		{Pitch: "C4", Duration: "4n", Velocity: 1.0, StartTime: 0, Instrument: "melody"},
	}
	data := Encode(singleTrackComposition(notes))

	// Note-on at delta 0, note-off a quarter note (480 ticks) later.
	pair := []byte{
		0x00, 0x90, 60, 127,
		0x83, 0x60, 0x80, 60, 0x00,
	}
	assert.True(t, bytes.Contains(data, pair))
}

func TestEncode_ChordSharesOnset(t *testing.T) {
	notes := []models.Note{
		{Pitch: "C4", Duration: "4n", Velocity: 0.5, StartTime: 0, Instrument: "harmony"},
		{Pitch: "E4", Duration: "4n", Velocity: 0.5, StartTime: 0, Instrument: "harmony"},
		{Pitch: "G4", Duration: "4n", Velocity: 0.5, StartTime: 0, Instrument: "harmony"},
	}
	comp := singleTrackComposition(notes)
	comp.Tracks[0].Instrument = "harmony"
	data := Encode(comp)

	vel := velocityByte(0.5)
	// All three note-ons land at consecutive zero deltas before any note-off.
	chord := []byte{
		0x00, 0x90, 60, vel,
		0x00, 0x90, 64, vel,
		0x00, 0x90, 67, vel,
	}
	assert.True(t, bytes.Contains(data, chord))
}

func TestEncode_PercussionRoutedToChannelTen(t *testing.T) {
	notes := []models.Note{
		{Pitch: "C2", Duration: "16n", Velocity: 0.5, StartTime: 0, Instrument: "percussion"},
	}
	comp := models.Composition{
		Title: "Drums",
		Tempo: 120,
		Tracks: []models.Track{
			{Name: "Percussion", Instrument: "percussion", Notes: notes},
		},
	}
	data := Encode(comp)

	// Channel 9 note-on, and no program change for the drum channel.
	assert.True(t, bytes.Contains(data, []byte{0x99, 36, velocityByte(0.5)}))
	assert.False(t, bytes.Contains(data, []byte{0xC9}))
}

func TestEncode_InvalidPitchEmitsNothing(t *testing.T) {
	bad := []models.Note{
		{Pitch: "G#9", Duration: "4n", Velocity: 0.5, StartTime: 0, Instrument: "melody"},
		{Pitch: "zzz", Duration: "4n", Velocity: 0.5, StartTime: 0, Instrument: "melody"},
	}

	withBad := Encode(singleTrackComposition(bad))
	empty := Encode(singleTrackComposition(nil))

	assert.Equal(t, empty, withBad)
}

// walkTrackEvents decodes one MTrk event stream into (absolute tick, status)
// pairs. Only the event types the encoder emits are understood.
func walkTrackEvents(t *testing.T, chunk []byte) []struct {
	tick   int
	status byte
} {
	t.Helper()

	var events []struct {
		tick   int
		status byte
	}
	tick := 0
	for i := 0; i < len(chunk); {
		delta, n := DecodeVLQ(chunk[i:])
		require.Positive(t, n, "truncated delta at offset %d", i)
		i += n
		tick += delta

		status := chunk[i]
		events = append(events, struct {
			tick   int
			status byte
		}{tick, status})

		switch {
		case status == metaPrefix:
			length, ln := DecodeVLQ(chunk[i+2:])
			require.Positive(t, ln)
			i += 2 + ln + length
		case status&0xF0 == eventProgramChange:
			i += 2
		case status&0xF0 == eventNoteOn || status&0xF0 == eventNoteOff:
			i += 3
		default:
			t.Fatalf("unexpected status byte 0x%02X at offset %d", status, i)
		}
	}
	return events
}

func TestEncode_TicksMonotonicWithinTrack(t *testing.T) {
	// Deliberately out of onset order.
	notes := []models.Note{
		{Pitch: "G4", Duration: "8n", Velocity: 0.6, StartTime: 1.0, Instrument: "melody"},
		{Pitch: "C4", Duration: "8n", Velocity: 0.6, StartTime: 0, Instrument: "melody"},
		{Pitch: "E4", Duration: "8n", Velocity: 0.6, StartTime: 0.5, Instrument: "melody"},
	}
	data := Encode(singleTrackComposition(notes))

	// Skip the 14-byte header and the tempo track, then unwrap the
	// instrument track chunk.
	offset := 14
	tempoLen := int(uint32(data[offset+4])<<24 | uint32(data[offset+5])<<16 | uint32(data[offset+6])<<8 | uint32(data[offset+7]))
	offset += 8 + tempoLen
	require.Equal(t, "MTrk", string(data[offset:offset+4]))
	trackLen := int(uint32(data[offset+4])<<24 | uint32(data[offset+5])<<16 | uint32(data[offset+6])<<8 | uint32(data[offset+7]))
	chunk := data[offset+8 : offset+8+trackLen]

	events := walkTrackEvents(t, chunk)
	require.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].tick, events[i-1].tick)
	}

	// First note-on lands at tick 0 despite being listed last but one.
	for _, ev := range events {
		if ev.status&0xF0 == eventNoteOn {
			assert.Equal(t, 0, ev.tick)
			break
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	notes := []models.Note{
		{Pitch: "C4", Duration: "8n", Velocity: 0.7, StartTime: 0, Instrument: "melody"},
		{Pitch: "E4", Duration: "8n", Velocity: 0.7, StartTime: 0.25, Instrument: "melody"},
	}
	first := Encode(singleTrackComposition(notes))
	second := Encode(singleTrackComposition(notes))

	assert.Equal(t, first, second)
	assert.NotEmpty(t, EncodeToBase64(singleTrackComposition(notes)))
}

func TestVelocityByte(t *testing.T) {
	assert.Equal(t, byte(127), velocityByte(1.0))
	assert.Equal(t, byte(127), velocityByte(2.0))
	assert.Equal(t, byte(1), velocityByte(0.001)) // never zero: that would mean note-off
	assert.Equal(t, byte(64), velocityByte(0.5))
}

func TestPitchToMIDI(t *testing.T) {
	tests := []struct {
		pitch    string
		expected int
		ok       bool
	}{
		{"C4", 60, true},
		{"A0", 21, true},
		{"C#4", 61, true},
		{"Bb2", 46, true},
		{"G9", 127, true},
		{"G#9", 0, false}, // 128, out of range
		{"H2", 0, false},
		{"C", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.pitch, func(t *testing.T) {
			got, ok := pitchToMIDI(tt.pitch)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
