package midi

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/codetone-labs/codetone-api/internal/models"
)

// TicksPerQuarter is the fixed tick resolution of encoded files.
const TicksPerQuarter = 480

const (
	eventNoteOff       = 0x80
	eventNoteOn        = 0x90
	eventProgramChange = 0xC0

	metaPrefix        = 0xFF
	metaTrackName     = 0x03
	metaEndOfTrack    = 0x2F
	metaTempo         = 0x51
	metaTimeSignature = 0x58

	percussionChannel = 9
)

// durationTicks maps symbolic durations to ticks at the 480-tick resolution;
// dotted variants are 1.5x. Unknown symbols default to a quarter note.
var durationTicks = map[string]int{
	"32n":  60,
	"16n":  120,
	"8n":   240,
	"4n":   480,
	"2n":   960,
	"1n":   1920,
	"32n.": 90,
	"16n.": 180,
	"8n.":  360,
	"4n.":  720,
	"2n.":  1440,
	"1n.":  2880,
}

// instrumentPrograms assigns General MIDI programs. Percussion is routed to
// channel 9 and carries no program change; unrecognized instruments fall
// back to the ambient pad.
var instrumentPrograms = map[string]byte{
	"melody":     80, // Lead 1 (square)
	"bass":       33, // Electric Bass (finger)
	"harmony":    48, // String Ensemble 1
	"ambient":    89, // Pad 2 (warm)
	"dissonance": 30, // Distortion Guitar
}

const fallbackProgram = 89

// Encode serializes a composition as a format-1 Standard MIDI File: one
// tempo/metadata track followed by one track per instrument. Output is
// byte-identical for identical input.
func Encode(comp models.Composition) []byte {
	chunks := make([][]byte, 0, len(comp.Tracks)+1)
	chunks = append(chunks, tempoTrack(comp))

	channel := 0
	for _, tr := range comp.Tracks {
		ch := channel
		if tr.Instrument == "percussion" {
			ch = percussionChannel
		} else {
			if ch == percussionChannel {
				ch++
				channel++
			}
			channel++
		}
		chunks = append(chunks, trackChunk(tr, byte(ch&0x0F), comp.Tempo))
	}

	var buf bytes.Buffer
	buf.WriteString("MThd")
	writeUint32(&buf, 6)
	writeUint16(&buf, 1) // format 1: multi-track synchronous
	writeUint16(&buf, uint16(len(chunks)))
	writeUint16(&buf, TicksPerQuarter)

	for _, chunk := range chunks {
		buf.WriteString("MTrk")
		writeUint32(&buf, uint32(len(chunk)))
		buf.Write(chunk)
	}

	return buf.Bytes()
}

// EncodeToBase64 wraps Encode for transports that want text.
func EncodeToBase64(comp models.Composition) string {
	return base64.StdEncoding.EncodeToString(Encode(comp))
}

// tempoTrack holds title, tempo and time signature meta events.
func tempoTrack(comp models.Composition) []byte {
	var out []byte

	out = AppendVLQ(out, 0)
	out = appendMeta(out, metaTrackName, []byte(comp.Title))

	tempo := comp.Tempo
	if tempo <= 0 {
		tempo = 120
	}
	usPerBeat := int(math.Round(60000000.0 / float64(tempo)))
	out = AppendVLQ(out, 0)
	out = appendMeta(out, metaTempo, []byte{
		byte(usPerBeat >> 16),
		byte(usPerBeat >> 8),
		byte(usPerBeat),
	})

	num, den := comp.TimeSignature.Numerator, comp.TimeSignature.Denominator
	if num <= 0 {
		num = 4
	}
	if den <= 0 {
		den = 4
	}
	out = AppendVLQ(out, 0)
	out = appendMeta(out, metaTimeSignature, []byte{byte(num), log2(den), 24, 8})

	out = AppendVLQ(out, 0)
	out = appendMeta(out, metaEndOfTrack, nil)
	return out
}

type trackEvent struct {
	tick  int
	order int // insertion order, keeps same-tick events stable
	data  []byte
}

func trackChunk(tr models.Track, channel byte, tempoBPM int) []byte {
	if tempoBPM <= 0 {
		tempoBPM = 120
	}

	events := make([]trackEvent, 0, len(tr.Notes)*2)
	for _, note := range tr.Notes {
		pitch, ok := pitchToMIDI(note.Pitch)
		if !ok {
			continue // out-of-range or unparseable pitch emits nothing
		}

		start := secondsToTicks(note.StartTime, tempoBPM)
		dur, known := durationTicks[note.Duration]
		if !known {
			dur = durationTicks["4n"]
		}

		events = append(events, trackEvent{
			tick:  start,
			order: len(events),
			data:  []byte{eventNoteOn | channel, byte(pitch), velocityByte(note.Velocity)},
		})
		events = append(events, trackEvent{
			tick:  start + dur,
			order: len(events),
			data:  []byte{eventNoteOff | channel, byte(pitch), 0},
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].order < events[j].order
	})

	var out []byte
	out = AppendVLQ(out, 0)
	out = appendMeta(out, metaTrackName, []byte(tr.Name))

	if channel != percussionChannel {
		program, ok := instrumentPrograms[tr.Instrument]
		if !ok {
			program = fallbackProgram
		}
		out = AppendVLQ(out, 0)
		out = append(out, eventProgramChange|channel, program)
	}

	lastTick := 0
	for _, ev := range events {
		delta := ev.tick - lastTick
		if delta < 0 {
			delta = 0
		} else {
			lastTick = ev.tick
		}
		out = AppendVLQ(out, delta)
		out = append(out, ev.data...)
	}

	out = AppendVLQ(out, 0)
	out = appendMeta(out, metaEndOfTrack, nil)
	return out
}

func appendMeta(dst []byte, metaType byte, payload []byte) []byte {
	dst = append(dst, metaPrefix, metaType)
	dst = AppendVLQ(dst, len(payload))
	return append(dst, payload...)
}

func secondsToTicks(seconds float64, tempoBPM int) int {
	return int(math.Round(seconds * float64(tempoBPM) / 60.0 * TicksPerQuarter))
}

// velocityByte maps semantic velocity (0,1] to MIDI 1-127. Zero is never
// emitted: velocity-0 note-ons mean note-off.
func velocityByte(v float64) byte {
	scaled := int(math.Round(v * 127))
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 127 {
		scaled = 127
	}
	return byte(scaled)
}

// pitchToMIDI parses a note name like "C4", "F#3" or "Bb2" into a MIDI note
// number (C4 = 60). Out-of-range or malformed pitches report !ok.
func pitchToMIDI(pitch string) (int, bool) {
	if len(pitch) < 2 {
		return 0, false
	}

	letter := pitch[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	semitones, ok := map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}[letter]
	if !ok {
		return 0, false
	}

	idx := 1
	switch pitch[idx] {
	case '#':
		semitones++
		idx++
	case 'b':
		semitones--
		idx++
	}

	octave, err := strconv.Atoi(strings.TrimSpace(pitch[idx:]))
	if err != nil {
		return 0, false
	}

	note := (octave+1)*12 + semitones
	if note < 0 || note > 127 {
		return 0, false
	}
	return note, true
}

func log2(v int) byte {
	var exp byte
	for v > 1 {
		v >>= 1
		exp++
	}
	return exp
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	_ = binary.Write(buf, binary.BigEndian, v)
}
