package sonifier

import (
	"fmt"
	"strings"

	"github.com/codetone-labs/codetone-api/internal/models"
)

type diffLineKind int

const (
	diffHeader diffLineKind = iota
	diffAdded
	diffRemoved
	diffContext
)

type diffLine struct {
	kind   diffLineKind
	text   string
	number int
}

var headerPrefixes = []string{"+++", "---", "diff ", "index ", "@@"}

// parseDiff classifies each line of a unified diff by its leading
// characters. It does not interpret hunk semantics beyond the prefix check.
func parseDiff(diffText string) ([]diffLine, models.DiffStats) {
	var (
		lines []diffLine
		stats models.DiffStats
	)

	rawLines := strings.Split(diffText, "\n")
	for i, raw := range rawLines {
		if i == len(rawLines)-1 && raw == "" {
			break
		}
		line := diffLine{text: raw, number: i + 1, kind: diffContext}
		switch {
		case isHeaderLine(raw):
			line.kind = diffHeader
			if name, ok := fileFromHeader(raw); ok {
				stats.Files = append(stats.Files, name)
			}
		case strings.HasPrefix(raw, "+"):
			line.kind = diffAdded
			stats.AddedLines++
		case strings.HasPrefix(raw, "-"):
			line.kind = diffRemoved
			stats.RemovedLines++
		default:
			stats.ContextLines++
		}
		lines = append(lines, line)
	}

	if stats.TotalChanges() == 0 {
		stats.ChangeRatio = 0.5
	} else {
		stats.ChangeRatio = float64(stats.AddedLines) / float64(stats.TotalChanges())
	}

	return lines, stats
}

func isHeaderLine(raw string) bool {
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return false
}

// fileFromHeader extracts the file name from a "+++" header, skipping the
// null-device sentinel.
func fileFromHeader(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "+++") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(raw, "+++"))
	name = strings.TrimPrefix(name, "b/")
	if name == "" || name == "/dev/null" {
		return "", false
	}
	return name, true
}

// diffMood maps the add/remove balance to key and scale: mostly additions
// sound bright, mostly deletions dark, balanced changes sit in dorian.
func diffMood(stats models.DiffStats) (key, scale string) {
	switch {
	case stats.ChangeRatio > 0.6:
		return "C", "major"
	case stats.ChangeRatio < 0.4:
		return "A", "minor"
	default:
		return "D", "dorian"
	}
}

func diffTempo(stats models.DiffStats) int {
	tempo := 80 + stats.TotalChanges()*2
	if tempo < 70 {
		tempo = 70
	}
	if tempo > 160 {
		tempo = 160
	}
	return tempo
}

// diffMapper reuses the Mapper's cursor discipline for per-line generation.
type diffMapper struct {
	multiplier  float64
	rootPC      int
	currentTime float64
}

func (m *diffMapper) seconds(symbol string) float64 {
	beats, ok := beatsPerSymbol[symbol]
	if !ok {
		beats = 1
	}
	return beats * 0.5 * m.multiplier
}

func (m *diffMapper) advance(symbol string) {
	m.currentTime += m.seconds(symbol)
}

func (m *diffMapper) note(pitch, duration string, velocity float64, instrument string) models.Note {
	return models.Note{
		Pitch:      pitch,
		Duration:   duration,
		Velocity:   clampVelocity(velocity),
		StartTime:  m.currentTime,
		Instrument: instrument,
	}
}

func mapDiffLines(lines []diffLine, rootPC, tempo int) []models.Note {
	m := &diffMapper{multiplier: 120.0 / float64(tempo), rootPC: rootPC}
	var notes []models.Note

	major := scaleIntervals["major"]
	minor := scaleIntervals["minor"]
	penta := scaleIntervals["pentatonic"]

	for _, line := range lines {
		switch line.kind {
		case diffHeader:
			notes = append(notes, m.note("C3", "16n", 0.3, InstrumentPercussion))
			m.advance("16n")

		case diffContext:
			iv := penta[line.number%len(penta)]
			notes = append(notes, m.note(noteName(m.rootPC+iv, 4), "8n", 0.35, InstrumentAmbient))
			m.advance("8n")

		case diffAdded:
			content := strings.TrimSpace(strings.TrimPrefix(line.text, "+"))
			count := phraseLength(len(content), 5, 8)
			for i := 0; i < count; i++ {
				notes = append(notes, m.note(scaleNote(m.rootPC, major, i, 4), "8n", 0.6+0.03*float64(i), InstrumentMelody))
				m.advance("16n")
			}
			if len(content) > 20 {
				for _, iv := range []int{0, 4, 7} {
					notes = append(notes, m.note(noteName(m.rootPC+iv, 4), "4n", 0.5, InstrumentHarmony))
				}
				m.advance("8n")
			}

		case diffRemoved:
			content := strings.TrimSpace(strings.TrimPrefix(line.text, "-"))
			count := phraseLength(len(content), 4, 10)
			for i := 0; i < count; i++ {
				notes = append(notes, m.note(scaleNote(m.rootPC, minor, count-1-i, 3), "8n", 0.55, InstrumentMelody))
				m.advance("16n")
			}
			notes = append(notes, m.note("C2", "8n", 0.5, InstrumentPercussion))
			m.advance("8n")
		}
	}

	return notes
}

// phraseLength sizes a phrase by content length: one note per `per`
// characters, at least one, at most maxNotes.
func phraseLength(contentLen, maxNotes, per int) int {
	n := contentLen/per + 1
	if n > maxNotes {
		n = maxNotes
	}
	return n
}

// synthesizeDiff builds a pseudo-unified diff from two text blobs, pairing
// lines by index. No LCS alignment is attempted: identical musical output
// for identical inputs matters more than minimal diffs here.
func synthesizeDiff(oldText, newText string) string {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	var b strings.Builder
	b.WriteString("--- a/previous\n")
	b.WriteString("+++ b/current\n")
	b.WriteString(fmt.Sprintf("@@ -1,%d +1,%d @@\n", len(oldLines), len(newLines)))

	longest := len(oldLines)
	if len(newLines) > longest {
		longest = len(newLines)
	}

	for i := 0; i < longest; i++ {
		switch {
		case i >= len(oldLines):
			b.WriteString("+" + newLines[i] + "\n")
		case i >= len(newLines):
			b.WriteString("-" + oldLines[i] + "\n")
		case oldLines[i] == newLines[i]:
			b.WriteString(" " + oldLines[i] + "\n")
		default:
			b.WriteString("-" + oldLines[i] + "\n")
			b.WriteString("+" + newLines[i] + "\n")
		}
	}

	return b.String()
}

func diffSummary(stats models.DiffStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d additions and %d deletions", stats.AddedLines, stats.RemovedLines))
	if len(stats.Files) > 0 {
		b.WriteString(fmt.Sprintf(" across %d file(s)", len(stats.Files)))
	}
	switch {
	case stats.ChangeRatio > 0.6:
		b.WriteString("; growth-heavy change, rendered in a bright major key")
	case stats.ChangeRatio < 0.4:
		b.WriteString("; removal-heavy change, rendered in a dark minor key")
	default:
		b.WriteString("; balanced change, rendered in dorian mode")
	}
	return b.String()
}
