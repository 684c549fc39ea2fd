package sonifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/codetone-labs/codetone-api/internal/models"
)

// fallbackDuration is reported when a composition has no notes at all.
const fallbackDuration = 5.0

// languageMoods maps detected languages to the composition's reported
// key/scale. This labels the composition only; note pitches were already
// fixed by the mapper's style scale.
var languageMoods = map[string][2]string{
	"javascript": {"C", "major"},
	"typescript": {"E", "minor"},
	"python":     {"G", "major"},
	"go":         {"D", "major"},
	"rust":       {"A", "minor"},
	"java":       {"F", "major"},
	"ruby":       {"E", "major"},
	"unknown":    {"C", "major"},
}

func moodForLanguage(language string) (key, scale string) {
	mood, ok := languageMoods[language]
	if !ok {
		mood = languageMoods["unknown"]
	}
	return mood[0], mood[1]
}

// Assemble groups notes into per-instrument tracks (first-seen instrument
// order), attaches the fixed mixing table and wraps everything with header
// metadata. A composition always carries at least one track.
func Assemble(notes []models.Note, tempo int, key, scale, title string, meta models.CompositionMetadata) models.Composition {
	var (
		order  []string
		byInst = map[string][]models.Note{}
	)
	for _, n := range notes {
		if _, seen := byInst[n.Instrument]; !seen {
			order = append(order, n.Instrument)
		}
		byInst[n.Instrument] = append(byInst[n.Instrument], n)
	}

	tracks := make([]models.Track, 0, len(order))
	for _, inst := range order {
		cfg := configFor(inst)
		tracks = append(tracks, models.Track{
			Name:       titleCase(inst),
			Instrument: inst,
			Waveform:   cfg.Waveform,
			Volume:     cfg.Volume,
			Notes:      byInst[inst],
			Effects:    cfg.Effects,
		})
	}

	if len(tracks) == 0 {
		cfg := configFor(InstrumentAmbient)
		tracks = append(tracks, models.Track{
			Name:       "Conductor",
			Instrument: InstrumentAmbient,
			Waveform:   cfg.Waveform,
			Volume:     cfg.Volume,
			Notes:      []models.Note{},
			Effects:    cfg.Effects,
		})
	}

	duration := fallbackDuration
	if len(notes) > 0 {
		latest := 0.0
		for _, n := range notes {
			if n.StartTime > latest {
				latest = n.StartTime
			}
		}
		duration = latest + 1
	}

	return models.Composition{
		Title:         title,
		Tempo:         tempo,
		TimeSignature: models.TimeSignature{Numerator: 4, Denominator: 4},
		Key:           key,
		Scale:         scale,
		Duration:      duration,
		Tracks:        tracks,
		Metadata:      meta,
	}
}

func contentHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])[:16]
}

// interpret renders the analysis as a human-readable description. Purely
// descriptive; nothing downstream consumes it.
func interpret(analysis models.CodeAnalysis, style Style) string {
	var parts []string

	m := analysis.Metrics
	switch {
	case m.Complexity < 20:
		parts = append(parts, "Simple, clean code with a calm musical flow")
	case m.Complexity < 50:
		parts = append(parts, "Moderately structured code with a steady pulse")
	case m.Complexity < 80:
		parts = append(parts, "Complex code producing a dense, driving texture")
	default:
		parts = append(parts, "Highly complex code producing an intense, layered piece")
	}

	if m.FunctionCount > 0 {
		parts = append(parts, fmt.Sprintf("%d function(s) become melodic phrases", m.FunctionCount))
	}
	if m.LoopCount > 0 {
		parts = append(parts, fmt.Sprintf("%d loop(s) drive the rhythm section", m.LoopCount))
	}
	if m.ConditionalCount > 0 {
		parts = append(parts, fmt.Sprintf("%d conditional(s) add harmonic turns", m.ConditionalCount))
	}
	if m.ErrorCount > 0 {
		parts = append(parts, fmt.Sprintf("%d error handler(s) introduce dissonant accents", m.ErrorCount))
	}

	parts = append(parts, fmt.Sprintf("Rendered from %s source in the %s style", analysis.Language, style.Name))
	return strings.Join(parts, ". ") + "."
}

func codeTitle(language, key, scale string) string {
	lang := language
	if lang == "" || lang == "unknown" {
		lang = "Code"
	} else {
		lang = titleCase(lang)
	}
	return fmt.Sprintf("%s in %s %s", lang, key, scale)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
