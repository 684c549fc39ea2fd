package sonifier

import "github.com/codetone-labs/codetone-api/internal/models"

// Instrument names used across the mapper, assembler and encoder.
const (
	InstrumentMelody     = "melody"
	InstrumentBass       = "bass"
	InstrumentHarmony    = "harmony"
	InstrumentPercussion = "percussion"
	InstrumentAmbient    = "ambient"
	InstrumentDissonance = "dissonance"
)

// Style fixes the musical parameters of a sonification: base key, default
// scale, tempo range and a cosmetic waveform bias.
type Style struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	Scale    string `json:"scale"`
	MinTempo int    `json:"minTempo"`
	MaxTempo int    `json:"maxTempo"`
	Waveform string `json:"waveform"`
}

// DefaultStyleName is used when a request omits the style.
const DefaultStyleName = "melodic"

var styles = map[string]Style{
	"melodic":   {Name: "melodic", Key: "C", Scale: "major", MinTempo: 80, MaxTempo: 160, Waveform: "triangle"},
	"ambient":   {Name: "ambient", Key: "A", Scale: "minor", MinTempo: 60, MaxTempo: 100, Waveform: "sine"},
	"synthwave": {Name: "synthwave", Key: "F#", Scale: "minor", MinTempo: 90, MaxTempo: 150, Waveform: "sawtooth"},
	"chiptune":  {Name: "chiptune", Key: "C", Scale: "major", MinTempo: 100, MaxTempo: 180, Waveform: "square"},
	"jazz":      {Name: "jazz", Key: "D", Scale: "dorian", MinTempo: 70, MaxTempo: 130, Waveform: "sine"},
}

// StyleByName returns the named preset, falling back to the default.
func StyleByName(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	return styles[DefaultStyleName]
}

// StyleNames lists the available presets in a fixed order.
func StyleNames() []string {
	return []string{"melodic", "ambient", "synthwave", "chiptune", "jazz"}
}

type instrumentConfig struct {
	Waveform string
	Volume   float64
	Effects  []models.Effect
}

// instrumentConfigs is the fixed per-instrument mixing table attached to
// assembled tracks.
var instrumentConfigs = map[string]instrumentConfig{
	InstrumentMelody: {
		Waveform: "triangle",
		Volume:   0.8,
		Effects:  []models.Effect{{Kind: "reverb", Params: map[string]float64{"decay": 1.5, "wet": 0.3}}},
	},
	InstrumentBass: {
		Waveform: "sine",
		Volume:   0.7,
		Effects:  []models.Effect{{Kind: "lowpass", Params: map[string]float64{"frequency": 400}}},
	},
	InstrumentHarmony: {
		Waveform: "sine",
		Volume:   0.6,
		Effects:  []models.Effect{{Kind: "chorus", Params: map[string]float64{"frequency": 1.5, "depth": 0.4}}},
	},
	InstrumentPercussion: {
		Waveform: "square",
		Volume:   0.5,
	},
	InstrumentAmbient: {
		Waveform: "sine",
		Volume:   0.35,
		Effects:  []models.Effect{{Kind: "reverb", Params: map[string]float64{"decay": 4, "wet": 0.6}}},
	},
	InstrumentDissonance: {
		Waveform: "sawtooth",
		Volume:   0.45,
		Effects:  []models.Effect{{Kind: "distortion", Params: map[string]float64{"amount": 0.4}}},
	},
}

func configFor(instrument string) instrumentConfig {
	if cfg, ok := instrumentConfigs[instrument]; ok {
		return cfg
	}
	// Unknown instruments fall back to the ambient profile.
	return instrumentConfigs[InstrumentAmbient]
}
