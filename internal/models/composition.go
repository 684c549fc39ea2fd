package models

// Note is a single musical event. Pitch is a note name with octave
// (e.g. "C4", "F#3"); Duration is a symbolic duration class ("16n", "8n",
// "4n", "2n", "1n", dotted variants with a trailing dot). Velocity is
// normalized to (0,1]; StartTime is in seconds from composition start.
type Note struct {
	Pitch      string  `json:"pitch"`
	Duration   string  `json:"duration"`
	Velocity   float64 `json:"velocity"`
	StartTime  float64 `json:"startTime"`
	Instrument string  `json:"instrument"`
}

// Effect is one entry of a track's effect chain.
type Effect struct {
	Kind   string             `json:"kind"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Track groups the notes of exactly one instrument, in insertion order.
type Track struct {
	Name       string   `json:"name"`
	Instrument string   `json:"instrument"`
	Waveform   string   `json:"waveform"`
	Volume     float64  `json:"volume"`
	Notes      []Note   `json:"notes"`
	Effects    []Effect `json:"effects,omitempty"`
}

// TimeSignature is a simple numerator/denominator pair.
type TimeSignature struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// CompositionMetadata carries descriptive information about the source the
// composition was generated from. It is not consumed by the MIDI encoder.
type CompositionMetadata struct {
	SourceLanguage string `json:"sourceLanguage"`
	LineCount      int    `json:"lineCount"`
	Complexity     int    `json:"complexity"`
	ContentHash    string `json:"contentHash"`
	Interpretation string `json:"interpretation"`
}

// Composition is the assembled musical result of one sonification request.
// It is immutable after construction and is the sole input to the encoder.
type Composition struct {
	Title         string              `json:"title"`
	Tempo         int                 `json:"tempo"` // BPM
	TimeSignature TimeSignature       `json:"timeSignature"`
	Key           string              `json:"key"`
	Scale         string              `json:"scale"`
	Duration      float64             `json:"duration"` // seconds
	Tracks        []Track             `json:"tracks"`
	Metadata      CompositionMetadata `json:"metadata"`
}

// NoteCount returns the total number of notes across all tracks.
func (c *Composition) NoteCount() int {
	total := 0
	for _, tr := range c.Tracks {
		total += len(tr.Notes)
	}
	return total
}
