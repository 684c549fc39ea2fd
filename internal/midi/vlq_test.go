package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVLQ(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		expected []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"single byte maximum", 127, []byte{0x7F}},
		{"first two byte value", 128, []byte{0x81, 0x00}},
		{"quarter note at 480 ticks", 480, []byte{0x83, 0x60}},
		{"two byte maximum", 16383, []byte{0xFF, 0x7F}},
		{"first three byte value", 16384, []byte{0x81, 0x80, 0x00}},
		{"negative treated as zero", -42, []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeVLQ(tt.value))
		})
	}
}

func TestDecodeVLQ_RoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 127, 128, 480, 16383, 16384, 2097151, 0x0FFFFFFF} {
		encoded := EncodeVLQ(v)
		decoded, n := DecodeVLQ(encoded)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), n)
	}
}

func TestDecodeVLQ_Truncated(t *testing.T) {
	// Continuation bit set but no terminating byte follows.
	_, n := DecodeVLQ([]byte{0x83})
	assert.Equal(t, 0, n)
}

func TestAppendVLQ_AppendsInPlace(t *testing.T) {
	out := AppendVLQ([]byte{0xAA}, 480)
	require.Equal(t, []byte{0xAA, 0x83, 0x60}, out)
}
