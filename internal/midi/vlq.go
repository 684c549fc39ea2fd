package midi

// AppendVLQ appends v as a variable-length quantity: base-128 digits, most
// significant first, continuation bit set on every byte except the last.
// Negative values are treated as zero.
func AppendVLQ(dst []byte, v int) []byte {
	if v <= 0 {
		return append(dst, 0x00)
	}

	var stack [5]byte
	n := 0
	for v > 0 {
		stack[n] = byte(v & 0x7F)
		v >>= 7
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b := stack[i]
		if i > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// EncodeVLQ returns the variable-length encoding of v.
func EncodeVLQ(v int) []byte {
	return AppendVLQ(nil, v)
}

// DecodeVLQ reads one variable-length quantity from data, returning the
// value and the number of bytes consumed (0 if data is truncated).
func DecodeVLQ(data []byte) (value, n int) {
	for i, b := range data {
		value = (value << 7) | int(b&0x7F)
		if b&0x80 == 0 {
			return value, i + 1
		}
	}
	return 0, 0
}
