// Package glyph maps luminance samples onto characters.
package glyph

// Ramp lists the output characters from darkest to lightest.
//
// Quantize divides by 32, so only the first eight entries are ever indexed.
// The trailing '.' and ' ' are kept for their position in the ramp; pure
// white reaches the space through its own rule.
const Ramp = "@%#*+=-:. "

const white = 255

func Quantize(v uint8) byte {
	if v == white {
		return ' '
	}
	return Ramp[v/32]
}

// QuantizeRow appends the characters for row to dst.
func QuantizeRow(dst []byte, row []uint8) []byte {
	for _, v := range row {
		dst = append(dst, Quantize(v))
	}
	return dst
}
