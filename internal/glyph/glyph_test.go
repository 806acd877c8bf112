package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantizeBands(t *testing.T) {
	for k := 0; k < 8; k++ {
		for v := 32 * k; v < 32*(k+1) && v < 255; v++ {
			assert.Equal(t, Ramp[k], Quantize(uint8(v)), "luminance %d", v)
		}
	}
}

func TestQuantizeWhite(t *testing.T) {
	assert.Equal(t, byte(' '), Quantize(255))
	assert.Equal(t, byte(':'), Quantize(254))
}

func TestQuantizeMonotonic(t *testing.T) {
	prev := 0
	for v := 0; v < 255; v++ {
		idx := indexOf(Quantize(uint8(v)))
		assert.GreaterOrEqual(t, idx, prev)
		prev = idx
	}
}

func TestQuantizeRow(t *testing.T) {
	got := QuantizeRow([]byte("> "), []uint8{0, 31, 32, 128, 255})
	assert.Equal(t, "> @@%+ ", string(got))
}

func indexOf(c byte) int {
	for i := 0; i < len(Ramp); i++ {
		if Ramp[i] == c {
			return i
		}
	}
	return -1
}
