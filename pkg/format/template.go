package format

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Template is the reference current of a variable speed motor, one
// waveform per phase.
type Template struct {
	U []float64 `json:"template_u"`
	V []float64 `json:"template_v"`
	W []float64 `json:"template_w"`
}

// DecodeTemplate splits a little-endian float64 array of shape 3×N into
// its phases. An empty input yields empty phases.
func DecodeTemplate(b []byte) (Template, error) {
	if len(b)%(8*3) != 0 {
		return Template{}, fmt.Errorf("%w: template of %d bytes is not 3 float64 rows", ErrArgument, len(b))
	}
	n := len(b) / 8 / 3
	values := make([]float64, 3*n)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return Template{U: values[:n:n], V: values[n : 2*n : 2*n], W: values[2*n:]}, nil
}

// EncodeTemplate is the inverse of DecodeTemplate. The phases must have
// equal lengths.
func EncodeTemplate(t Template) ([]byte, error) {
	n := len(t.U)
	if len(t.V) != n || len(t.W) != n {
		return nil, fmt.Errorf("%w: template phases differ in length", ErrArgument)
	}
	b := make([]byte, 0, 3*n*8)
	for _, phase := range [][]float64{t.U, t.V, t.W} {
		for _, v := range phase {
			b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
		}
	}
	return b, nil
}
