package objectstore

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Shared coders are safe for concurrent EncodeAll and DecodeAll calls.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	decoder, _ = zstd.NewReader(nil)
)

// Encode packs samples as little-endian float32 and compresses them.
func Encode(samples []float64) []byte {
	raw := make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(float32(s)))
	}
	return encoder.EncodeAll(raw, nil)
}

// Decode reverses Encode.
func Decode(data []byte) ([]float64, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress waveform: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("waveform of %d bytes is not a float32 array", len(raw))
	}
	samples := make([]float64, len(raw)/4)
	for i := range samples {
		samples[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
	}
	return samples, nil
}
