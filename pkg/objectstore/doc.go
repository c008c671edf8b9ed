// Package objectstore reads and writes raw current waveforms kept in
// S3-compatible object storage.
//
// Waveforms are little-endian float32 arrays compressed with zstd. Keys
// follow the layout
//
//	/{line}/{equipment}/{motor}/{YYYY}/{MM}/{DD}/{HHMMSS}_{phase}.zst
//
// see [Key] and [ParseRawPath].
package objectstore
