// Package compress provides the payload codecs of sample blobs.
//
// A sample blob stores its X and Y columns as one float64 payload that is
// compressed with one of the supported algorithms:
//   - None: payload stored as is
//   - Zstd: best ratio, moderate speed
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Float columns of measured data rarely compress well, but sample sets taken
// on a regular grid (equidistant X values, quantized Y values) shrink
// noticeably under Zstd.
//
// The blob header records the uncompressed payload length, so every
// Decompress call receives the exact output size and rejects payloads that
// decode to any other length.
//
// Zstd is implemented with github.com/valyala/gozstd when cgo is available
// and with github.com/klauspost/compress/zstd otherwise. Both produce
// standard zstd frames, so blobs written by one build decode with the other.
//
// All codecs are stateless values and safe for concurrent use.
package compress
