// Package blob encodes sample sets into compact binary blobs.
//
// Calibration samples travel between the acquisition side and the fitting
// side as blobs. A blob is a fixed 32-byte header followed by one payload:
//
//	offset  size  field
//	0       2     options: bits 4-15 magic 0x5A4, bit 1 big-endian flag
//	2       1     format version
//	3       1     compression type (format.CompressionType)
//	4       4     sample count
//	8       4     stored payload length
//	12      4     raw payload length
//	16      8     xxHash64 of the raw payload
//	24      8     reserved, zero
//
// The options field is always little-endian; all other header fields and
// the payload use the byte order selected by the big-endian flag. The raw
// payload is the X column followed by the Y column, each value an IEEE-754
// float64.
//
// Encoding:
//
//	enc, err := blob.NewEncoder(blob.WithCompression(format.CompressionZstd))
//	data, err := enc.Encode(set)
//
// Decoding verifies the header, decompresses the payload and checks the
// checksum before any sample is returned:
//
//	set, header, err := blob.Decode(data)
package blob
