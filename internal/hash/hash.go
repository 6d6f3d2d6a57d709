// Package hash fingerprints sample data with xxHash64.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Bytes computes the xxHash64 of data.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Floats computes the xxHash64 over the little-endian IEEE-754 bits of each
// column in order.
//
// Columns are length-prefixed, so ([a], [b]) and ([a, b], []) differ.
func Floats(columns ...[]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, col := range columns {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(col)))
		d.Write(buf[:]) //nolint: errcheck
		for _, v := range col {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			d.Write(buf[:]) //nolint: errcheck
		}
	}

	return d.Sum64()
}
