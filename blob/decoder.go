package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/gaussfit/compress"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/internal/hash"
	"github.com/arloliu/gaussfit/sample"
)

// Decode parses a blob produced by Encoder.Encode.
//
// The returned set owns freshly allocated columns. Trailing bytes after the
// payload are rejected.
func Decode(data []byte) (sample.Set, Header, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return sample.Set{}, Header{}, err
	}

	body := data[HeaderSize:]
	if uint64(len(body)) != uint64(h.PayloadLength) {
		return sample.Set{}, Header{}, fmt.Errorf("%w: header says %d bytes, blob holds %d",
			errs.ErrInvalidPayloadLength, h.PayloadLength, len(body))
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return sample.Set{}, Header{}, err
	}

	raw, err := codec.Decompress(body, int(h.RawLength))
	if err != nil {
		return sample.Set{}, Header{}, fmt.Errorf("decompress %s payload: %w", h.Compression, err)
	}

	if sum := hash.Bytes(raw); sum != h.Checksum {
		return sample.Set{}, Header{}, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	n := int(h.Count)
	engine := h.Engine()
	set := sample.Set{X: make([]float64, n), Y: make([]float64, n)}
	for i := range n {
		set.X[i] = math.Float64frombits(engine.Uint64(raw[8*i:]))
		set.Y[i] = math.Float64frombits(engine.Uint64(raw[8*(n+i):]))
	}

	return set, h, nil
}
