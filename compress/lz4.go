package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/format"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash
// table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type implements Codec.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses data into a single LZ4 block.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// lz4MaxRatio bounds how far a single LZ4 block can expand.
const lz4MaxRatio = 255

// Decompress decodes an LZ4 block into a buffer of exactly rawLen bytes.
//
// LZ4 blocks carry no length of their own, so the recorded raw length
// sizes the output buffer once it is plausible for the block size.
func (c LZ4Compressor) Decompress(data []byte, rawLen int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkLength("lz4", 0, rawLen)
	}
	if rawLen < 0 || rawLen > lz4MaxRatio*len(data) {
		return nil, fmt.Errorf("%w: lz4 block of %d bytes cannot expand to %d bytes",
			errs.ErrInvalidPayloadLength, len(data), rawLen)
	}

	buf := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if err := checkLength("lz4", n, rawLen); err != nil {
		return nil, err
	}

	return buf[:n], nil
}
