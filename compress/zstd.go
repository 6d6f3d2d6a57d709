package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/format"
)

// ZstdCompressor provides Zstandard compression.
//
// The implementation is chosen at build time: zstd_cgo.go binds libzstd
// through gozstd, zstd_pure.go uses the pure Go encoder of
// klauspost/compress.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type implements Codec.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}

// zstdCapacity reads the frame header of data and returns the output
// capacity to reserve for a payload of rawLen bytes.
//
// Frames that record their content size must match rawLen exactly; frames
// without it get no reservation and grow while decoding.
func zstdCapacity(data []byte, rawLen int) (int, error) {
	var fh zstd.Header
	if err := fh.Decode(data); err != nil {
		return 0, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if !fh.HasFCS {
		return 0, nil
	}
	if rawLen < 0 || fh.FrameContentSize != uint64(rawLen) {
		return 0, fmt.Errorf("%w: zstd frame holds %d bytes, expected %d",
			errs.ErrInvalidPayloadLength, fh.FrameContentSize, rawLen)
	}

	return rawLen, nil
}
