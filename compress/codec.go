package compress

import (
	"fmt"

	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/format"
)

// Compressor compresses sample payloads.
type Compressor interface {
	// Compress compresses data, returning nil when data is empty. The input
	// slice is not modified, but the result may share memory with it: the
	// no-op codec returns data itself. Callers that reuse data afterwards
	// must copy the result first.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores sample payloads.
type Decompressor interface {
	// Decompress restores a payload compressed by the matching Compressor.
	//
	// rawLen is the uncompressed length recorded by the writer. A payload
	// that decodes to a different length is reported as corrupted.
	Decompress(data []byte, rawLen int) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the header identifier of the algorithm.
	Type() format.CompressionType
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%x)", errs.ErrInvalidCompression, compressionType, uint8(compressionType))
}

// checkLength verifies the decoded size against the recorded one.
func checkLength(algo string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s payload decoded to %d bytes, expected %d",
			errs.ErrInvalidPayloadLength, algo, got, want)
	}

	return nil
}
