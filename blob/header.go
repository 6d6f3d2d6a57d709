package blob

import (
	"fmt"

	"github.com/arloliu/gaussfit/endian"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/format"
)

const (
	// HeaderSize is the fixed size of a blob header in bytes.
	HeaderSize = 32
	// Version is the current blob format version.
	Version uint8 = 1

	// MagicSampleV1Opt identifies sample blobs in bits 4-15 of the options.
	MagicSampleV1Opt uint16 = 0x5A40
	MagicNumberMask  uint16 = 0xFFF0
	EndiannessMask   uint16 = 0x0002

	// MaxSamples keeps the raw payload length within a uint32.
	MaxSamples = (1<<32 - 1) / 16
)

// Header is the fixed-size header at the start of a sample blob.
type Header struct {
	// Options packs the magic number and the endianness flag.
	Options uint16 // byte offset 0-1
	// Version is the blob format version.
	Version uint8 // byte offset 2
	// Compression is the payload compression.
	Compression format.CompressionType // byte offset 3
	// Count is the number of samples.
	Count uint32 // byte offset 4-7
	// PayloadLength is the length of the stored, possibly compressed, payload.
	PayloadLength uint32 // byte offset 8-11
	// RawLength is the payload length before compression, 16 bytes per sample.
	RawLength uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the raw payload.
	Checksum uint64 // byte offset 16-23
}

// NewHeader creates a little-endian header of the current version.
func NewHeader(compression format.CompressionType) Header {
	return Header{
		Options:     MagicSampleV1Opt,
		Version:     Version,
		Compression: compression,
	}
}

// IsBigEndian returns whether the blob is big-endian.
func (h Header) IsBigEndian() bool {
	return h.Options&EndiannessMask != 0
}

// SetBigEndian sets or clears the big-endian flag.
func (h *Header) SetBigEndian(big bool) {
	if big {
		h.Options |= EndiannessMask
	} else {
		h.Options &^= EndiannessMask
	}
}

// Engine returns the byte order engine of the blob.
func (h Header) Engine() endian.EndianEngine {
	return endian.ForFlag(h.IsBigEndian())
}

// MagicNumber returns the magic number bits of the options.
func (h Header) MagicNumber() uint16 {
	return h.Options & MagicNumberMask
}

// Validate checks the magic number, version, compression and lengths.
func (h Header) Validate() error {
	if h.MagicNumber() != MagicSampleV1Opt {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, h.MagicNumber())
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.IsValid() {
		return fmt.Errorf("%w: 0x%x", errs.ErrInvalidCompression, uint8(h.Compression))
	}
	if h.Count > MaxSamples {
		return fmt.Errorf("%w: %d", errs.ErrTooManySamples, h.Count)
	}
	if uint64(h.RawLength) != 16*uint64(h.Count) {
		return fmt.Errorf("%w: raw length %d for %d samples", errs.ErrInvalidPayloadLength, h.RawLength, h.Count)
	}

	return nil
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	// options are little-endian regardless of the payload byte order
	h.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])

	engine := h.Engine()
	h.Count = engine.Uint32(data[4:8])
	h.PayloadLength = engine.Uint32(data[8:12])
	h.RawLength = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return h.Validate()
}

// Bytes serializes the header into a new 32-byte slice.
func (h Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to b.
func (h Header) AppendTo(b []byte) []byte {
	engine := h.Engine()

	b = append(b, byte(h.Options), byte(h.Options>>8), h.Version, uint8(h.Compression))
	b = engine.AppendUint32(b, h.Count)
	b = engine.AppendUint32(b, h.PayloadLength)
	b = engine.AppendUint32(b, h.RawLength)
	b = engine.AppendUint64(b, h.Checksum)

	return append(b, 0, 0, 0, 0, 0, 0, 0, 0)
}

// ParseHeader parses the header at the start of data.
//
// Parameters:
//   - data: Byte slice starting with a header (at least 32 bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeaderSize or validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
