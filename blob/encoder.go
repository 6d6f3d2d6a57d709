package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/gaussfit/compress"
	"github.com/arloliu/gaussfit/endian"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/format"
	"github.com/arloliu/gaussfit/internal/hash"
	"github.com/arloliu/gaussfit/internal/options"
	"github.com/arloliu/gaussfit/internal/pool"
	"github.com/arloliu/gaussfit/sample"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	Compression format.CompressionType
	BigEndian   bool
}

// EncoderOption is a functional option for EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the payload compression.
func WithCompression(c format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if !c.IsValid() {
			return fmt.Errorf("%w: 0x%x", errs.ErrInvalidCompression, uint8(c))
		}
		cfg.Compression = c

		return nil
	})
}

// WithLittleEndian writes little-endian blobs. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.BigEndian = false
	})
}

// WithBigEndian writes big-endian blobs.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.BigEndian = true
	})
}

// Encoder turns sample sets into blobs. It is safe for concurrent use.
type Encoder struct {
	cfg    EncoderConfig
	codec  compress.Codec
	engine endian.EndianEngine
}

// NewEncoder creates an Encoder. Without options it writes uncompressed
// little-endian blobs.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := EncoderConfig{Compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		cfg:    cfg,
		codec:  codec,
		engine: endian.ForFlag(cfg.BigEndian),
	}, nil
}

// Config returns the encoder settings.
func (e *Encoder) Config() EncoderConfig {
	return e.cfg
}

// Encode serializes set into a new blob.
//
// Both columns of set must have the same length.
func (e *Encoder) Encode(set sample.Set) ([]byte, error) {
	if len(set.X) != len(set.Y) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", errs.ErrSampleLength, len(set.X), len(set.Y))
	}
	n := len(set.X)
	if n > MaxSamples {
		return nil, fmt.Errorf("%w: %d", errs.ErrTooManySamples, n)
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	buf.Grow(16 * n)
	for _, col := range [][]float64{set.X, set.Y} {
		for _, v := range col {
			buf.B = e.engine.AppendUint64(buf.B, math.Float64bits(v))
		}
	}
	raw := buf.Bytes()

	payload, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", e.cfg.Compression, err)
	}

	h := NewHeader(e.cfg.Compression)
	h.SetBigEndian(e.cfg.BigEndian)
	h.Count = uint32(n)
	h.RawLength = uint32(len(raw))
	h.PayloadLength = uint32(len(payload))
	h.Checksum = hash.Bytes(raw)

	out := make([]byte, 0, HeaderSize+len(payload))
	out = h.AppendTo(out)

	return append(out, payload...), nil
}
