// Package format defines the identifiers stored in sample blob headers.
package format

import (
	"fmt"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var compressionNames = map[CompressionType]string{
	CompressionNone: "none",
	CompressionZstd: "zstd",
	CompressionS2:   "s2",
	CompressionLZ4:  "lz4",
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	_, ok := compressionNames[c]
	return ok
}

// ParseCompressionType parses a case-insensitive compression name such as
// "zstd" or "LZ4". An empty name selects CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CompressionNone, nil
	}
	for c, n := range compressionNames {
		if n == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	name, ok := compressionNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown compression type 0x%x", uint8(c))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	v, err := ParseCompressionType(string(text))
	if err != nil {
		return err
	}
	*c = v

	return nil
}
