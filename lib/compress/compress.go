// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies the compression applied to an envelope
// payload. Values are stored in the envelope header; changing them
// breaks existing envelopes.
type Algorithm uint8

const (
	// None stores the payload uncompressed.
	None Algorithm = 0

	// LZ4 is LZ4 block compression: fast, moderate ratio.
	LZ4 Algorithm = 1

	// Zstd is zstd at the default level: better ratio for text-like
	// and repetitive payloads.
	Zstd Algorithm = 2
)

// HeaderSize is the envelope overhead in bytes.
const HeaderSize = 5

// MaxSize is the largest uncompressed payload an envelope may carry.
const MaxSize = 1 << 30

// Upper bounds on uncompressed/compressed size per algorithm. An LZ4
// sequence byte extends a match by at most 255 bytes; a 4-byte zstd
// RLE block expands to at most one 128 KiB block.
const (
	maxLZ4Ratio  = 255
	maxZstdRatio = 128 << 10 / 4
)

var (
	// ErrUnknownAlgorithm is returned for an unrecognized algorithm
	// name or envelope tag.
	ErrUnknownAlgorithm = errors.New("compress: unknown algorithm")

	// ErrCorrupt is returned when an envelope is truncated or its
	// payload does not expand to the recorded size.
	ErrCorrupt = errors.New("compress: corrupt envelope")

	// errIncompressible means the compressed output was not smaller
	// than the input; Compress falls back to None.
	errIncompressible = errors.New("compress: data is incompressible")
)

// String returns the algorithm name accepted by ParseAlgorithm.
func (algorithm Algorithm) String() string {
	switch algorithm {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(algorithm))
	}
}

// ParseAlgorithm parses an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Compress wraps data in an envelope using algorithm, falling back to
// None when the algorithm does not shrink the data.
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	if len(data) > MaxSize {
		return nil, fmt.Errorf("compress: %d bytes exceeds the %d-byte envelope limit", len(data), MaxSize)
	}

	var payload []byte
	var err error
	switch algorithm {
	case None:
		payload = data
	case LZ4:
		payload, err = compressLZ4(data)
	case Zstd:
		payload, err = compressZstd(data)
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, uint8(algorithm))
	}
	if errors.Is(err, errIncompressible) {
		algorithm, payload, err = None, data, nil
	}
	if err != nil {
		return nil, err
	}

	envelope := make([]byte, HeaderSize, HeaderSize+len(payload))
	envelope[0] = byte(algorithm)
	binary.LittleEndian.PutUint32(envelope[1:], uint32(len(data)))
	return append(envelope, payload...), nil
}

// Decompress unwraps an envelope and verifies the uncompressed size.
// The recorded size is checked against MaxSize and against what the
// payload could expand to before anything is allocated. A None
// envelope returns a subslice of envelope.
func Decompress(envelope []byte) ([]byte, error) {
	algorithm, size, err := Header(envelope)
	if err != nil {
		return nil, err
	}
	payload := envelope[HeaderSize:]
	if size > MaxSize {
		return nil, fmt.Errorf("%w: header says %d bytes, limit is %d", ErrCorrupt, size, MaxSize)
	}

	switch algorithm {
	case None:
		if len(payload) != size {
			return nil, fmt.Errorf("%w: stored payload is %d bytes, header says %d", ErrCorrupt, len(payload), size)
		}
		return payload, nil
	case LZ4:
		return decompressLZ4(payload, size)
	case Zstd:
		return decompressZstd(payload, size)
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, uint8(algorithm))
	}
}

// Header returns the algorithm and uncompressed size recorded in an
// envelope without decompressing it.
func Header(envelope []byte) (Algorithm, int, error) {
	if len(envelope) < HeaderSize {
		return 0, 0, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(envelope))
	}
	return Algorithm(envelope[0]), int(binary.LittleEndian.Uint32(envelope[1:])), nil
}

// Select probes data with zstd and picks an algorithm by ratio: zstd
// at 1.5x or better, LZ4 at 1.1x or better, otherwise None.
func Select(data []byte) Algorithm {
	if len(data) == 0 {
		return None
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return Zstd
	case ratio >= 1.1:
		return LZ4
	default:
		return None
	}
}

// Auto compresses data with the algorithm Select picks and reports
// the algorithm actually stored in the envelope.
func Auto(data []byte) ([]byte, Algorithm, error) {
	envelope, err := Compress(data, Select(data))
	if err != nil {
		return nil, 0, err
	}
	return envelope, Algorithm(envelope[0]), nil
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	if size > len(compressed)*maxLZ4Ratio {
		return nil, fmt.Errorf("%w: %d lz4 bytes cannot expand to %d", ErrCorrupt, len(compressed), size)
	}
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
	}
	if read != size {
		return nil, fmt.Errorf("%w: lz4 produced %d bytes, header says %d", ErrCorrupt, read, size)
	}
	return destination, nil
}

// The zstd encoder and decoder are safe for concurrent use. The
// decoder stops at the capacity of the destination DecodeAll is given.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(MaxSize),
		zstd.WithDecodeAllCapLimit(true),
	)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

// decompressZstd decodes at most size bytes; a frame that expands
// further fails with zstd.ErrDecoderSizeExceeded.
func decompressZstd(compressed []byte, size int) ([]byte, error) {
	if size > len(compressed)*maxZstdRatio {
		return nil, fmt.Errorf("%w: %d zstd bytes cannot expand to %d", ErrCorrupt, len(compressed), size)
	}
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("%w: zstd produced %d bytes, header says %d", ErrCorrupt, len(result), size)
	}
	return result, nil
}
