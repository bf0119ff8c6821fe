// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bincodec

import (
	"encoding/binary"
	"errors"
)

// Frame is one length-prefixed block found by Walk.
type Frame struct {
	// Offset is the position of the length prefix in the walked
	// input.
	Offset int `json:"offset"`

	// Depth is 0 for top-level frames and increases by one for each
	// enclosing frame.
	Depth int `json:"depth"`

	// Length is the declared payload length; 0 for null frames.
	Length int `json:"length"`

	Null bool `json:"null,omitempty"`

	// Nested is true when the payload itself parses exactly as a
	// sequence of frames and Walk descended into it.
	Nested bool `json:"nested,omitempty"`

	// Payload aliases the walked input.
	Payload []byte `json:"-"`
}

// SkipChildren may be returned by a Walk visitor to stop Walk from
// descending into the visited frame.
var SkipChildren = errors.New("bincodec: skip children")

// Walk visits every frame in data, depth first, without knowing the
// types that produced it. data may hold several concatenated values.
//
// The binary form carries no type information, so nesting is a guess:
// a payload is treated as nested when it splits exactly into one or
// more complete frames. Short fixed-width payloads can satisfy that by
// accident (an int64 zero reads as two empty frames); payloads of
// fewer than PrefixSize bytes never do. Walk descends at most maxDepth
// levels; a negative maxDepth means no limit.
func Walk(data []byte, maxDepth int, visit func(Frame) error) error {
	decoder := decoder{origin: cap(data)}
	return decoder.walk(data, 0, maxDepth, visit)
}

// Frames collects the frames Walk visits.
func Frames(data []byte, maxDepth int) ([]Frame, error) {
	var frames []Frame
	err := Walk(data, maxDepth, func(frame Frame) error {
		frames = append(frames, frame)
		return nil
	})
	return frames, err
}

func (d *decoder) walk(data []byte, depth, maxDepth int, visit func(Frame) error) error {
	for len(data) > 0 {
		if len(data) < PrefixSize {
			return d.frameError(data, nil, "%d bytes left, need a %d-byte length prefix", len(data), PrefixSize)
		}
		frame := Frame{Offset: d.offset(data), Depth: depth}
		length := binary.LittleEndian.Uint32(data)
		if length == NullLength {
			frame.Null = true
			if err := visit(frame); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
			data = data[PrefixSize:]
			continue
		}
		if uint64(length) > uint64(len(data)-PrefixSize) {
			return d.frameError(data, nil, "declared length %d exceeds the %d bytes available", length, len(data)-PrefixSize)
		}
		frame.Length = int(length)
		frame.Payload = data[PrefixSize : PrefixSize+int(length)]
		frame.Nested = (maxDepth < 0 || depth < maxDepth) && isFrameSequence(frame.Payload)

		err := visit(frame)
		switch {
		case errors.Is(err, SkipChildren):
		case err != nil:
			return err
		case frame.Nested:
			if err := d.walk(frame.Payload, depth+1, maxDepth, visit); err != nil {
				return err
			}
		}
		data = data[PrefixSize+int(length):]
	}
	return nil
}

// isFrameSequence reports whether payload splits exactly into one or
// more complete frames.
func isFrameSequence(payload []byte) bool {
	if len(payload) < PrefixSize {
		return false
	}
	for len(payload) > 0 {
		if len(payload) < PrefixSize {
			return false
		}
		length := binary.LittleEndian.Uint32(payload)
		payload = payload[PrefixSize:]
		if length == NullLength {
			continue
		}
		if uint64(length) > uint64(len(payload)) {
			return false
		}
		payload = payload[length:]
	}
	return true
}
