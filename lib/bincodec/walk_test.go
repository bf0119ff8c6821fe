// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bincodec

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/graphcodec/lib/testutil"
)

func TestFrames(t *testing.T) {
	type labelled struct {
		Label  string
		Values []int16
		Next   *labelled
	}
	encoded, err := Marshal(labelled{Label: "ab", Values: []int16{1, 2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	frames, err := Frames(encoded, -1)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	type shape struct {
		offset, depth, length int
		null, nested          bool
	}
	want := []shape{
		{0, 0, 26, false, true},  // record
		{4, 1, 2, false, false},  // Label
		{10, 1, 12, false, true}, // Values
		{14, 2, 2, false, false}, // 1
		{20, 2, 2, false, false}, // 2
		{26, 1, 0, true, false},  // Next
	}
	if len(frames) != len(want) {
		t.Fatalf("Frames returned %d frames, want %d: %+v", len(frames), len(want), frames)
	}
	for i, frame := range frames {
		got := shape{frame.Offset, frame.Depth, frame.Length, frame.Null, frame.Nested}
		if got != want[i] {
			t.Errorf("frame %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestFramesDepthLimit(t *testing.T) {
	encoded, err := Marshal([][]uint8{{1}, {2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	frames, err := Frames(encoded, 1)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	for _, frame := range frames {
		if frame.Depth > 1 {
			t.Errorf("frame at depth %d with maxDepth 1", frame.Depth)
		}
	}
	if len(frames) != 3 {
		t.Errorf("Frames returned %d frames, want 3", len(frames))
	}
}

func TestWalkConcatenatedAndTruncated(t *testing.T) {
	frames, err := Frames(testutil.Hex(t, "01 00 00 00 07 ff ff ff 7f"), -1)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 2 || !frames[1].Null || frames[1].Offset != 5 {
		t.Errorf("frames = %+v", frames)
	}

	_, err = Frames(testutil.Hex(t, "01 00 00 00 07 09 00"), -1)
	var frameError *FrameError
	if !errors.As(err, &frameError) || frameError.Offset != 5 {
		t.Errorf("truncated walk error = %v", err)
	}
}

func TestWalkSkipChildren(t *testing.T) {
	encoded, err := Marshal([][]uint8{{1}, {2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	visited := 0
	err = Walk(encoded, -1, func(frame Frame) error {
		visited++
		if frame.Depth == 0 {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if visited != 1 {
		t.Errorf("visited %d frames, want 1", visited)
	}
}
