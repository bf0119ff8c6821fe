// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"testing"
)

func TestAlgorithmString(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		algorithm, err := ParseAlgorithm(name)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", name, err)
		}
		if algorithm.String() != name {
			t.Errorf("ParseAlgorithm(%q).String() = %q", name, algorithm.String())
		}
	}
	if _, err := ParseAlgorithm("gzip"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("ParseAlgorithm(gzip) error = %v, want ErrUnknownAlgorithm", err)
	}
	if got := Algorithm(9).String(); got != "unknown(9)" {
		t.Errorf("Algorithm(9).String() = %q", got)
	}
}

func TestRoundtrip(t *testing.T) {
	data := []byte(strings.Repeat("Title: \"Inventory\"\n\tWidth: 640\n", 64))
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		t.Run(algorithm.String(), func(t *testing.T) {
			envelope, err := Compress(data, algorithm)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if Algorithm(envelope[0]) != algorithm {
				t.Errorf("tag = %d, want %d", envelope[0], algorithm)
			}
			if algorithm != None && len(envelope) >= len(data) {
				t.Errorf("envelope is %d bytes for %d input bytes", len(envelope), len(data))
			}
			restored, err := Decompress(envelope)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(restored, data) {
				t.Error("roundtrip mismatch")
			}
		})
	}
}

func TestHeaderLayout(t *testing.T) {
	envelope, err := Compress([]byte{0x04, 0x00, 0x00, 0x00}, None)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	want := []byte{0x00, 0x04, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00}
	if !bytes.Equal(envelope, want) {
		t.Errorf("envelope = % x, want % x", envelope, want)
	}
	algorithm, size, err := Header(envelope)
	if err != nil || algorithm != None || size != 4 {
		t.Errorf("Header = %v, %d, %v", algorithm, size, err)
	}
}

func TestIncompressibleFallsBack(t *testing.T) {
	data := make([]byte, 4096)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	for _, algorithm := range []Algorithm{LZ4, Zstd} {
		envelope, err := Compress(data, algorithm)
		if err != nil {
			t.Fatalf("Compress(%v): %v", algorithm, err)
		}
		if Algorithm(envelope[0]) != None {
			t.Errorf("%v: random data stored with tag %d, want none", algorithm, envelope[0])
		}
		if len(envelope) != len(data)+HeaderSize {
			t.Errorf("%v: envelope is %d bytes", algorithm, len(envelope))
		}
	}
}

func TestAuto(t *testing.T) {
	repetitive := bytes.Repeat([]byte{0x04, 0x00, 0x00, 0x00, 0x2a, 0x00, 0x00, 0x00}, 512)
	envelope, algorithm, err := Auto(repetitive)
	if err != nil {
		t.Fatalf("Auto: %v", err)
	}
	if algorithm != Zstd {
		t.Errorf("Auto picked %v for repetitive data, want zstd", algorithm)
	}
	restored, err := Decompress(envelope)
	if err != nil || !bytes.Equal(restored, repetitive) {
		t.Errorf("Decompress after Auto: %v", err)
	}

	if Select(nil) != None {
		t.Error("Select(nil) should be none")
	}
}

func TestDecompressErrors(t *testing.T) {
	tests := []struct {
		name     string
		envelope []byte
		want     error
	}{
		{"short header", []byte{0x00, 0x01}, ErrCorrupt},
		{"size mismatch", []byte{0x00, 0x05, 0x00, 0x00, 0x00, 0xaa}, ErrCorrupt},
		{"unknown tag", []byte{0x07, 0x00, 0x00, 0x00, 0x00}, ErrUnknownAlgorithm},
		{"bad lz4", []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0xff, 0xff}, ErrCorrupt},
		{"bad zstd", []byte{0x02, 0x10, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03}, ErrCorrupt},
		{"lz4 claims 4 GiB", []byte{0x01, 0xff, 0xff, 0xff, 0xff}, ErrCorrupt},
		{"zstd claims 4 GiB", []byte{0x02, 0xff, 0xff, 0xff, 0xff}, ErrCorrupt},
		{"none claims 4 GiB", []byte{0x00, 0xff, 0xff, 0xff, 0xff}, ErrCorrupt},
		{"lz4 past ratio", []byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x1f, 0x61}, ErrCorrupt},
		{"zstd past ratio", []byte{0x02, 0x00, 0x00, 0x10, 0x00, 0x28, 0xb5, 0x2f, 0xfd}, ErrCorrupt},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decompress(test.envelope)
			if !errors.Is(err, test.want) {
				t.Errorf("Decompress error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestDecompressSizeBounds(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 4096)
	for _, algorithm := range []Algorithm{LZ4, Zstd} {
		t.Run(algorithm.String(), func(t *testing.T) {
			envelope, err := Compress(data, algorithm)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if Algorithm(envelope[0]) != algorithm {
				t.Fatalf("stored as %v, want %v", Algorithm(envelope[0]), algorithm)
			}
			restored, err := Decompress(envelope)
			if err != nil || !bytes.Equal(restored, data) {
				t.Fatalf("Decompress = %d bytes, %v", len(restored), err)
			}

			// A header that understates the size must not let the
			// payload expand past it.
			short := bytes.Clone(envelope)
			short[1] = 0x00
			short[2] = 0x08
			if _, err := Decompress(short); !errors.Is(err, ErrCorrupt) {
				t.Errorf("understated size error = %v, want ErrCorrupt", err)
			}
		})
	}
}
