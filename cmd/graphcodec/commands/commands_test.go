// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/graphcodec/cmd/graphcodec/cli"
	"github.com/bureau-foundation/graphcodec/lib/bincodec"
	"github.com/bureau-foundation/graphcodec/lib/compress"
	"github.com/bureau-foundation/graphcodec/lib/config"
	"github.com/bureau-foundation/graphcodec/lib/testutil"
)

const boxType = "struct{ Name string; Size []int32 }"

// isolate keeps the developer's config file out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
}

func TestEncodeDecodeJSON(t *testing.T) {
	isolate(t)

	input := `{
		// trailing commas and comments are accepted
		"Name": "box",
		"Size": [3, 4],
	}`
	var encoded bytes.Buffer
	err := runEncode(&encodeParams{Type: boxType, From: "json"}, nil, strings.NewReader(input), &encoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded bytes.Buffer
	err = runDecode(&decodeParams{Type: boxType, To: "json", Color: "never"}, nil, bytes.NewReader(encoded.Bytes()), &decoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var box struct {
		Name string
		Size []int32
	}
	if err := json.Unmarshal(decoded.Bytes(), &box); err != nil {
		t.Fatalf("decode output is not JSON: %v\n%s", err, decoded.String())
	}
	if box.Name != "box" || len(box.Size) != 2 || box.Size[0] != 3 || box.Size[1] != 4 {
		t.Errorf("decoded %+v", box)
	}
}

func TestEncodeTextAsHex(t *testing.T) {
	isolate(t)

	var output bytes.Buffer
	err := runEncode(&encodeParams{Type: "int32", From: "text", Hex: true}, nil, strings.NewReader("value: 260\n"), &output)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if output.String() != "0400000004010000\n" {
		t.Errorf("output = %q, want the hex of int32 260", output.String())
	}
}

func TestEncodeYAMLAndCBOR(t *testing.T) {
	isolate(t)

	var fromYAML bytes.Buffer
	err := runEncode(&encodeParams{Type: "map[int32]string", From: "yaml"}, nil, strings.NewReader("1: one\n2: two\n"), &fromYAML)
	if err != nil {
		t.Fatalf("encode yaml: %v", err)
	}

	var cbor bytes.Buffer
	err = runDecode(&decodeParams{Type: "map[int32]string", To: "cbor"}, nil, bytes.NewReader(fromYAML.Bytes()), &cbor)
	if err != nil {
		t.Fatalf("decode to cbor: %v", err)
	}

	var fromCBOR bytes.Buffer
	err = runEncode(&encodeParams{Type: "map[int32]string", From: "cbor"}, nil, bytes.NewReader(cbor.Bytes()), &fromCBOR)
	if err != nil {
		t.Fatalf("encode cbor: %v", err)
	}
	testutil.RequireBytes(t, fromCBOR.Bytes(), fromYAML.Bytes(), "CBOR roundtrip")
}

func TestEncodeCBORSingleItem(t *testing.T) {
	isolate(t)

	item := []byte{0x19, 0x01, 0x04} // unsigned 260
	var output bytes.Buffer
	params := encodeParams{CommonParams: CommonParams{Verbose: true}, Type: "int32", From: "cbor", Hex: true}
	if err := runEncode(&params, nil, bytes.NewReader(item), &output); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if output.String() != "0400000004010000\n" {
		t.Errorf("output = %q", output.String())
	}

	trailing := append(bytes.Clone(item), 0x01)
	err := runEncode(&encodeParams{Type: "int32", From: "cbor"}, nil, bytes.NewReader(trailing), &bytes.Buffer{})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("trailing item error = %v, want validation", err)
	}
}

func TestDecodeFileAsText(t *testing.T) {
	isolate(t)

	path := testutil.WriteFile(t, "int32-", testutil.Hex(t, "04 00 00 00 04 01 00 00"))
	var output bytes.Buffer
	if err := runDecode(&decodeParams{Type: "int32"}, []string{path}, nil, &output); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.String() != "value: 260\n" {
		t.Errorf("output = %q, want %q", output.String(), "value: 260\n")
	}
}

func TestDecodeErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		params   decodeParams
		input    string
		category cli.ErrorCategory
	}{
		{"missing type", decodeParams{Hex: true}, "04000000", cli.CategoryValidation},
		{"unknown alias", decodeParams{Type: "Widget", Hex: true}, "04000000", cli.CategoryNotFound},
		{"bad hex", decodeParams{Type: "int32", Hex: true}, "zz", cli.CategoryValidation},
		{"truncated", decodeParams{Type: "int32", Hex: true}, "0400", cli.CategoryValidation},
		{"bad format", decodeParams{Type: "int32", Hex: true, To: "xml"}, "0400000004010000", cli.CategoryValidation},
		{"bad color", decodeParams{Type: "int32", Hex: true, Color: "sometimes"}, "0400000004010000", cli.CategoryValidation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := runDecode(&test.params, nil, strings.NewReader(test.input), &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := cli.CategoryOf(err); got != test.category {
				t.Errorf("category = %q, want %q (error: %v)", got, test.category, err)
			}
		})
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	isolate(t)

	err := runDecode(&decodeParams{Type: "int32", Hex: true}, nil, strings.NewReader("04000000 04010000 ff"), &bytes.Buffer{})
	if !errors.Is(err, bincodec.ErrTrailingBytes) {
		t.Errorf("error = %v, want ErrTrailingBytes", err)
	}
}

func TestCompressedRoundtrip(t *testing.T) {
	isolate(t)

	input := `["alpha", "alpha", "alpha", "alpha", "alpha", "alpha", "alpha", "alpha"]`
	var encoded bytes.Buffer
	err := runEncode(&encodeParams{Type: "[]string", From: "json", Compress: "zstd", Hex: true}, nil, strings.NewReader(input), &encoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded bytes.Buffer
	err = runDecode(&decodeParams{Type: "[]string", To: "yaml", Hex: true, Compressed: true, Color: "never"}, nil, &encoded, &decoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Count(decoded.String(), "- alpha") != 8 {
		t.Errorf("YAML output = %q, want eight alpha items", decoded.String())
	}
}

// A stored (None) envelope read from a mapped file must outlive the
// mapping once readBinary returns.
func TestDecodeCompressedFile(t *testing.T) {
	isolate(t)

	envelope, err := compress.Compress(testutil.Hex(t, "04 00 00 00 04 01 00 00"), compress.None)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	path := testutil.WriteFile(t, "envelope-", envelope)

	var output bytes.Buffer
	err = runDecode(&decodeParams{Type: "int32", Compressed: true, Color: "never"}, []string{path}, nil, &output)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.String() != "value: 260\n" {
		t.Errorf("output = %q, want %q", output.String(), "value: 260\n")
	}

	var frames bytes.Buffer
	if err := runFrames(&framesParams{Compressed: true, Depth: -1}, []string{path}, nil, &frames); err != nil {
		t.Fatalf("frames: %v", err)
	}
	if frames.Len() == 0 {
		t.Error("frames printed nothing")
	}

	payload, err := readBinary([]string{path}, nil, false, true)
	if err != nil {
		t.Fatalf("readBinary: %v", err)
	}
	testutil.RequireBytes(t, payload, testutil.Hex(t, "04 00 00 00 04 01 00 00"), "stored payload after release")
}

func TestDecodeCompressedOversizedHeader(t *testing.T) {
	isolate(t)

	path := testutil.WriteFile(t, "oversized-", []byte{0x01, 0xff, 0xff, 0xff, 0xff})
	err := runDecode(&decodeParams{Type: "int32", Compressed: true}, []string{path}, nil, &bytes.Buffer{})
	if cli.CategoryOf(err) != cli.CategoryValidation || !errors.Is(err, compress.ErrCorrupt) {
		t.Errorf("error = %v, want a validation error wrapping ErrCorrupt", err)
	}
}

func TestConfigAliasesAndDefaults(t *testing.T) {
	isolate(t)

	path := testutil.WriteFile(t, "config-", []byte(`
decode:
  format: json
  color: never
types:
  Point: "struct{ X int32; Y int32 }"
  Path: "[]Point"
`))
	var encoded bytes.Buffer
	err := runEncode(&encodeParams{CommonParams: CommonParams{ConfigPath: path}, Type: "Path", From: "json"},
		nil, strings.NewReader(`[{"X": 1, "Y": 2}]`), &encoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded bytes.Buffer
	err = runDecode(&decodeParams{CommonParams: CommonParams{ConfigPath: path}, Type: "Path"},
		nil, &encoded, &decoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var points []map[string]int
	if err := json.Unmarshal(decoded.Bytes(), &points); err != nil {
		t.Fatalf("config format json not applied: %v\n%s", err, decoded.String())
	}
	if len(points) != 1 || points[0]["X"] != 1 || points[0]["Y"] != 2 {
		t.Errorf("points = %v", points)
	}
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)

	path := testutil.WriteFile(t, "config-", []byte("decode:\n  format: xml\n"))
	err := runSchema(&schemaParams{CommonParams: CommonParams{ConfigPath: path}, Type: "int32"}, &bytes.Buffer{})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("error = %v, want a validation error", err)
	}

	err = runSchema(&schemaParams{CommonParams: CommonParams{ConfigPath: path + ".missing"}, Type: "int32"}, &bytes.Buffer{})
	if cli.CategoryOf(err) != cli.CategoryNotFound {
		t.Errorf("error = %v, want a not-found error", err)
	}
}

func TestSchemaText(t *testing.T) {
	isolate(t)

	var output bytes.Buffer
	err := runSchema(&schemaParams{Type: "struct{ Title string `comment:\"shown first\"`; Size (int32, int32) }", Color: "never"}, &output)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	text := output.String()
	for _, want := range []string{"Kind:", "record", "Fingerprint:", "PATH", "Title", "shown first", "Size"} {
		if !strings.Contains(text, want) {
			t.Errorf("schema output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "\x1b[") {
		t.Errorf("color never should not emit escape sequences:\n%q", text)
	}
}

func TestSchemaJSONAndFilter(t *testing.T) {
	isolate(t)

	params := schemaParams{Type: "struct{ Width int32; Height int32; Title string }", Filter: "WD"}
	params.OutputJSON = true
	var output bytes.Buffer
	if err := runSchema(&params, &output); err != nil {
		t.Fatalf("schema: %v", err)
	}

	var result schemaResult
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if result.Kind != "record" || len(result.Fingerprint) != 64 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Fields) != 1 || result.Fields[0].Path != "Width" {
		t.Errorf("filtered fields = %+v, want only Width", result.Fields)
	}
}

func TestFramesText(t *testing.T) {
	isolate(t)

	tests := []struct {
		input string
		want  string
	}{
		{"04000000 04010000", "00000000  4 bytes  04010000\n"},
		{"ffffff7f", "00000000  null\n"},
		{"03000000 616263", "00000000  3 bytes  \"abc\"\n"},
		{"00000000", "00000000  0 bytes\n"},
	}
	for _, test := range tests {
		var output bytes.Buffer
		err := runFrames(&framesParams{Hex: true, Depth: -1, Width: 48, Color: "never"}, nil, strings.NewReader(test.input), &output)
		if err != nil {
			t.Fatalf("frames %s: %v", test.input, err)
		}
		if output.String() != test.want {
			t.Errorf("frames %s = %q, want %q", test.input, output.String(), test.want)
		}
	}
}

func TestFramesJSON(t *testing.T) {
	isolate(t)

	params := framesParams{Hex: true, Depth: -1}
	params.OutputJSON = true
	var output bytes.Buffer
	err := runFrames(&params, nil, strings.NewReader("ffffff7f 02000000 0102"), &output)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}

	var rows []struct {
		Offset int    `json:"offset"`
		Null   bool   `json:"null"`
		Hex    string `json:"hex"`
	}
	if err := json.Unmarshal(output.Bytes(), &rows); err != nil {
		t.Fatalf("frames output is not JSON: %v", err)
	}
	if len(rows) != 2 || !rows[0].Null || rows[1].Offset != 4 || rows[1].Hex != "0102" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFramesMalformed(t *testing.T) {
	isolate(t)

	err := runFrames(&framesParams{Hex: true, Depth: -1}, nil, strings.NewReader("09000000 01"), &bytes.Buffer{})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("error = %v, want a validation error", err)
	}
}

func TestPreviewTruncates(t *testing.T) {
	got := preview(make([]byte, 40), 10)
	if ansi.StringWidth(got) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("preview = %q, want 10 columns ending in an ellipsis", got)
	}
	if got := preview([]byte("hi"), 0); got != `"hi"` {
		t.Errorf("preview(hi) = %q", got)
	}
}

func TestCompressDecompress(t *testing.T) {
	isolate(t)

	data := bytes.Repeat([]byte("graphcodec "), 64)
	var envelope bytes.Buffer
	if err := runCompress(&compressParams{Algorithm: "lz4"}, nil, bytes.NewReader(data), &envelope); err != nil {
		t.Fatalf("compress: %v", err)
	}

	var header bytes.Buffer
	err := runDecompress(&decompressParams{Header: true}, nil, bytes.NewReader(envelope.Bytes()), &header)
	if err != nil {
		t.Fatalf("decompress --header: %v", err)
	}
	if !strings.HasPrefix(header.String(), "algorithm: lz4\nsize: 704\n") {
		t.Errorf("header = %q", header.String())
	}

	var restored bytes.Buffer
	if err := runDecompress(&decompressParams{}, nil, &envelope, &restored); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	testutil.RequireBytes(t, restored.Bytes(), data, "decompressed payload")
}

func TestCompressAutoAndNone(t *testing.T) {
	isolate(t)

	var none bytes.Buffer
	if err := runCompress(&compressParams{Algorithm: "none", Hex: true}, nil, strings.NewReader("ab"), &none); err != nil {
		t.Fatalf("compress none: %v", err)
	}
	if none.String() != "00"+"02000000"+hex.EncodeToString([]byte("ab"))+"\n" {
		t.Errorf("none envelope = %q", none.String())
	}

	err := runCompress(&compressParams{Algorithm: "brotli"}, nil, strings.NewReader("ab"), &bytes.Buffer{})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("unknown algorithm error = %v, want validation", err)
	}
}

func TestReadInput(t *testing.T) {
	empty := testutil.WriteFile(t, "empty-", nil)
	data, release, err := readInput([]string{empty}, nil)
	if err != nil {
		t.Fatalf("readInput(empty): %v", err)
	}
	release()
	if len(data) != 0 {
		t.Errorf("empty file read %d bytes", len(data))
	}

	missing := filepath.Join(t.TempDir(), testutil.UniqueID("missing"))
	if _, _, err := readInput([]string{missing}, nil); cli.CategoryOf(err) != cli.CategoryNotFound {
		t.Errorf("missing file error = %v, want not found", err)
	}
	if _, _, err := readInput([]string{"a", "b"}, nil); cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("two files error = %v, want validation", err)
	}
}

func TestColorProfile(t *testing.T) {
	var buffer bytes.Buffer
	if colorProfile(&buffer, config.ColorNever) != termenv.Ascii {
		t.Error("never should disable color")
	}
	if colorProfile(&buffer, config.ColorAuto) != termenv.Ascii {
		t.Error("auto should disable color for a non-terminal")
	}
	if colorProfile(&buffer, config.ColorAlways) == termenv.Ascii {
		t.Error("always should enable color for a non-terminal")
	}
}

func TestWriteHighlighted(t *testing.T) {
	source := "{\n  \"Name\": \"box\"\n}\n"
	var output bytes.Buffer
	if err := writeHighlighted(&output, source, "json", "monokai", termenv.ANSI256); err != nil {
		t.Fatalf("writeHighlighted: %v", err)
	}
	if !strings.Contains(output.String(), "\x1b[") {
		t.Errorf("expected escape sequences, got %q", output.String())
	}
	if ansi.Strip(output.String()) != source {
		t.Errorf("stripped output = %q, want %q", ansi.Strip(output.String()), source)
	}
}
