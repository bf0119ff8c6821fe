// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to a uniquely named file in the test's
// temporary directory and returns its path. The name is prefix plus a
// counter, so repeated calls in one test never collide.
func WriteFile(t *testing.T, prefix string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), UniqueID(prefix))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}
