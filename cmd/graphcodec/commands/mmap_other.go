// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(darwin || linux)

package commands

func mapFile(path string) ([]byte, func(), error) {
	return readFile(path)
}
