// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import "os"

func writeRawFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func corruptLastByte(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	data[len(data)-1] ^= 0xFF
	return os.WriteFile(path, data, 0o644)
}
