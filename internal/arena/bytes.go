// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package arena

import "unsafe"

// Bytes is a byte-oriented arena used to give strings and binary payloads
// a store-scoped, stable home. It is a thin specialization of Arena[byte];
// strings are materialized over arena-owned bytes with unsafe.String so
// interning a name costs one copy, not two.
type Bytes struct {
	bytes *Arena[byte]
}

// NewBytes creates a Bytes arena with the given block size in bytes.
func NewBytes(blockSize int) *Bytes {
	return &Bytes{bytes: New[byte](blockSize)}
}

// String copies s into the arena and returns a string backed by that
// copy. The empty string is returned as-is without allocating.
func (b *Bytes) String(s string) string {
	if s == "" {
		return ""
	}
	buf := b.bytes.Alloc(len(s))
	copy(buf, s)
	return unsafe.String(&buf[0], len(buf))
}

// Bytes copies p into the arena and returns the copy. A nil or empty p
// yields nil.
func (b *Bytes) Bytes(p []byte) []byte {
	if len(p) == 0 {
		return nil
	}
	buf := b.bytes.Alloc(len(p))
	copy(buf, p)
	return buf
}

// Blocks reports the number of backing byte blocks allocated so far.
func (b *Bytes) Blocks() int {
	return b.bytes.Blocks()
}

// Destroy releases all blocks. Strings and byte slices previously handed
// out become invalid.
func (b *Bytes) Destroy() {
	b.bytes.Destroy()
}
