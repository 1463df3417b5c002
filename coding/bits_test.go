// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsWrite(t *testing.T) {
	var b Bits
	b.Write(0x5, 4)
	b.Write(0x3, 4)
	require.Equal(t, 8, b.Bits())
	require.Equal(t, []byte{0x53}, b.Bytes())

	b.Write(0x1ff, 9) // crosses a byte boundary
	require.Equal(t, 17, b.Bits())
	b.Write(0, 7)
	require.Equal(t, []byte{0x53, 0xff, 0x80}, b.Bytes())
}

func TestBitsWriteLong(t *testing.T) {
	var b Bits
	b.Write(0x12345678, 31)
	b.Write(0, 1)
	require.Equal(t, []byte{0x24, 0x68, 0xac, 0xf0}, b.Bytes())
}

func TestBitsWriteRange(t *testing.T) {
	var b Bits
	require.Panics(t, func() { b.Write(2, 1) })
	require.Panics(t, func() { b.Write(0, 32) })
	require.Panics(t, func() { b.Write(0, -1) })
}

func TestBitsBytesAligned(t *testing.T) {
	var b Bits
	b.Write(1, 3)
	require.Panics(t, func() { b.Bytes() })
}

func TestBitsAppend(t *testing.T) {
	var b Bits
	b.Write(1, 1)
	b.append([]byte{0xff, 0xf0}, 12)
	b.Write(0, 3)
	require.Equal(t, []byte{0xff, 0xf8}, b.Bytes())
}

func TestBitsPad(t *testing.T) {
	// terminator, zero pad to byte, then alternating 0xec, 0x11
	var b Bits
	b.Write(0x3f, 6)
	b.pad(4, 40)
	require.Equal(t, []byte{0xfc, 0x00, 0xec, 0x11, 0xec}, b.Bytes())

	// terminator truncated at capacity
	b = Bits{}
	b.Write(0x3f, 6)
	b.pad(4, 8)
	require.Equal(t, []byte{0xfc}, b.Bytes())

	// already full: nothing to do
	b = Bits{}
	b.Write(0xab, 8)
	b.pad(4, 8)
	require.Equal(t, []byte{0xab}, b.Bytes())
}
