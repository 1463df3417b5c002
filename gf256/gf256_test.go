// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMulIdentities(t *testing.T) {
	for x := 0; x < 256; x++ {
		require.Equal(t, byte(0), Mul(byte(x), 0))
		require.Equal(t, byte(0), Mul(0, byte(x)))
		require.Equal(t, byte(x), Mul(byte(x), 1))
		require.Equal(t, byte(x), Mul(1, byte(x)))
	}
}

func TestMulCommutative(t *testing.T) {
	for x := 0; x < 256; x++ {
		for y := x + 1; y < 256; y++ {
			if Mul(byte(x), byte(y)) != Mul(byte(y), byte(x)) {
				t.Fatalf("Mul(%#x, %#x) != Mul(%#x, %#x)",
					x, y, y, x)
			}
		}
	}
}

func TestMulKnown(t *testing.T) {
	require.Equal(t, byte(0xe6), Mul(0xb2, 0xdd))
	require.Equal(t, byte(0x1d), Mul(0x80, 0x02)) // reduction fires
	require.Equal(t, byte(0x04), Mul(0x02, 0x02))
}

func TestGenerator(t *testing.T) {
	require.Equal(t, []byte{0x01}, NewRSEncoder(1).Generator())
	require.Equal(t, []byte{0x03, 0x02}, NewRSEncoder(2).Generator())
	// (x-1)(x-2)(x-4) = x^3 + 7x^2 + 14x + 8
	require.Equal(t, []byte{0x07, 0x0e, 0x08}, NewRSEncoder(3).Generator())
}

func TestGeneratorDegreeRange(t *testing.T) {
	require.Panics(t, func() { NewRSEncoder(0) })
	require.Panics(t, func() { NewRSEncoder(31) })
	require.Len(t, NewRSEncoder(30).Generator(), 30)
}

func TestECC(t *testing.T) {
	// Degree 1: the remainder of a message modulo (x - 1) is the
	// XOR-free fold of the message through the shift register.
	e := NewRSEncoder(1)
	check := make([]byte, 1)
	e.ECC([]byte{0x42}, check)
	require.Equal(t, []byte{0x42}, check)

	// All-zero data has an all-zero checksum at any degree.
	e = NewRSEncoder(10)
	check = make([]byte, 10)
	e.ECC(make([]byte, 19), check)
	require.Equal(t, make([]byte, 10), check)
}

func TestECCLinear(t *testing.T) {
	// Reed-Solomon codes are linear: ecc(a^b) == ecc(a)^ecc(b).
	e := NewRSEncoder(7)
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b := []byte{0x10, 0xfe, 0x37, 0x00, 0x91, 0x45, 0xaa, 0x13}
	ab := make([]byte, len(a))
	for i := range ab {
		ab[i] = a[i] ^ b[i]
	}
	ca, cb, cab := make([]byte, 7), make([]byte, 7), make([]byte, 7)
	e.ECC(a, ca)
	e.ECC(b, cb)
	e.ECC(ab, cab)
	for i := range cab {
		require.Equal(t, cab[i], ca[i]^cb[i])
	}
}
