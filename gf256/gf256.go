// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois field GF(2^8)
// with the reduction polynomial 0x11d, as used by QR error correction,
// and Reed-Solomon checksum generation over that field.
package gf256

// Mul returns the product of x and y in the field.
func Mul(x, y byte) byte {
	// Russian peasant multiplication with conditional reduction.
	var z byte
	for i := 7; i >= 0; i-- {
		z = z<<1 ^ z>>7*0x1d
		z ^= y >> i & 1 * x
	}
	return z
}

// An RSEncoder computes Reed-Solomon error correction codewords
// of a fixed degree.
type RSEncoder struct {
	gen []byte
}

// NewRSEncoder returns an RSEncoder producing degree check bytes.
// It panics if degree is outside the range [1,30].
func NewRSEncoder(degree int) *RSEncoder {
	if degree < 1 || degree > 30 {
		panic("gf256: invalid degree")
	}
	// Compute the generator polynomial (x - 2^0) (x - 2^1) ...
	// (x - 2^(degree-1)).  Coefficients are stored from the highest
	// power to the lowest, with the leading 1 term implicit.
	gen := make([]byte, degree)
	gen[degree-1] = 1 // the monomial x^0
	root := byte(1)
	for i := 0; i < degree; i++ {
		// Multiply the product so far by (x - root).
		for j := range gen {
			gen[j] = Mul(gen[j], root)
			if j+1 < len(gen) {
				gen[j] ^= gen[j+1]
			}
		}
		root = Mul(root, 2)
	}
	return &RSEncoder{gen}
}

// Generator returns the coefficients of the generator polynomial from
// the highest power to the lowest, excluding the implicit leading 1.
func (e *RSEncoder) Generator() []byte {
	return append([]byte(nil), e.gen...)
}

// ECC writes the Reed-Solomon checksum of data to check, whose length
// must equal the encoder's degree.
func (e *RSEncoder) ECC(data, check []byte) {
	if len(check) != len(e.gen) {
		panic("gf256: wrong check length")
	}
	for i := range check {
		check[i] = 0
	}
	// Polynomial long division using check as a shift register.
	for _, b := range data {
		factor := b ^ check[0]
		copy(check, check[1:])
		check[len(check)-1] = 0
		for j, g := range e.gen {
			check[j] ^= Mul(g, factor)
		}
	}
}
