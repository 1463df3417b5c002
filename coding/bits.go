// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Bits is an append-only sequence of bits, stored MSB first in a
// byte slice growing by whole bytes.
type Bits struct {
	b    []byte
	nbit int
}

// Bits returns the length of b in bits.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the contents of b, which must be byte aligned.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qrgen: fractional byte")
	}
	return b.b
}

// Write appends the nbit low bits of v to b, most significant first.
// It panics unless 0 <= nbit <= 31 and v < 1<<nbit.
func (b *Bits) Write(v uint32, nbit int) {
	if uint(nbit) > 31 || v>>nbit != 0 {
		panic("qrgen: value out of range")
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// append appends the first nbit bits of data to b.
func (b *Bits) append(data []byte, nbit int) {
	for ; nbit >= 8; nbit -= 8 {
		b.Write(uint32(data[0]), 8)
		data = data[1:]
	}
	if nbit > 0 {
		b.Write(uint32(data[0])>>(8-nbit), nbit)
	}
}

// pad appends up to t zero terminator bits, zero-pads to the next byte
// boundary and fills the rest of the n-bit capacity with the
// alternating pad bytes 0xec, 0x11.  n must be a multiple of 8.
func (b *Bits) pad(t, n int) {
	b.nbit = min(b.nbit+t, n)
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	b.nbit = len(b.b) * 8
	for pad := byte(0xec); b.nbit < n; b.nbit += 8 {
		b.b = append(b.b, pad)
		pad ^= 0xec ^ 0x11
	}
}
