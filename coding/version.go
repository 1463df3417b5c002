// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Version represents a QR version.  The version specifies the size
// of the QR code: a code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

// QR version range.
const (
	MinVersion Version = 1
	MaxVersion Version = 40
)

func (v Version) valid() bool { return v >= MinVersion && v <= MaxVersion }

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Size returns the number of modules on a side of a QR code with
// version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// Version size classes, selecting character count field lengths.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// rawDataModules returns the number of modules available for data and
// checksum bits at version v, remainder bits included.
func (v Version) rawDataModules() int {
	n := (16*int(v)+128)*int(v) + 64
	if v >= 2 {
		na := int(v)/7 + 2
		n -= (25*na-10)*na - 55
		if v >= 7 {
			n -= 36
		}
	}
	return n
}

// checkBytes returns the total number of error correction codewords
// at version v, level l.
func (v Version) checkBytes(l Level) int {
	return int(eccPerBlock[l][v]) * int(numBlocks[l][v])
}

// DataBytes returns the number of data codewords that can be stored
// in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	return v.rawDataModules()/8 - v.checkBytes(l)
}

// DataBits returns the number of data bits that can be stored in a QR
// code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// alignPos returns the ascending list of alignment pattern centre
// positions for v, used on both axes.
func (v Version) alignPos() []int {
	if v == 1 {
		return nil
	}
	n := int(v)/7 + 2
	step := (int(v)*4 + n*2 + 1) / (n*2 - 2) * 2
	if v == 32 {
		step = 26
	}
	pos := make([]int, n)
	pos[0] = 6
	for i, p := n-1, v.Size()-7; i > 0; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

// Error correction levels.
const (
	L Level = iota
	M
	Q
	H
)

func (l Level) valid() bool { return l >= L && l <= H }

func (l Level) String() string {
	if l.valid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// formatBits returns the 2 bit level code used in the format
// information field: L=01, M=00, Q=11, H=10.
func (l Level) formatBits() uint32 { return uint32(l ^ 1) }

// formatInfo returns the 15 bit format information for level l and
// mask: the 5 data bits, their (15,5) BCH remainder, XORed with the
// format mask constant.
func formatInfo(l Level, mask int) uint32 {
	data := l.formatBits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	return (data<<10 | rem) ^ 0x5412
}

// versionInfo returns the 18 bit version information for v: the 6
// data bits and their (18,6) BCH remainder.  Only drawn for v >= 7.
func versionInfo(v Version) uint32 {
	data := uint32(v)
	rem := data
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1f25
	}
	return data<<12 | rem
}

// Error correction codewords per block and number of Reed-Solomon
// blocks, indexed by level and version.  Index 0 is padding.
var eccPerBlock = [4][41]int8{
	L: {0, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	M: {0, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	Q: {0, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	H: {0, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

var numBlocks = [4][41]int8{
	L: {0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	M: {0, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	Q: {0, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	H: {0, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}
