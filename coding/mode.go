// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Mode identifies the encoding of a QR segment.
type Mode int

// Encoding modes.  The set is closed: QR Code Model 2 defines no
// other data-bearing segment types within the scope of this package.
const (
	Numeric      Mode = iota // digits 0-9
	Alphanumeric             // 45 character subset: 0-9 A-Z SP $%*+-./:
	Byte                     // any data
	Kanji                    // pre-mapped 13 bit JIS X 0208 values
	ECI                      // extended channel interpretation designator
)

var modeTab = [...]struct {
	name      string
	indicator byte
	count     [3]byte // character count field length per size class
}{
	Numeric:      {"numeric", 1, [3]byte{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]byte{9, 11, 13}},
	Byte:         {"byte", 4, [3]byte{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]byte{8, 10, 12}},
	ECI:          {"eci", 7, [3]byte{0, 0, 0}},
}

func (m Mode) valid() bool { return m >= Numeric && m <= ECI }

func (m Mode) String() string {
	if m.valid() {
		return modeTab[m].name
	}
	return strconv.Itoa(int(m))
}

// Indicator returns the 4 bit mode indicator for m.
func (m Mode) Indicator() byte { return modeTab[m].indicator }

// CountBits returns the length in bits of the character count field
// for mode m at version v.
func (m Mode) CountBits(v Version) int {
	return int(modeTab[m].count[v.SizeClass()])
}
