// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"golang.org/x/text/encoding/japanese"
)

// A Segment is one contiguous run of input encoded in a single mode,
// with its payload already packed into bits.  Segments are immutable
// once built; a symbol is encoded from an ordered list of them.
type Segment struct {
	mode     Mode
	numChars int
	data     []byte // payload bits, packed MSB first
	nbit     int
}

// Mode returns the encoding mode of s.
func (s Segment) Mode() Mode { return s.mode }

// NumChars returns the character count of s: characters for numeric,
// alphanumeric and kanji modes, bytes for byte mode, 0 for ECI.
func (s Segment) NumChars() int { return s.numChars }

// BitLen returns the length of the payload of s in bits, excluding
// the mode indicator and character count field.
func (s Segment) BitLen() int { return s.nbit }

func newSegment(mode Mode, numChars int, b Bits) Segment {
	return Segment{mode, numChars, b.b, b.nbit}
}

// A SegmentError reports data not encodable in a mode.
type SegmentError struct {
	Mode Mode
	Text string
}

func (e SegmentError) Error() string {
	return fmt.Sprintf("qrgen: non-%s string %#q", e.Mode, e.Text)
}

// Bit field of encodable alphanumeric characters, offset from space.
const alphaMask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table, indexed by character & 0x3f.
// Valid only after checking alphaMask.
var alphaVal = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

func alphaOK(c byte) bool { return alphaMask>>(uint32(c)-' ')&1 != 0 }

// IsNumeric reports whether text consists only of digits 0-9.
func IsNumeric(text string) bool {
	for i := 0; i < len(text); i++ {
		if c := text[i]; c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether text consists only of characters in
// the QR alphanumeric subset: 0-9, A-Z, space, $%*+-./:.
func IsAlphanumeric(text string) bool {
	for i := 0; i < len(text); i++ {
		if !alphaOK(text[i]) {
			return false
		}
	}
	return true
}

// MakeNumeric returns a segment encoding digits in numeric mode,
// packing groups of 3 digits into 10 bits.
func MakeNumeric(digits string) (Segment, error) {
	if !IsNumeric(digits) {
		return Segment{}, SegmentError{Numeric, digits}
	}
	var b Bits
	var acc uint32
	n := 0
	for i := 0; i < len(digits); i++ {
		acc = acc*10 + uint32(digits[i]-'0')
		if n++; n == 3 {
			b.Write(acc, 10)
			acc, n = 0, 0
		}
	}
	if n > 0 { // 1 or 2 digits remaining
		b.Write(acc, n*3+1)
	}
	return newSegment(Numeric, len(digits), b), nil
}

// MakeAlphanumeric returns a segment encoding text, restricted to the
// QR alphanumeric subset, packing pairs of characters into 11 bits as
// base 45 digits.
func MakeAlphanumeric(text string) (Segment, error) {
	if !IsAlphanumeric(text) {
		return Segment{}, SegmentError{Alphanumeric, text}
	}
	var b Bits
	var acc uint32
	n := 0
	for i := 0; i < len(text); i++ {
		acc = acc*45 + uint32(alphaVal[text[i]&0x3f])
		if n++; n == 2 {
			b.Write(acc, 11)
			acc, n = 0, 0
		}
	}
	if n > 0 { // 1 character remaining
		b.Write(acc, 6)
	}
	return newSegment(Alphanumeric, len(text), b), nil
}

// MakeBytes returns a segment encoding data in byte mode.
// All data is acceptable.
func MakeBytes(data []byte) Segment {
	b := Bits{b: append([]byte(nil), data...), nbit: len(data) * 8}
	return newSegment(Byte, len(data), b)
}

// MakeKanji returns a segment encoding the given pre-mapped QR kanji
// values, 13 bits per character.  The mapping from text to values is
// not part of this package's contract; see MakeKanjiText for the
// usual JIS X 0208 mapping.
func MakeKanji(vals []uint16) (Segment, error) {
	var b Bits
	for _, v := range vals {
		if v >= 1<<13 {
			return Segment{}, SegmentError{Kanji,
				fmt.Sprintf("%#x", v)}
		}
		b.Write(uint32(v), 13)
	}
	return newSegment(Kanji, len(vals), b), nil
}

// MakeKanjiText converts text to Shift JIS and returns a segment of
// its QR kanji values.  Characters without a double byte Shift JIS
// form in the QR kanji subset are rejected.
func MakeKanjiText(text string) (Segment, error) {
	s, err := japanese.ShiftJIS.NewEncoder().String(text)
	if err != nil {
		return Segment{}, SegmentError{Kanji, text}
	}
	var b Bits
	n := 0
	for i := 0; i+1 < len(s); i += 2 {
		c, d := s[i], s[i+1]
		if (c < 0x81 || c > 0x9f) && (c < 0xe0 || c > 0xeb) ||
			d < 0x40 || d > 0xfc || d == 0x7f {
			return Segment{}, SegmentError{Kanji, text}
		}
		v := uint32(c&^0xc0)*0xc0 + uint32(d) - 0x100
		if v >= 1<<13 {
			return Segment{}, SegmentError{Kanji, text}
		}
		b.Write(v, 13)
		n++
	}
	if len(s)%2 != 0 {
		return Segment{}, SegmentError{Kanji, text}
	}
	return newSegment(Kanji, n, b), nil
}

// ECI assignment values for common character sets.
const (
	Latin1ECI   = 3
	ShiftJISECI = 20
	UTF8ECI     = 26
)

// MakeECI returns a segment representing an extended channel
// interpretation designator with the given assignment value,
// packed into 1, 2 or 3 bytes by magnitude.
func MakeECI(v uint32) (Segment, error) {
	var b Bits
	switch {
	case v < 1<<7:
		b.Write(v, 8)
	case v < 1<<14:
		b.Write(2, 2)
		b.Write(v, 14)
	case v < 1000000:
		b.Write(6, 3)
		b.Write(v, 21)
	default:
		return Segment{}, SegmentError{ECI, fmt.Sprintf("%d", v)}
	}
	return newSegment(ECI, 0, b), nil
}

// MakeSegments returns segments representing text, choosing the
// densest single mode covering all of it: numeric if the text is all
// digits, alphanumeric if it fits the alphanumeric subset, otherwise
// one byte mode segment of its UTF-8 encoding.  It does not mix modes
// within one call.
func MakeSegments(text string) []Segment {
	switch {
	case text == "":
		return nil
	case IsNumeric(text):
		seg, _ := MakeNumeric(text)
		return []Segment{seg}
	case IsAlphanumeric(text):
		seg, _ := MakeAlphanumeric(text)
		return []Segment{seg}
	}
	return []Segment{MakeBytes([]byte(text))}
}

// TotalBits returns the number of bits needed to encode segs at
// version v, headers included.  The second return value is false if
// any segment's character count does not fit its count field at v or
// the total overflows.
func TotalBits(segs []Segment, v Version) (int, bool) {
	n := 0
	for _, s := range segs {
		cc := s.mode.CountBits(v)
		if s.numChars >= 1<<cc {
			return 0, false
		}
		n += 4 + cc + s.nbit
		if n < 0 {
			return 0, false
		}
	}
	return n, true
}
