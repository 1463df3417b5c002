// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: segments,
// capacity arithmetic and construction of the module grid.
package coding

import (
	"errors"

	"github.com/unixdj/qrgen/gf256"
)

// ErrDataTooLong is returned when data does not fit the largest
// permitted version at the requested error correction level.
var ErrDataTooLong = errors.New("qrgen: data too long")

// AutoMask selects the mask with the lowest penalty score.
const AutoMask = -1

// A Code is an encoded QR symbol.  It is immutable once returned.
type Code struct {
	version Version
	level   Level
	mask    int
	size    int
	modules []bool // dark modules, row major
}

// Version returns the version of the code.
func (c *Code) Version() Version { return c.version }

// Level returns the error correction level of the code.
func (c *Code) Level() Level { return c.level }

// Mask returns the mask applied to the code, between 0 and 7.
func (c *Code) Mask() int { return c.mask }

// Size returns the number of modules on a side of the code.
func (c *Code) Size() int { return c.size }

// Module reports whether the module at (x, y) is dark.  Coordinates
// outside the code are light.
func (c *Code) Module(x, y int) bool {
	return 0 <= x && x < c.size && 0 <= y && y < c.size &&
		c.modules[y*c.size+x]
}

// Encode returns a QR code representing segs at the lowest version
// accommodating them, with error correction level l or better and an
// automatically chosen mask.
func Encode(segs []Segment, l Level) (*Code, error) {
	return EncodeAdvanced(segs, l, MinVersion, MaxVersion, AutoMask, true)
}

// EncodeAdvanced returns a QR code representing segs at the lowest
// version in [minv, maxv] accommodating them.  If boost is true the
// error correction level is raised above l as far as the chosen
// version allows.  The mask is either between 0 and 7 or AutoMask.
// EncodeAdvanced panics if the arguments are out of range, and
// returns ErrDataTooLong if segs do not fit version maxv at level l.
func EncodeAdvanced(segs []Segment, l Level, minv, maxv Version,
	mask int, boost bool) (*Code, error) {
	if !l.valid() || !minv.valid() || !maxv.valid() || minv > maxv ||
		mask < AutoMask || mask > 7 {
		panic("qrgen: invalid encode arguments")
	}

	v, used := minv, 0
	for {
		var ok bool
		if used, ok = TotalBits(segs, v); ok && used <= v.DataBits(l) {
			break
		}
		if v == maxv {
			return nil, ErrDataTooLong
		}
		v++
	}
	if boost {
		for _, nl := range [...]Level{M, Q, H} {
			if used <= v.DataBits(nl) {
				l = nl
			}
		}
	}

	var b Bits
	for _, s := range segs {
		b.Write(uint32(s.mode.Indicator()), 4)
		b.Write(uint32(s.numChars), s.mode.CountBits(v))
		b.append(s.data, s.nbit)
	}
	if b.Bits() != used {
		panic("qrgen: internal error: bit count mismatch")
	}
	b.pad(4, v.DataBits(l))

	c := &Code{version: v, level: l, size: v.Size()}
	c.modules = make([]bool, c.size*c.size)
	c.encodeCodewords(b.Bytes(), mask)
	return c, nil
}

// encodeCodewords fills in the module grid of c from the padded data
// codewords: function patterns, interleaved checksummed codewords in
// a zigzag, and the chosen mask.
func (c *Code) encodeCodewords(data []byte, mask int) {
	fn := make([]bool, len(c.modules)) // function module map
	c.drawFunctionPatterns(fn)
	c.drawCodewords(c.addCheckBytes(data), fn)

	if mask == AutoMask {
		best := -1
		for m := 0; m < 8; m++ {
			c.applyMask(m, fn)
			c.drawFormatBits(m)
			if p := c.penalty(); best < 0 || p < best {
				best, c.mask = p, m
			}
			c.applyMask(m, fn) // undo, masking is an involution
		}
		mask = c.mask
	}
	c.mask = mask
	c.applyMask(mask, fn)
	c.drawFormatBits(mask)
}

func (c *Code) set(x, y int, dark bool) { c.modules[y*c.size+x] = dark }

// setFunc sets a function module and marks it in fn.
func (c *Code) setFunc(fn []bool, x, y int, dark bool) {
	c.set(x, y, dark)
	fn[y*c.size+x] = true
}

// drawFunctionPatterns draws timing, finder, alignment, format and
// version patterns, marking their modules in fn.  Format bits are
// drawn as placeholders and redrawn after mask selection.
func (c *Code) drawFunctionPatterns(fn []bool) {
	for i := 0; i < c.size; i++ {
		c.setFunc(fn, 6, i, i%2 == 0)
		c.setFunc(fn, i, 6, i%2 == 0)
	}
	c.drawFinder(fn, 3, 3)
	c.drawFinder(fn, c.size-4, 3)
	c.drawFinder(fn, 3, c.size-4)

	pos := c.version.alignPos()
	for i, y := range pos {
		for j, x := range pos {
			// skip the three corners under finder patterns
			if i == 0 && (j == 0 || j == len(pos)-1) ||
				i == len(pos)-1 && j == 0 {
				continue
			}
			c.drawAlign(fn, x, y)
		}
	}

	c.drawFormatBits(0)
	c.markFormat(fn)
	c.drawVersionInfo(fn)
}

// drawFinder draws a finder pattern with its separator border centred
// at (x, y), clipped to the code.
func (c *Code) drawFinder(fn []bool, x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= c.size || yy < 0 || yy >= c.size {
				continue
			}
			d := max(abs(dx), abs(dy))
			c.setFunc(fn, xx, yy, d != 2 && d != 4)
		}
	}
}

// drawAlign draws a 5x5 alignment pattern centred at (x, y).
func (c *Code) drawAlign(fn []bool, x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			c.setFunc(fn, x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// drawFormatBits draws the two copies of the format information for
// the given mask, and the dark module above the lower left finder.
func (c *Code) drawFormatBits(mask int) {
	bits := formatInfo(c.level, mask)
	for i := 0; i <= 5; i++ {
		c.set(8, i, bit(bits, i))
	}
	c.set(8, 7, bit(bits, 6))
	c.set(8, 8, bit(bits, 7))
	c.set(7, 8, bit(bits, 8))
	for i := 9; i < 15; i++ {
		c.set(14-i, 8, bit(bits, i))
	}
	for i := 0; i < 8; i++ {
		c.set(c.size-1-i, 8, bit(bits, i))
	}
	for i := 8; i < 15; i++ {
		c.set(8, c.size-15+i, bit(bits, i))
	}
	c.set(8, c.size-8, true)
}

// markFormat marks the format information modules, including the dark
// module, as function modules.
func (c *Code) markFormat(fn []bool) {
	mark := func(x, y int) { fn[y*c.size+x] = true }
	for i := 0; i <= 8; i++ {
		if i != 6 {
			mark(8, i)
			mark(i, 8)
		}
	}
	for i := 0; i < 8; i++ {
		mark(c.size-1-i, 8)
		mark(8, c.size-1-i)
	}
}

// drawVersionInfo draws the two copies of the version information for
// versions 7 and up.
func (c *Code) drawVersionInfo(fn []bool) {
	if c.version < 7 {
		return
	}
	bits := versionInfo(c.version)
	for i := 0; i < 18; i++ {
		a, b := c.size-11+i%3, i/3
		c.setFunc(fn, a, b, bit(bits, i))
		c.setFunc(fn, b, a, bit(bits, i))
	}
}

// addCheckBytes splits data into Reed-Solomon blocks, appends check
// bytes to each and returns the codewords interleaved for
// transmission.
func (c *Code) addCheckBytes(data []byte) []byte {
	v, l := c.version, c.level
	nblock := int(numBlocks[l][v])
	ncheck := int(eccPerBlock[l][v])
	raw := v.rawDataModules() / 8
	if len(data) != raw-nblock*ncheck {
		panic("qrgen: internal error: bad data length")
	}
	nshort := nblock - raw%nblock
	shortLen := raw/nblock - ncheck

	enc := gf256.NewRSEncoder(ncheck)
	blocks := make([][]byte, nblock)
	for i, off := 0, 0; i < nblock; i++ {
		n := shortLen
		if i >= nshort {
			n++
		}
		b := make([]byte, n+ncheck)
		copy(b, data[off:off+n])
		enc.ECC(b[:n], b[n:])
		blocks[i], off = b, off+n
	}

	out := make([]byte, 0, raw)
	for i := 0; i <= shortLen+ncheck; i++ {
		for j, b := range blocks {
			// short blocks lack the last data byte
			if i == shortLen && j < nshort {
				continue
			}
			k := i
			if i > shortLen && j < nshort {
				k--
			}
			out = append(out, b[k])
		}
	}
	return out
}

// drawCodewords places the interleaved codewords in the zigzag order,
// skipping function modules.  Remainder bits stay light.
func (c *Code) drawCodewords(data []byte, fn []bool) {
	i := 0
	for right := c.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < c.size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				y := vert
				if (right+1)&2 == 0 {
					y = c.size - 1 - vert // upward
				}
				if fn[y*c.size+x] || i >= len(data)*8 {
					continue
				}
				c.set(x, y, data[i>>3]>>(7-i&7)&1 != 0)
				i++
			}
		}
	}
	if i != len(data)*8 {
		panic("qrgen: internal error: codewords left over")
	}
}

// applyMask XORs mask pattern m into the non-function modules.
// Applying the same mask twice restores the grid.
func (c *Code) applyMask(m int, fn []bool) {
	for y := 0; y < c.size; y++ {
		for x := 0; x < c.size; x++ {
			var invert bool
			switch m {
			case 0:
				invert = (x+y)%2 == 0
			case 1:
				invert = y%2 == 0
			case 2:
				invert = x%3 == 0
			case 3:
				invert = (x+y)%3 == 0
			case 4:
				invert = (x/3+y/2)%2 == 0
			case 5:
				invert = x*y%2+x*y%3 == 0
			case 6:
				invert = (x*y%2+x*y%3)%2 == 0
			case 7:
				invert = ((x+y)%2+x*y%3)%2 == 0
			}
			if invert && !fn[y*c.size+x] {
				c.modules[y*c.size+x] = !c.modules[y*c.size+x]
			}
		}
	}
}

// Penalty weights for mask selection.
const (
	penaltyN1 = 3  // runs of 5 or more
	penaltyN2 = 3  // 2x2 blocks
	penaltyN3 = 40 // finder-like patterns
	penaltyN4 = 10 // dark/light balance
)

// penalty returns the penalty score of the grid under the current
// mask; lower is better.
func (c *Code) penalty() int {
	n := c.size
	p := 0

	// adjacent same-coloured runs in rows, and finder-like patterns
	for y := 0; y < n; y++ {
		runColor, runX := false, 0
		var rh runHistory
		for x := 0; x < n; x++ {
			if c.modules[y*n+x] == runColor {
				if runX++; runX == 5 {
					p += penaltyN1
				} else if runX > 5 {
					p++
				}
			} else {
				rh.add(runX, n)
				if !runColor {
					p += rh.patterns() * penaltyN3
				}
				runColor, runX = c.modules[y*n+x], 1
			}
		}
		p += rh.terminate(runColor, runX, n) * penaltyN3
	}
	// same in columns
	for x := 0; x < n; x++ {
		runColor, runY := false, 0
		var rh runHistory
		for y := 0; y < n; y++ {
			if c.modules[y*n+x] == runColor {
				if runY++; runY == 5 {
					p += penaltyN1
				} else if runY > 5 {
					p++
				}
			} else {
				rh.add(runY, n)
				if !runColor {
					p += rh.patterns() * penaltyN3
				}
				runColor, runY = c.modules[y*n+x], 1
			}
		}
		p += rh.terminate(runColor, runY, n) * penaltyN3
	}

	// 2x2 blocks of one colour
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			m := c.modules[y*n+x]
			if m == c.modules[y*n+x+1] &&
				m == c.modules[(y+1)*n+x] &&
				m == c.modules[(y+1)*n+x+1] {
				p += penaltyN2
			}
		}
	}

	// dark module balance, in steps of 5% deviation from 50%
	dark := 0
	for _, m := range c.modules {
		if m {
			dark++
		}
	}
	total := n * n
	k := (abs(dark*20-total*10)+total-1)/total - 1
	return p + k*penaltyN4
}

// A runHistory tracks the lengths of the last 7 same-coloured runs on
// a scan line, for detecting finder-like 1:1:3:1:1 patterns.  The
// light border around the code counts as a run of length size.
type runHistory [7]int

// add shifts in a terminated run of length x.  A zero-length initial
// light run stands for the border and is extended by size.
func (rh *runHistory) add(x, size int) {
	if rh[0] == 0 {
		x += size // left border
	}
	copy(rh[1:], rh[:])
	rh[0] = x
}

// patterns counts finder-like patterns in the history, at most 2.
func (rh *runHistory) patterns() int {
	x := rh[1]
	if x > 0 && rh[2] == x && rh[3] == x*3 && rh[4] == x && rh[5] == x {
		n := 0
		if rh[0] >= x*4 && rh[6] >= x {
			n++
		}
		if rh[6] >= x*4 && rh[0] >= x {
			n++
		}
		return n
	}
	return 0
}

// terminate flushes the final run plus the right border and counts
// remaining patterns.
func (rh *runHistory) terminate(color bool, x, size int) int {
	if color {
		rh.add(x, size)
		x = 0
	}
	rh.add(x+size, size) // right border
	return rh.patterns()
}

func bit(v uint32, i int) bool { return v>>i&1 != 0 }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
