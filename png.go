// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrLargeImage is returned when rendering parameters describe an
// image too large to encode.
var ErrLargeImage = errors.New("qrgen: image too large")

const pngHeader = "\x89PNG\r\n\x1a\n"

// PNG returns a PNG image displaying the code, or nil if the image
// would be too large.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w: a 1 bit
// image, grayscale or, if c.Palette is set, paletted.  Each row of
// modules is compressed once and repeated c.Scale times.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	siz, scale, bord := c.Size(), c.Scale, c.Border
	pix := scale * (siz + bord*2)
	if pix > 32767*8 {
		return ErrLargeImage
	}

	var buf bytes.Buffer
	buf.WriteString(pngHeader)

	var hdr [13]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(pix))
	binary.BigEndian.PutUint32(hdr[4:8], uint32(pix))
	hdr[8] = 1 // bit depth
	// background is bit 1 in grayscale, palette index 0 otherwise
	bg, fg := byte(1), byte(0)
	if c.Palette != nil {
		hdr[9] = 3 // colour type: palette
		bg, fg = 0, 1
	}
	if c.Reverse {
		bg, fg = fg, bg
	}
	writeChunk(&buf, "IHDR", hdr[:])

	if c.Palette != nil {
		var pal [6]byte
		var trans [2]byte
		opaque := true
		for i, col := range c.Palette {
			r, g, b, a := col.RGBA()
			pal[i*3] = byte(r >> 8)
			pal[i*3+1] = byte(g >> 8)
			pal[i*3+2] = byte(b >> 8)
			trans[i] = byte(a >> 8)
			opaque = opaque && trans[i] == 0xff
		}
		writeChunk(&buf, "PLTE", pal[:])
		if !opaque {
			writeChunk(&buf, "tRNS", trans[:])
		}
	}

	// IDAT: filter type 0 scanlines
	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	stride := (pix + 7) / 8
	blank := make([]byte, 1+stride)
	line := make([]byte, 1+stride)
	fill := byte(0)
	if bg != 0 {
		fill = 0xff
	}
	for i := 1; i < len(blank); i++ {
		blank[i] = fill
	}
	writeRows := func(row []byte, n int) error {
		for i := 0; i < n; i++ {
			if _, err := zw.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeRows(blank, scale*bord); err != nil {
		return err
	}
	for y := 0; y < siz; y++ {
		copy(line, blank)
		for x := 0; x < siz; x++ {
			if !c.Black(x, y) {
				continue
			}
			for i := (bord + x) * scale; i < (bord+x+1)*scale; i++ {
				if fg != 0 {
					line[1+i/8] |= 0x80 >> (i & 7)
				} else {
					line[1+i/8] &^= 0x80 >> (i & 7)
				}
			}
		}
		if err := writeRows(line, scale); err != nil {
			return err
		}
	}
	if err := writeRows(blank, scale*bord); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	writeChunk(&buf, "IDAT", idat.Bytes())
	writeChunk(&buf, "IEND", nil)

	_, err := w.Write(buf.Bytes())
	return err
}

// writeChunk writes a PNG chunk: length, name, data, CRC-32.
func writeChunk(b *bytes.Buffer, name string, data []byte) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(data)))
	b.Write(tmp[:])
	b.WriteString(name)
	b.Write(data)
	crc := crc32.NewIEEE()
	io.WriteString(crc, name)
	crc.Write(data)
	binary.BigEndian.PutUint32(tmp[:], crc.Sum32())
	b.Write(tmp[:])
}
