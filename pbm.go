// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	siz, scale, bord := c.Size(), c.Scale, c.Border
	length := scale * (siz + bord*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	// PBM: 1 is black
	var white byte
	if c.Reverse {
		white = 0xff
	}
	row := make([]byte, (length+7)/8)
	blank := make([]byte, len(row))
	for i := range blank {
		blank[i] = white
	}
	writeRows := func(row []byte, n int) error {
		for i := 0; i < n; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeRows(blank, scale*bord); err != nil {
		return err
	}
	for y := 0; y < siz; y++ {
		copy(row, blank)
		for x := 0; x < siz; x++ {
			if !c.Black(x, y) {
				continue
			}
			for i := (bord + x) * scale; i < (bord+x+1)*scale; i++ {
				row[i/8] ^= 0x80 >> (i & 7)
			}
		}
		if err := writeRows(row, scale); err != nil {
			return err
		}
	}
	if err := writeRows(blank, scale*bord); err != nil {
		return err
	}
	return b.Flush()
}
