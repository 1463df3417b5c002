// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrgen encodes QR codes.
*/
package qrgen // import "github.com/unixdj/qrgen"

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/unixdj/qrgen/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

// Error correction levels.
const (
	L = coding.L // 7% recoverable
	M = coding.M // 15% recoverable
	Q = coding.Q // 25% recoverable
	H = coding.H // 30% recoverable
)

// ECI assignment values for common character sets.
const (
	Latin1ECI   = coding.Latin1ECI
	ShiftJISECI = coding.ShiftJISECI
	UTF8ECI     = coding.UTF8ECI
)

// ErrArgs is returned by renderers for invalid rendering parameters.
var ErrArgs = errors.New("qrgen: invalid arguments")

// A Code is an encoded QR symbol together with rendering parameters.
// The fields may be adjusted before rendering.
type Code struct {
	*coding.Code
	Scale   int             // image pixels per module
	Border  int             // quiet zone width in modules
	Reverse bool            // render dark modules light and vice versa
	Palette *[2]color.Color // background, foreground; nil for gray
}

// New returns a Code rendering cc with the default scale of 8 and
// quiet zone of 4 modules.
func New(cc *coding.Code) *Code {
	return &Code{Code: cc, Scale: 8, Border: 4}
}

func (c *Code) isValid() bool {
	return c.Code != nil && c.Scale >= 1 && c.Border >= 0
}

// Black reports whether the module at (x, y) is dark, disregarding
// c.Reverse.  Coordinates outside the code are light.
func (c *Code) Black(x, y int) bool { return c.Module(x, y) }

// EncodeText returns an encoding of text at the given error
// correction level, in the densest single mode covering all of it.
// EncodeSplitText switches modes mid-string instead where that
// encodes shorter.
func EncodeText(text string, level Level) (*Code, error) {
	return EncodeSegments(coding.MakeSegments(text), level)
}

// EncodeBinary returns an encoding of data as a single byte mode
// segment at the given error correction level.
func EncodeBinary(data []byte, level Level) (*Code, error) {
	return EncodeSegments([]coding.Segment{coding.MakeBytes(data)}, level)
}

// EncodeSegments returns an encoding of segs at the given error
// correction level.
func EncodeSegments(segs []coding.Segment, level Level) (*Code, error) {
	cc, err := coding.Encode(segs, level)
	if err != nil {
		return nil, err
	}
	return New(cc), nil
}

// Image returns an Image displaying the code at c.Scale with the
// quiet zone included.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size() + c.Border*2) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	bg, fg := whiteColor, blackColor
	if c.Palette != nil {
		bg, fg = c.Palette[0], c.Palette[1]
	}
	if c.Reverse {
		bg, fg = fg, bg
	}
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return fg
	}
	return bg
}

func (c *codeImage) ColorModel() color.Model {
	if c.Palette != nil {
		return color.RGBAModel
	}
	return color.GrayModel
}

// String renders the code for a terminal, two modules per character
// cell using Unicode half block characters, quiet zone included.
func (c *Code) String() string {
	siz := c.Size()
	bord := c.Border
	if bord < 0 {
		bord = 0
	}
	var b strings.Builder
	blocks := [4]string{" ", "▀", "▄", "█"}
	if c.Reverse {
		blocks = [4]string{"█", "▄", "▀", " "}
	}
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n |= 1
			}
			if c.Black(x, y+1) {
				n |= 2
			}
			b.WriteString(blocks[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
