// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodePNG(t *testing.T) {
	c, err := EncodeText("PNG TEST", L)
	require.NoError(t, err)
	c.Scale = 1
	c.Border = 0

	var b bytes.Buffer
	require.NoError(t, c.EncodePNG(&b))
	img, err := png.Decode(&b)
	require.NoError(t, err)
	require.Equal(t, c.Size(), img.Bounds().Dx())
	require.Equal(t, c.Size(), img.Bounds().Dy())
	for y := 0; y < c.Size(); y++ {
		for x := 0; x < c.Size(); x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			require.Equal(t, c.Black(x, y), r == 0,
				"pixel (%d, %d)", x, y)
		}
	}
}

func TestEncodePNGScaled(t *testing.T) {
	c, err := EncodeText("PNG TEST", L)
	require.NoError(t, err)
	c.Scale = 3
	c.Border = 2

	var b bytes.Buffer
	require.NoError(t, c.EncodePNG(&b))
	img, err := png.Decode(&b)
	require.NoError(t, err)
	d := (c.Size() + 4) * 3
	require.Equal(t, d, img.Bounds().Dx())
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			require.Equal(t, c.Black(x/3-2, y/3-2), r == 0,
				"pixel (%d, %d)", x, y)
		}
	}
}

func TestEncodePNGReverse(t *testing.T) {
	c, err := EncodeText("PNG TEST", L)
	require.NoError(t, err)
	c.Scale = 1
	c.Border = 1
	c.Reverse = true

	var b bytes.Buffer
	require.NoError(t, c.EncodePNG(&b))
	img, err := png.Decode(&b)
	require.NoError(t, err)
	// reversed quiet zone is dark
	r, _, _, _ := img.At(0, 0).RGBA()
	require.Equal(t, uint32(0), r)
}

func TestEncodePNGPalette(t *testing.T) {
	c, err := EncodeText("PNG TEST", L)
	require.NoError(t, err)
	c.Scale = 1
	c.Border = 1
	c.Palette = &[2]color.Color{
		color.RGBA{0xff, 0xee, 0xdd, 0xff}, // background
		color.RGBA{0x11, 0x22, 0x33, 0xff}, // foreground
	}

	var b bytes.Buffer
	require.NoError(t, c.EncodePNG(&b))
	img, err := png.Decode(&b)
	require.NoError(t, err)
	r, g, bb, _ := img.At(0, 0).RGBA()
	require.Equal(t, []uint32{0xffff, 0xeeee, 0xdddd}, []uint32{r, g, bb})
	r, g, bb, _ = img.At(1, 1).RGBA() // dark finder corner
	require.Equal(t, []uint32{0x1111, 0x2222, 0x3333}, []uint32{r, g, bb})
}

func TestEncodePNGArgs(t *testing.T) {
	c, err := EncodeText("PNG TEST", L)
	require.NoError(t, err)
	require.ErrorIs(t, c.EncodePNG(nil), ErrArgs)
	c.Scale = 0
	var b bytes.Buffer
	require.ErrorIs(t, c.EncodePNG(&b), ErrArgs)
	c.Scale = 1 << 20
	require.ErrorIs(t, c.EncodePNG(&b), ErrLargeImage)
	require.Nil(t, c.PNG())
}

func TestPNG(t *testing.T) {
	c, err := EncodeText("PNG TEST", L)
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, c.EncodePNG(&b))
	require.Equal(t, b.Bytes(), c.PNG())
}
