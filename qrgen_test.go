// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"strings"
	"testing"

	"github.com/unixdj/qrgen/coding"

	"github.com/stretchr/testify/require"
)

func TestEncodeText(t *testing.T) {
	c, err := EncodeText("Hello, world!", L)
	require.NoError(t, err)
	require.Equal(t, coding.Version(1), c.Version())
	require.Equal(t, 8, c.Scale)
	require.Equal(t, 4, c.Border)
	require.True(t, c.Black(0, 0))
	require.False(t, c.Black(-1, -1))
}

func TestEncodeBinary(t *testing.T) {
	c, err := EncodeBinary([]byte{0x00, 0xff, 0x80}, Q)
	require.NoError(t, err)
	require.Equal(t, coding.Version(1), c.Version())

	_, err = EncodeBinary(make([]byte, 4300), L)
	require.ErrorIs(t, err, coding.ErrDataTooLong)
}

func TestEncodeSegments(t *testing.T) {
	segs := coding.MakeSegments("ENCODE SEGMENTS")
	c, err := EncodeSegments(segs, M)
	require.NoError(t, err)
	require.NotNil(t, c.Code)
}

func TestImage(t *testing.T) {
	c, err := EncodeText("IMAGE", L)
	require.NoError(t, err)
	img := c.Image()
	d := (c.Size() + 8) * 8
	require.Equal(t, d, img.Bounds().Dx())
	require.Equal(t, d, img.Bounds().Dy())

	// quiet zone is light
	r, _, _, _ := img.At(0, 0).RGBA()
	require.Equal(t, uint32(0xffff), r)
	// module (0, 0) is the dark finder corner
	r, _, _, _ = img.At(4*8, 4*8).RGBA()
	require.Equal(t, uint32(0), r)
}

func TestImageReverse(t *testing.T) {
	c, err := EncodeText("IMAGE", L)
	require.NoError(t, err)
	c.Reverse = true
	r, _, _, _ := c.Image().At(0, 0).RGBA()
	require.Equal(t, uint32(0), r)
}

func TestString(t *testing.T) {
	c, err := EncodeText("TERMINAL", L)
	require.NoError(t, err)
	c.Border = 2
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, (c.Size()+2*2+1)/2)
	for _, l := range lines {
		require.Equal(t, c.Size()+2*2, len([]rune(l)))
	}
	require.Contains(t, s, "█")
	// quiet zone: first line starts and ends with spaces
	require.True(t, strings.HasPrefix(lines[0], "  "))
}
