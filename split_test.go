// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"testing"

	"github.com/unixdj/qrgen/coding"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require.Nil(t, classify(""))

	sp := classify("abc123XY")
	require.Len(t, sp, 3)
	require.Equal(t, span{start: 0, slen: 3, modes: stringModes}, clear(sp[0]))
	require.Equal(t, span{start: 3, slen: 3, modes: numModes}, clear(sp[1]))
	require.Equal(t, span{start: 6, slen: 2, modes: alphaModes}, clear(sp[2]))
}

// clear zeroes the scratch segments of a span for comparison.
func clear(s span) span {
	s.seg = [modes]segment{}
	return s
}

func TestSplitTextMixed(t *testing.T) {
	// short byte prefix, long digit run: switching pays
	segs := SplitText("golang0123456789012345678901", 1)
	require.Len(t, segs, 2)
	require.Equal(t, coding.Byte, segs[0].Mode())
	require.Equal(t, 6, segs[0].NumChars())
	require.Equal(t, coding.Numeric, segs[1].Mode())
	require.Equal(t, 22, segs[1].NumChars())
}

func TestSplitTextMerged(t *testing.T) {
	// alternating short spans: switching cannot pay
	segs := SplitText("A1A1A1", 1)
	require.Len(t, segs, 1)
	require.Equal(t, coding.Alphanumeric, segs[0].Mode())
	require.Equal(t, 6, segs[0].NumChars())
}

func TestSplitTextSingle(t *testing.T) {
	segs := SplitText("0123456789", 1)
	require.Len(t, segs, 1)
	require.Equal(t, coding.Numeric, segs[0].Mode())

	segs = SplitText("binary\xff\xfe", 1)
	require.Len(t, segs, 1)
	require.Equal(t, coding.Byte, segs[0].Mode())

	require.Nil(t, SplitText("", 1))
}

func TestSplitNoWorseThanSingleSegment(t *testing.T) {
	for _, text := range []string{
		"HELLO WORLD", "Hello, world!", "12345", "a1b2c3d4",
		"WIFI:S:net;P:pass;;", "https://example.com/?q=31415926535",
	} {
		for _, v := range []coding.Version{1, 10, 27} {
			split, ok := coding.TotalBits(SplitText(text, v), v)
			require.True(t, ok)
			single, ok := coding.TotalBits(coding.MakeSegments(text), v)
			require.True(t, ok)
			require.LessOrEqual(t, split, single,
				"%q at version %v", text, v)
		}
	}
}

func TestEncodeSplitText(t *testing.T) {
	c, err := EncodeSplitText("golang0123456789012345678901", L)
	require.NoError(t, err)
	require.Equal(t, coding.Version(1), c.Version())

	_, err = EncodeSplitText(string(make([]byte, 4300)), L)
	require.ErrorIs(t, err, coding.ErrDataTooLong)
}
