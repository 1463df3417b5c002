// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"github.com/unixdj/qrgen/coding"
)

const (
	numMode    = iota // numeric
	alphaMode         // alphanumeric
	stringMode        // byte
	modes             // total number of modes

	numModes    = 1<<numMode | 1<<alphaMode | 1<<stringMode
	alphaModes  = 1<<alphaMode | 1<<stringMode
	stringModes = 1 << stringMode
)

// weight[m] returns segment size in bits, header included, for a
// string of n bytes at QR version size class class encoded in mode m.
var weight = [modes]func(n, class int) int{
	func(n, class int) int { return 14 + class*2 + (10*n+2)/3 },
	func(n, class int) int { return 13 + class*2 + (11*n+1)/2 },
	func(n, class int) int { return 12 + (class<<1>>class+n)*8 },
}

type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		next   *segment // link to next segment in the chain
		start  int      // start of string
		slen   int      // length of string in bytes
		weight int      // encoded size of all segments in the chain
		mode   byte     // encoding mode
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		start int            // start of string
		slen  int            // length of string in bytes
		modes byte           // bit field of valid encoding modes
		seg   [modes]segment // segments
	}
)

// classify splits text into spans of bytes encodable in the same modes.
func classify(text string) []span {
	if text == "" {
		return nil
	}

	// Scan the string, detect valid encoding modes for each byte.
	mm := make([]byte, len(text))
	n := 0
	m := byte(0)
	for i := 0; i < len(text); i++ {
		old := m
		switch c := text[i]; {
		case c >= '0' && c <= '9':
			m = numModes
		case coding.IsAlphanumeric(text[i : i+1]):
			m = alphaModes
		default:
			m = stringModes
		}
		mm[i] = m
		if m != old {
			n++
		}
	}

	// Set spans.
	sp := make([]span, n)
	old, n := byte(0), 0
	for i, v := range mm {
		if v != old {
			if i != 0 {
				sp[n].slen = i - sp[n].start
				n++
			}
			sp[n].start = i
			sp[n].modes = v
			old = v
		}
	}
	sp[n].slen = len(mm) - sp[n].start
	return sp
}

/*
split returns the optimal split for the string described by sp at the
given QR version size class.

For the last span, for each valid mode j, create a segment
sp[len(sp)-1].seg[j] describing the span encoded in mode j, with its
weight set to the encoded length in bits.

Then walk backwards through the rest of the spans.  For each span i,
for each valid mode j, for each mode k valid for span i+1, create a
segment linking to next=sp[i+1].seg[k]; if k==j, merge the segments
instead.  Keep the chain with the smallest combined weight as
sp[i].seg[j].

Return the address of the segment in sp[0].seg with the smallest
weight.
*/
func split(sp []span, class int) *segment {
	const inf = 1 << 30
	// Process last span.  Create a segment for each valid mode.
	i := len(sp) - 1
	if i < 0 {
		return nil
	}
	for j := byte(0); j < modes; j++ {
		seg := &sp[i].seg[j]
		*seg = segment{weight: inf}
		if sp[i].modes>>j&1 != 0 {
			*seg = segment{
				start:  sp[i].start,
				slen:   sp[i].slen,
				weight: weight[j](sp[i].slen, class),
				mode:   j,
			}
		}
	}

	// Process the rest of the spans.
	for i--; i >= 0; i-- {
		v := &sp[i]
		for j := byte(0); j < modes; j++ {
			seg := &v.seg[j]
			*seg = segment{weight: inf}
			if v.modes>>j&1 == 0 {
				continue
			}
			w := weight[j](v.slen, class)
			ns := &sp[i+1].seg
			for k := byte(0); k < modes; k++ {
				next := &ns[k]
				if next.weight == inf {
					continue
				}
				c := segment{
					next:   next,
					start:  v.start,
					slen:   v.slen,
					weight: w,
					mode:   j,
				}
				if k == j {
					c.slen += c.next.slen
					c.next = c.next.next
					c.weight = weight[j](c.slen, class)
				}
				if c.next != nil {
					c.weight += c.next.weight
				}
				if c.weight < seg.weight {
					*seg = c
				}
			}
		}
	}

	// Choose the first segment with the smallest weight.
	seg := &sp[0].seg[0]
	for j := 1; j < modes; j++ {
		if sp[0].seg[j].weight < seg.weight {
			seg = &sp[0].seg[j]
		}
	}
	return seg
}

// segments converts a segment chain over text to coding segments.
func (s *segment) segments(text string) []coding.Segment {
	n := 0
	for c := s; c != nil; c = c.next {
		n++
	}
	segs := make([]coding.Segment, 0, n)
	for ; s != nil; s = s.next {
		t := text[s.start : s.start+s.slen]
		var seg coding.Segment
		switch s.mode {
		case numMode:
			seg, _ = coding.MakeNumeric(t)
		case alphaMode:
			seg, _ = coding.MakeAlphanumeric(t)
		default:
			seg = coding.MakeBytes([]byte(t))
		}
		segs = append(segs, seg)
	}
	return segs
}

// SplitText splits text into segments minimising the encoded size at
// the size class of v, switching between numeric, alphanumeric and
// byte modes where the headers pay for themselves.
func SplitText(text string, v coding.Version) []coding.Segment {
	seg := split(classify(text), v.SizeClass())
	if seg == nil {
		return nil
	}
	return seg.segments(text)
}

var classMax = [3]coding.Version{9, 26, 40}

// EncodeSplitText returns an encoding of text at the given error
// correction level, split optimally for the chosen version's size
// class.  Splits for larger size classes are tried as needed, as
// longer character count fields shift the optimum.
func EncodeSplitText(text string, level Level) (*Code, error) {
	sp := classify(text)
	for class := 0; ; class++ {
		seg := split(sp, class)
		var segs []coding.Segment
		if seg != nil {
			segs = seg.segments(text)
		}
		var min coding.Version = coding.MinVersion
		if class > 0 {
			min = classMax[class-1] + 1
		}
		cc, err := coding.EncodeAdvanced(segs, level, min,
			classMax[class], coding.AutoMask, true)
		if err == nil {
			return New(cc), nil
		}
		if class == 2 {
			return nil, err
		}
	}
}
