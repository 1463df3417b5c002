// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qrgen-worker encodes QR codes in batch for black box comparison
// against other encoder implementations.
//
// It reads whitespace-separated decimal integers from standard input
// in a loop: the data length (or -1 to exit), that many byte values,
// the error correction level (0 to 3), the minimum and maximum
// version, the mask (-1 for automatic) and the boost flag (0 or 1).
// For each request it writes the chosen version followed by the
// modules of the symbol in row major order as 0s and 1s, one integer
// per line, or a single -1 if the data does not fit.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/unixdj/qrgen/coding"
)

type intReader struct {
	s *bufio.Scanner
}

func (r intReader) read() int {
	if !r.s.Scan() {
		log.Fatalln("qrgen-worker: unexpected end of input")
	}
	n, err := strconv.Atoi(r.s.Text())
	if err != nil {
		log.Fatalln("qrgen-worker:", err)
	}
	return n
}

func main() {
	log.SetFlags(0)
	s := bufio.NewScanner(os.Stdin)
	s.Split(bufio.ScanWords)
	in := intReader{s}
	out := bufio.NewWriter(os.Stdout)

	for {
		length := in.read()
		if length == -1 {
			return
		}
		data := make([]byte, length)
		ascii := true
		for i := range data {
			b := in.read()
			if b < 0 || b > 255 {
				log.Fatalln("qrgen-worker: byte out of range")
			}
			data[i] = byte(b)
			ascii = ascii && b < 128
		}
		level := coding.Level(in.read())
		minv := coding.Version(in.read())
		maxv := coding.Version(in.read())
		mask := in.read()
		boost := in.read() != 0

		var segs []coding.Segment
		if ascii {
			segs = coding.MakeSegments(string(data))
		} else {
			segs = []coding.Segment{coding.MakeBytes(data)}
		}
		c, err := coding.EncodeAdvanced(segs, level, minv, maxv,
			mask, boost)
		if err != nil {
			fmt.Fprintln(out, -1)
		} else {
			fmt.Fprintln(out, int(c.Version()))
			for y := 0; y < c.Size(); y++ {
				for x := 0; x < c.Size(); x++ {
					b := 0
					if c.Module(x, y) {
						b = 1
					}
					fmt.Fprintln(out, b)
				}
			}
		}
		if err := out.Flush(); err != nil {
			log.Fatalln("qrgen-worker:", err)
		}
	}
}
