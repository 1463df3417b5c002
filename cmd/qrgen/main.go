// Copyright 2025 The qrgen Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qrgen generates QR codes.
package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	scale    int            // scale
	border   int            // quiet zone
	fn       string         // filename
	lev      qrgen.Level    // QR correction level
	minv     coding.Version // minimum QR version
	maxv     coding.Version // maximum QR version
	mask     int            // forced mask, or AutoMask
	format   int            // output file format
	rev      bool           // reverse colours
	eci      int            // ECI segment value
	eciflag  bool           // ECI flag
	byteOnly bool           // byte mode only
	kanji    bool           // kanji mode only
	noBoost  bool           // keep exact correction level
	upper    bool           // uppercase
}{
	border: -1,
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	getopt.CommandLine.PrintUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	fmt.Println("QR code generator")
	getopt.CommandLine.PrintUsage(os.Stdout)
	os.Exit(0)
}

var formats = []string{
	"png", "pngi", "PNG", "PNGi", "pbm", "pbmi",
	"utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*qrgen.Code, io.Writer) error{
	(*qrgen.Code).EncodePNG,
	func(c *qrgen.Code, w io.Writer) error {
		return png.Encode(w, c.Image())
	},
	(*qrgen.Code).EncodePBM,
	func(c *qrgen.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	ascii,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.SetParameters("[string ...]")
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.kanji, 'k', "encode entire data in kanji mode")
	getopt.Flag(&g.upper, 'i', "ignore case, convert input to uppercase")
	getopt.Flag(&g.noBoost, 'b',
		"keep the exact error correction level, do not boost")
	getopt.Flag(&g.border, 'm', "quiet zone modules [4]", "width")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output [-]`, "file")
	getopt.Flag(&g.eciflag, 'e', "encode ECI segment "+
		"(default: UTF-8, or as set with -E)")
	eci := getopt.Signed('E', -1,
		&getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: 999999},
		"ECI assignment value, implies -e", "eci")
	ver := getopt.Unsigned('v', 1,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"minimum QR version [1]", "version")
	maxver := getopt.Unsigned('V', 40,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"maximum QR version [40]", "version")
	mask := getopt.Signed('M', -1,
		&getopt.SignedLimit{Base: 0, Bits: 4, Min: -1, Max: 7},
		"force mask pattern, or -1 for automatic [-1]", "mask")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', 8,
		&getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 1, Max: 1 << 16},
		`image pixels per QR module; `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.byteOnly && g.kanji {
		fmt.Fprintln(os.Stderr, "-8 and -k are incompatible")
		usage()
	}
	g.scale = int(*scale)
	g.minv = coding.Version(*ver)
	g.maxv = coding.Version(*maxver)
	if g.minv > g.maxv {
		fmt.Fprintln(os.Stderr, "-v exceeds -V")
		usage()
	}
	g.mask = int(*mask)
	g.lev = qrgen.Level(strings.Index("lmqhLMQH", *lev) & 3)
	g.eci = int(*eci)
	if g.eci >= 0 {
		g.eciflag = true
	} else if g.eciflag {
		g.eci = qrgen.UTF8ECI
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	var segs []coding.Segment
	if g.eciflag {
		e, err := coding.MakeECI(uint32(g.eci))
		if err != nil {
			log.Fatalln(err)
		}
		segs = append(segs, e)
	}
	switch {
	case g.byteOnly:
		segs = append(segs, coding.MakeBytes([]byte(s)))
	case g.kanji:
		k, err := coding.MakeKanjiText(s)
		if err != nil {
			log.Fatalln(err)
		}
		segs = append(segs, k)
	default:
		segs = append(segs, qrgen.SplitText(s, g.maxv)...)
	}

	cc, err := coding.EncodeAdvanced(segs, g.lev, g.minv, g.maxv,
		g.mask, !g.noBoost)
	if err != nil {
		log.Fatalln(err)
	}
	write(qrgen.New(cc))
}

func write(c *qrgen.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666); err != nil {
			log.Fatalln(err)
		}
	}
	c.Scale = g.scale
	c.Reverse = g.rev
	if g.border >= 0 {
		c.Border = g.border
	}
	err := encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func ascii(c *qrgen.Code, w io.Writer) error {
	siz := c.Size()
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != c.Reverse {
				p = '#'
			}
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
