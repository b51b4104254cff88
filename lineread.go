/*
 * lineread.go, part of goiodata.
 *
 * Copyright 2024 The goiodata developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package iodata

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"io"
	"log"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// LineReader walks over the physical lines of a text data file, keeping
// track of the current position so codecs can report it in their errors.
// Files ending in .gz, .dfl or .zst are decompressed on the fly.
type LineReader struct {
	name    string
	lineno  int
	r       *bufio.Reader
	done    bool
	closers []io.Closer
}

// NewLineReader opens the named file for line-by-line reading,
// decompressing it first if the extension asks for it.
func NewLineReader(name string) (*LineReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &IOErr{err.Error(), []string{"os.Open", "NewLineReader"}}
	}
	lr := new(LineReader)
	lr.name = name
	lr.closers = append(lr.closers, f)
	var src io.Reader = f
	switch strings.ToLower(lastExtension(name)) {
	case "gz":
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, &IOErr{err.Error(), []string{"gzip.NewReader", "NewLineReader"}}
		}
		lr.closers = append(lr.closers, gz)
		src = gz
	case "dfl":
		df := flate.NewReader(bufio.NewReader(f))
		lr.closers = append(lr.closers, df)
		src = df
	case "zst":
		zr, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, &IOErr{err.Error(), []string{"zstd.NewReader", "NewLineReader"}}
		}
		rc := zr.IOReadCloser()
		lr.closers = append(lr.closers, rc)
		src = rc
	}
	lr.r = bufio.NewReader(src)
	return lr, nil
}

// NewLineReaderFrom wraps an already open stream. The given name is only
// used to report positions in errors.
func NewLineReaderFrom(name string, r io.Reader) *LineReader {
	return &LineReader{name: name, r: bufio.NewReader(r)}
}

// Next returns the next line without its trailing newline. It returns
// io.EOF, and only io.EOF, when the source is exhausted.
func (lr *LineReader) Next() (string, error) {
	if lr.done {
		return "", io.EOF
	}
	line, err := lr.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", &IOErr{err.Error(), []string{"bufio.ReadString", "Next"}}
		}
		lr.done = true
		if line == "" {
			return "", io.EOF
		}
		//a last line without a newline still counts
	}
	lr.lineno++
	return strings.TrimRight(line, "\r\n"), nil
}

// Name returns the name of the underlying file.
func (lr *LineReader) Name() string { return lr.name }

// LineNo returns the number of the last line handed out by Next, starting
// at 1. It is 0 before the first call.
func (lr *LineReader) LineNo() int { return lr.lineno }

// Close releases the underlying file, if any.
func (lr *LineReader) Close() error {
	var ret error
	for i := len(lr.closers) - 1; i >= 0; i-- {
		if err := lr.closers[i].Close(); err != nil {
			ret = err
		}
	}
	lr.closers = nil
	return ret
}

// openOutput opens the named file for writing, compressing according to
// the extension. An unrecognized extension gets plain text.
func openOutput(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, &IOErr{err.Error(), []string{"os.Create", "openOutput"}}
	}
	switch strings.ToLower(lastExtension(name)) {
	case "gz":
		return stacked{gzip.NewWriter(f), f}, nil
	case "zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, &IOErr{err.Error(), []string{"zstd.NewWriter", "openOutput"}}
		}
		return stacked{zw, f}, nil
	case "dfl":
		df, err := flate.NewWriter(f, flate.DefaultCompression)
		if err != nil {
			f.Close()
			return nil, &IOErr{err.Error(), []string{"flate.NewWriter", "openOutput"}}
		}
		return stacked{df, f}, nil
	default:
		return f, nil
	}
}

// stacked is a compressing writer plus the file under it, closed in order.
type stacked struct {
	io.WriteCloser
	f *os.File
}

func (s stacked) Close() error {
	err := s.WriteCloser.Close()
	err2 := s.f.Close()
	if err != nil {
		return err
	}
	return err2
}

func lastExtension(name string) string {
	temp := strings.Split(name, ".")
	if len(temp) < 2 {
		return ""
	}
	return temp[len(temp)-1]
}

// stripCompression removes a trailing compression extension so pattern
// matching sees the real format extension of, say, "mol.fchk.gz".
func stripCompression(name string) string {
	switch strings.ToLower(lastExtension(name)) {
	case "gz", "zst", "dfl":
		i := strings.LastIndex(name, ".")
		if i < 0 {
			//can't happen with a non-empty extension, but better safe
			log.Printf("goiodata: can't strip compression extension from %s", name)
			return name
		}
		return name[:i]
	}
	return name
}
