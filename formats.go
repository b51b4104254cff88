/*
 * formats.go, part of goiodata.
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
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// Trajectory is a finite sequence of records read (or to be written) one
// after another. Next returns the frames in order and a LastFrameError
// once they run out; the sequence cannot be rewound. Len is the total
// number of frames in the sequence.
type Trajectory interface {
	Next() (*IOData, error)
	Len() int
}

// Format describes one file format to the registry. Any of the four
// operation fields may be nil, meaning the format does not support that
// operation. Patterns are Unix shell wildcards matched against the
// lowercased base name of the file, after stripping a compression
// extension.
type Format struct {
	Name     string
	Patterns []string
	LoadOne  func(*LineReader) (*IOData, error)
	LoadMany func(*LineReader) (Trajectory, error)
	DumpOne  func(io.Writer, *IOData) error
	DumpMany func(io.Writer, Trajectory) error
}

// The registry. Built once, at process start, by the init functions of
// the codec packages; never mutated afterwards.
var formats []*Format

// Register adds a format to the registry. It is meant to be called from
// the init function of a codec package.
func Register(f *Format) {
	formats = append(formats, f)
}

// FindFormat returns the first registered format with a pattern matching
// the given file name.
func FindFormat(filename string) (*Format, error) {
	base := strings.ToLower(filepath.Base(stripCompression(filename)))
	for _, f := range formats {
		for _, pat := range f.Patterns {
			if ok, _ := path.Match(pat, base); ok {
				return f, nil
			}
		}
	}
	return nil, &IOErr{fmt.Sprintf("%s: %s", UnknownFormat, filename), []string{"FindFormat"}}
}

//Registry error messages.
const (
	UnknownFormat  = "no registered format matches the file name"
	NoSuchFeature  = "the format does not support the requested operation"
	NotValidRecord = "the loaded record is not internally consistent"
)

// LoadOne reads one record from the named file, dispatching on the file
// name, and validates its cross-field shapes before returning it.
func LoadOne(filename string) (*IOData, error) {
	f, err := FindFormat(filename)
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	if f.LoadOne == nil {
		return nil, &IOErr{fmt.Sprintf("%s: LoadOne on %s", NoSuchFeature, f.Name), []string{"LoadOne"}}
	}
	lr, err := NewLineReader(filename)
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	defer lr.Close()
	d, err := f.LoadOne(lr)
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	if err := d.Check(); err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	return d, nil
}

// LoadMany reads a trajectory from the named file. The file is fully
// consumed and released before the call returns; the frames themselves
// are assembled lazily by the returned Trajectory.
func LoadMany(filename string) (Trajectory, error) {
	f, err := FindFormat(filename)
	if err != nil {
		return nil, errDecorate(err, "LoadMany")
	}
	if f.LoadMany == nil {
		return nil, &IOErr{fmt.Sprintf("%s: LoadMany on %s", NoSuchFeature, f.Name), []string{"LoadMany"}}
	}
	lr, err := NewLineReader(filename)
	if err != nil {
		return nil, errDecorate(err, "LoadMany")
	}
	defer lr.Close()
	t, err := f.LoadMany(lr)
	if err != nil {
		return nil, errDecorate(err, "LoadMany")
	}
	return t, nil
}

// DumpOne writes one record to the named file, dispatching on the file
// name. Absent optional fields are silently omitted.
func DumpOne(d *IOData, filename string) error {
	f, err := FindFormat(filename)
	if err != nil {
		return errDecorate(err, "DumpOne")
	}
	if f.DumpOne == nil {
		return &IOErr{fmt.Sprintf("%s: DumpOne on %s", NoSuchFeature, f.Name), []string{"DumpOne"}}
	}
	w, err := openOutput(filename)
	if err != nil {
		return errDecorate(err, "DumpOne")
	}
	err = f.DumpOne(w, d)
	err2 := w.Close()
	if err != nil {
		return errDecorate(err, "DumpOne")
	}
	if err2 != nil {
		return &IOErr{err2.Error(), []string{"Close", "DumpOne"}}
	}
	return nil
}

// DumpMany writes every frame of a trajectory to the named file.
func DumpMany(t Trajectory, filename string) error {
	f, err := FindFormat(filename)
	if err != nil {
		return errDecorate(err, "DumpMany")
	}
	if f.DumpMany == nil {
		return &IOErr{fmt.Sprintf("%s: DumpMany on %s", NoSuchFeature, f.Name), []string{"DumpMany"}}
	}
	w, err := openOutput(filename)
	if err != nil {
		return errDecorate(err, "DumpMany")
	}
	err = f.DumpMany(w, t)
	err2 := w.Close()
	if err != nil {
		return errDecorate(err, "DumpMany")
	}
	if err2 != nil {
		return &IOErr{err2.Error(), []string{"Close", "DumpMany"}}
	}
	return nil
}

// Frames is a slice-backed Trajectory, for dumping records that are
// already in memory.
type Frames struct {
	frames []*IOData
	i      int
}

// NewFrames wraps a slice of records into a single-pass Trajectory.
func NewFrames(frames []*IOData) *Frames {
	return &Frames{frames: frames}
}

func (t *Frames) Len() int { return len(t.frames) }

func (t *Frames) Next() (*IOData, error) {
	if t.i >= len(t.frames) {
		return nil, &lastFrame{[]string{"Next"}}
	}
	d := t.frames[t.i]
	t.i++
	return d, nil
}

//errDecorate asserts that the error implements Error and decorates it
//with the caller's name before returning it. Used only with errors known
//to come from this library.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
