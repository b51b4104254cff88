/*
 * errors.go, part of goiodata.
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

package fchk

import (
	"fmt"

	"github.com/RichRick1/iodata"
)

// ParseError reports malformed text: a bad header, an unexpected token
// count, a missing N= marker or a token that does not parse as its
// declared type. It carries the file position and the offending text.
// It aborts the whole read. Fulfills iodata.Error and iodata.FileError.
type ParseError struct {
	message  string
	filename string
	line     int
	deco     []string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("FCHK file %s, line %d: %s", err.filename, err.line, err.message)
}

func (err *ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *ParseError) FileName() string { return err.filename }

func (err *ParseError) Format() string { return "FCHK" }

func (err *ParseError) Critical() bool { return true }

// Line returns the number of the offending line.
func (err *ParseError) Line() int { return err.line }

// parseErr builds a ParseError at the current position of the reader.
func parseErr(lr *iodata.LineReader, message string, caller string) *ParseError {
	return &ParseError{message, lr.Name(), lr.LineNo(), []string{caller}}
}

// ValidationError reports data that tokenized fine but is not a valid
// record: a bad electron configuration or a trajectory whose actual step
// count disagrees with its own declared one. Like ParseError it is
// fatal; the two are distinct so callers can tell a broken file from an
// impossible one. Fulfills iodata.Error and iodata.FileError.
type ValidationError struct {
	message  string
	filename string
	deco     []string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("FCHK file %s: %s", err.filename, err.message)
}

func (err *ValidationError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *ValidationError) FileName() string { return err.filename }

func (err *ValidationError) Format() string { return "FCHK" }

func (err *ValidationError) Critical() bool { return true }

//Error messages.
const (
	BadHeader        = "the second line should contain two or three words"
	MissingNEq       = "expected N= not found"
	BadElectronCount = "the number of electrons is not positive"
	MissingField     = "a required field is missing"
	BadTrajectory    = "could not find an IRC or Optimization trajectory"
	BadStepCount     = "declared and actual numbers of geometries disagree"
)

// lastFrameError fulfills iodata.LastFrameError: the harmless signal
// that a trajectory has no more frames.
type lastFrameError struct {
	deco     []string
	fileName string
}

//lastFrameError does nothing
func (err *lastFrameError) NormalLastFrameTermination() {}

func (err *lastFrameError) FileName() string { return err.fileName }

func (err *lastFrameError) Error() string { return "EOF" }

func (err *lastFrameError) Critical() bool { return false }

func (err *lastFrameError) Format() string { return "FCHK" }

func (err *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

//errDecorate is a helper function that asserts that the error implements
//iodata.Error and decorates it with the caller's name before returning
//it. If used with any other error it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(iodata.Error)
	err2.Decorate(caller)
	return err2
}
