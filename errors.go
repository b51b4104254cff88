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

package iodata

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each call appends the name of the calling function, plus, optionally,
// any relevant extra information, to the decoration trail, and returns
// the trail resulting from the current call. If passed an empty string it
// just returns the current trail.
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is the interface for errors tied to one data file. Critical
// distinguishes real problems from benign conditions such as running out
// of trajectory frames.
type FileError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError signals the normal exhaustion of a trajectory. It adds a
// do-nothing method so it can be filtered in a type switch before any
// other FileError handling.
type LastFrameError interface {
	FileError
	NormalLastFrameTermination() //does nothing, just separates this interface from other FileError's
}

// IOErr is the concrete error type for the operations of the root
// package (registry lookups, container validation, file plumbing).
type IOErr struct {
	msg  string
	deco []string
}

func (err *IOErr) Error() string { return err.msg }

func (err *IOErr) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// lastFrame is the LastFrameError returned by the slice-backed
// Trajectory in this package. Codec packages define their own.
type lastFrame struct {
	deco []string
}

func (err *lastFrame) NormalLastFrameTermination() {}

func (err *lastFrame) Error() string { return "EOF" }

func (err *lastFrame) Critical() bool { return false }

func (err *lastFrame) FileName() string { return "" }

func (err *lastFrame) Format() string { return "memory" }

func (err *lastFrame) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
