/*
 * doc.go, part of goiodata.
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

// Package iodata reads and writes quantum chemistry data files.
//
// The package holds the IOData record container, the registry of file
// formats and the front doors LoadOne, LoadMany, DumpOne and DumpMany.
// The actual codecs live in the subdirectories of formats/ and register
// themselves when imported, so a program that wants FCHK support does:
//
//	import (
//		"github.com/RichRick1/iodata"
//		_ "github.com/RichRick1/iodata/formats/fchk"
//	)
//
//	mol, err := iodata.LoadOne("water.fchk")
//
// All quantities are in atomic units unless stated otherwise.
package iodata
