/*
 * constants.go, part of goiodata.
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

//Conversion factors to and from atomic units.
const (
	Amu    = 1.8228884862173131e3 //unified atomic mass unit in electron masses
	A2Bohr = 1.889725989
	Bohr2A = 1 / 1.889725989
	H2Kcal = 627.509 //Hartree to Kcal/mol
	Kcal2H = 1 / 627.509
	H2eV   = 27.211386245988
	Cal2J  = 4.184
)
