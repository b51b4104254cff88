/*
 * numeric.go, part of goiodata.
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

//Pure functions shared by the load and dump directions: triangular
//matrix storage, the quadrupole component orders and the shell type
//codes.

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/RichRick1/iodata/basis"
)

// triangleToDense expands a symmetric matrix stored as its unique
// elements (the lower triangle in row-major order, equivalently the
// upper one in column-major order) into a dense square matrix.
func triangleToDense(triangle []float64) *mat.Dense {
	n := int(math.Round((math.Sqrt(1+8*float64(len(triangle))) - 1) / 2))
	result := mat.NewDense(n, n, nil)
	begin := 0
	for irow := 0; irow < n; irow++ {
		for j := 0; j <= irow; j++ {
			v := triangle[begin+j]
			result.Set(irow, j, v)
			result.Set(j, irow, v)
		}
		begin += irow + 1
	}
	return result
}

// denseToTriangle flattens a square symmetric matrix to its lower
// triangle in row-major order. The strict inverse of triangleToDense.
func denseToTriangle(m *mat.Dense) []float64 {
	n, _ := m.Dims()
	triangle := make([]float64, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			triangle = append(triangle, m.At(i, j))
		}
	}
	return triangle
}

//The checkpoint format stores the six Cartesian quadrupole components as
//xx, yy, zz, xy, xz, yz; the container uses alphabetical ordering
//xx, xy, xz, yy, yz, zz. The two gather maps below are inverses.
var (
	quadToAlpha = [6]int{0, 3, 4, 1, 5, 2}
	quadToFchk  = [6]int{0, 3, 5, 1, 2, 4}
)

// quadrupoleToAlphabetical reorders a quadrupole read from a checkpoint
// into alphabetical component order.
func quadrupoleToAlphabetical(q []float64) []float64 {
	out := make([]float64, 6)
	for i, j := range quadToAlpha {
		out[i] = q[j]
	}
	return out
}

// quadrupoleToCheckpoint reorders an alphabetically ordered quadrupole
// into the checkpoint component order.
func quadrupoleToCheckpoint(q []float64) []float64 {
	out := make([]float64, 6)
	for i, j := range quadToFchk {
		out[i] = q[j]
	}
	return out
}

//Shell type codes: 0=s, 1=p, -1=sp, 2=6d, -2=5d, 3=10f, -3=7f, and so
//on. The sign carries the pure/Cartesian distinction for l>1, and -1 is
//the combined s+p shell.

// decodeShells builds the shell list from the flat checkpoint tables:
// one type code and primitive count per shell, a 1-based atom index per
// shell, and shared pools of exponents and contraction coefficients,
// with a second coefficient pool for the p column of SP shells.
func decodeShells(filename string, types, shellMap, nprims []int, exps, ccoeffs, spcoeffs []float64) ([]basis.Shell, error) {
	if len(shellMap) != len(types) || len(nprims) != len(types) {
		return nil, &ValidationError{fmt.Sprintf("shell tables disagree in length: %d types, %d atom indices, %d primitive counts",
			len(types), len(shellMap), len(nprims)), filename, []string{"decodeShells"}}
	}
	total := 0
	for _, n := range nprims {
		total += n
	}
	if len(exps) < total || len(ccoeffs) < total {
		return nil, &ValidationError{fmt.Sprintf("shells declare %d primitives but only %d exponents and %d coefficients are present",
			total, len(exps), len(ccoeffs)), filename, []string{"decodeShells"}}
	}
	shells := make([]basis.Shell, 0, len(types))
	counter := 0
	for i, n := range nprims {
		if types[i] == -1 && len(spcoeffs) < counter+n {
			return nil, &ValidationError{fmt.Sprintf("%s: P(S=P) Contraction coefficients", MissingField), filename, []string{"decodeShells"}}
		}
		if types[i] == -1 {
			//the combined s+p shell: two contraction columns over one
			//exponent run
			coeffs := mat.NewDense(n, 2, nil)
			for j := 0; j < n; j++ {
				coeffs.Set(j, 0, ccoeffs[counter+j])
				coeffs.Set(j, 1, spcoeffs[counter+j])
			}
			shells = append(shells, basis.Shell{
				Center:    shellMap[i] - 1,
				AngMoms:   []int{0, 1},
				Kinds:     []byte{basis.Cartesian, basis.Cartesian},
				Exponents: append([]float64(nil), exps[counter:counter+n]...),
				Coeffs:    coeffs,
			})
		} else {
			l := types[i]
			kind := basis.Cartesian
			if l < 0 {
				l = -l
				kind = basis.Pure
			}
			coeffs := mat.NewDense(n, 1, append([]float64(nil), ccoeffs[counter:counter+n]...))
			shells = append(shells, basis.Shell{
				Center:    shellMap[i] - 1,
				AngMoms:   []int{l},
				Kinds:     []byte{kind},
				Exponents: append([]float64(nil), exps[counter:counter+n]...),
				Coeffs:    coeffs,
			})
		}
		counter += n
	}
	return shells, nil
}

// encodeShellType recomputes the integer type code of a shell: -1 for
// the two-momentum SP shell, otherwise the angular momentum, negated for
// pure shells above p.
func encodeShellType(s *basis.Shell) int {
	if s.NCon() == 2 {
		return -1
	}
	code := s.AngMoms[0]
	if s.Kinds[0] == basis.Pure && code > 1 {
		code = -code
	}
	return code
}
