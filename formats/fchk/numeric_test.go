/*
 * numeric_test.go, part of goiodata.
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
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/RichRick1/iodata/basis"
)

//Round-trips symmetric matrices of every size from 1 to 6 through the
//triangular storage used by the checkpoint format.
func TestTriangleRoundTrip(Te *testing.T) {
	for n := 1; n <= 6; n++ {
		m := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				v := float64(i*n+j) + 0.25
				m.Set(i, j, v)
				m.Set(j, i, v)
			}
		}
		tri := denseToTriangle(m)
		if len(tri) != n*(n+1)/2 {
			Te.Errorf("size %d: triangle has %d elements, want %d", n, len(tri), n*(n+1)/2)
		}
		back := triangleToDense(tri)
		if !mat.Equal(m, back) {
			Te.Errorf("size %d: round trip changed the matrix", n)
		}
	}
}

func TestQuadrupolePermutation(Te *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6} //xx, xy, xz, yy, yz, zz
	want := []float64{1, 4, 6, 2, 3, 5} //xx, yy, zz, xy, xz, yz
	got := quadrupoleToCheckpoint(in)
	if !floats.Equal(got, want) {
		Te.Errorf("to checkpoint order: got %v, want %v", got, want)
	}
	back := quadrupoleToAlphabetical(got)
	if !floats.Equal(back, in) {
		Te.Errorf("inverse did not recover the input: got %v", back)
	}
}

//Representative shells: plain s, Cartesian p, pure and Cartesian d,
//pure f, and the combined SP shell sharing one exponent run.
func TestShellCodec(Te *testing.T) {
	exps := []float64{13.0, 1.96, 0.444}
	col := []float64{0.19, 0.65, 0.17}
	spcol := []float64{0.07, 0.40, 0.65}
	single := func(l int, kind byte) basis.Shell {
		return basis.Shell{
			Center:    0,
			AngMoms:   []int{l},
			Kinds:     []byte{kind},
			Exponents: exps,
			Coeffs:    mat.NewDense(3, 1, append([]float64(nil), col...)),
		}
	}
	spCoeffs := mat.NewDense(3, 2, nil)
	for i := 0; i < 3; i++ {
		spCoeffs.Set(i, 0, col[i])
		spCoeffs.Set(i, 1, spcol[i])
	}
	shells := []basis.Shell{
		single(0, basis.Cartesian),
		single(1, basis.Cartesian),
		{Center: 1, AngMoms: []int{0, 1}, Kinds: []byte{basis.Cartesian, basis.Cartesian},
			Exponents: exps, Coeffs: spCoeffs},
		single(2, basis.Pure),
		single(2, basis.Cartesian),
		single(3, basis.Pure),
	}
	wantTypes := []int{0, 1, -1, -2, 2, -3}
	var types, nprims, shellMap []int
	var allExps, cc1, cc2 []float64
	for i := range shells {
		code := encodeShellType(&shells[i])
		if code != wantTypes[i] {
			Te.Errorf("shell %d: encoded type %d, want %d", i, code, wantTypes[i])
		}
		types = append(types, code)
		nprims = append(nprims, shells[i].NPrim())
		shellMap = append(shellMap, shells[i].Center+1)
		allExps = append(allExps, shells[i].Exponents...)
		for j := 0; j < shells[i].NPrim(); j++ {
			cc1 = append(cc1, shells[i].Coeffs.At(j, 0))
			if code == -1 {
				cc2 = append(cc2, shells[i].Coeffs.At(j, 1))
			} else {
				cc2 = append(cc2, 0.0)
			}
		}
	}
	decoded, err := decodeShells("test.fchk", types, shellMap, nprims, allExps, cc1, cc2)
	if err != nil {
		Te.Error(err)
	}
	if len(decoded) != len(shells) {
		Te.Fatalf("decoded %d shells, want %d", len(decoded), len(shells))
	}
	for i := range decoded {
		fmt.Println("checking decoded shell", i)
		if decoded[i].Center != shells[i].Center {
			Te.Errorf("shell %d: center %d, want %d", i, decoded[i].Center, shells[i].Center)
		}
		if decoded[i].NCon() != shells[i].NCon() {
			Te.Errorf("shell %d: %d contractions, want %d", i, decoded[i].NCon(), shells[i].NCon())
		}
		for k, l := range shells[i].AngMoms {
			if decoded[i].AngMoms[k] != l {
				Te.Errorf("shell %d: angular momentum %d is %d, want %d", i, k, decoded[i].AngMoms[k], l)
			}
			if decoded[i].Kinds[k] != shells[i].Kinds[k] {
				Te.Errorf("shell %d: kind %d is %c, want %c", i, k, decoded[i].Kinds[k], shells[i].Kinds[k])
			}
		}
		if !floats.Equal(decoded[i].Exponents, shells[i].Exponents) {
			Te.Errorf("shell %d: exponents differ", i)
		}
		if !mat.Equal(decoded[i].Coeffs, shells[i].Coeffs) {
			Te.Errorf("shell %d: coefficients differ", i)
		}
		if encodeShellType(&decoded[i]) != wantTypes[i] {
			Te.Errorf("shell %d: re-encode gives %d, want %d", i, encodeShellType(&decoded[i]), wantTypes[i])
		}
	}
}
