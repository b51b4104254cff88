/*
 * orbitals_test.go, part of goiodata.
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

package orbitals

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestRestrictedChannels(Te *testing.T) {
	//a doublet-like open shell: 3 alpha, 2 beta
	mo := &MolecularOrbitals{
		Kind:     Restricted,
		NOrbA:    3,
		NOrbB:    3,
		Occs:     []float64{2, 2, 1},
		Coeffs:   mat.NewDense(4, 3, nil),
		Energies: []float64{-1.5, -0.8, -0.3},
	}
	if mo.NOrb() != 3 {
		Te.Errorf("NOrb: %d", mo.NOrb())
	}
	if !floats.Equal(mo.OccsA(), []float64{1, 1, 1}) {
		Te.Errorf("alpha occupations: %v", mo.OccsA())
	}
	if !floats.Equal(mo.OccsB(), []float64{1, 1, 0}) {
		Te.Errorf("beta occupations: %v", mo.OccsB())
	}
	if mo.NAlpha() != 3 || mo.NBeta() != 2 {
		Te.Errorf("electron counts: %d %d", mo.NAlpha(), mo.NBeta())
	}
	//both channels share the spatial data
	if &mo.EnergiesA()[0] != &mo.EnergiesB()[0] {
		Te.Error("restricted energy channels are not shared")
	}
	if mo.CoeffsA() != mo.CoeffsB() {
		Te.Error("restricted coefficient channels are not shared")
	}
}

func TestUnrestrictedChannels(Te *testing.T) {
	coeffs := mat.NewDense(4, 5, nil)
	coeffs.Set(0, 0, 1.0)
	coeffs.Set(0, 3, 2.0)
	mo := &MolecularOrbitals{
		Kind:     Unrestricted,
		NOrbA:    3,
		NOrbB:    2,
		Occs:     []float64{1, 1, 0, 1, 0},
		Coeffs:   coeffs,
		Energies: []float64{-1.4, -0.7, -0.2, -1.3, -0.6},
	}
	if mo.NOrb() != 5 {
		Te.Errorf("NOrb: %d", mo.NOrb())
	}
	if !floats.Equal(mo.OccsA(), []float64{1, 1, 0}) {
		Te.Errorf("alpha occupations: %v", mo.OccsA())
	}
	if !floats.Equal(mo.OccsB(), []float64{1, 0}) {
		Te.Errorf("beta occupations: %v", mo.OccsB())
	}
	if mo.NAlpha() != 2 || mo.NBeta() != 1 {
		Te.Errorf("electron counts: %d %d", mo.NAlpha(), mo.NBeta())
	}
	if !floats.Equal(mo.EnergiesB(), []float64{-1.3, -0.6}) {
		Te.Errorf("beta energies: %v", mo.EnergiesB())
	}
	a := mo.CoeffsA()
	b := mo.CoeffsB()
	if r, c := a.Dims(); r != 4 || c != 3 {
		Te.Errorf("alpha block is %dx%d", r, c)
	}
	if r, c := b.Dims(); r != 4 || c != 2 {
		Te.Errorf("beta block is %dx%d", r, c)
	}
	if a.At(0, 0) != 1.0 || b.At(0, 0) != 2.0 {
		Te.Error("the blocks do not view the combined matrix")
	}
	//the views share backing storage with the combined matrix
	coeffs.Set(0, 4, 7.0)
	if b.At(0, 1) != 7.0 {
		Te.Error("the beta block is a copy, not a view")
	}
}
