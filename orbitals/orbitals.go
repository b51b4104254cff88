/*
 * orbitals.go, part of goiodata.
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

// Package orbitals holds molecular orbital data in either the restricted
// or the unrestricted representation.
package orbitals

import (
	"gonum.org/v1/gonum/mat"
)

// Orbital representation kinds.
const (
	Restricted   = "restricted"
	Unrestricted = "unrestricted"
)

// MolecularOrbitals is a set of molecular orbitals. In the restricted
// representation the alpha and beta channels share the same NOrbA
// spatial orbitals (NOrbB==NOrbA) and Coeffs has NOrbA columns, with
// occupations running from 0 to 2. In the unrestricted representation
// Coeffs holds the NOrbA alpha columns followed by the NOrbB beta
// columns, Energies and Occs are concatenated the same way, and
// occupations run from 0 to 1.
type MolecularOrbitals struct {
	Kind  string
	NOrbA int
	NOrbB int
	Occs  []float64
	//Coefficient matrix, nbasis rows.
	Coeffs   *mat.Dense
	Energies []float64
	//Symmetry labels, one per orbital. May be nil.
	Irreps []string
}

// NOrb returns the total number of columns in the coefficient matrix.
func (mo *MolecularOrbitals) NOrb() int {
	if mo.Kind == Unrestricted {
		return mo.NOrbA + mo.NOrbB
	}
	return mo.NOrbA
}

// OccsA returns the alpha-channel occupations. For the restricted kind
// these are the total occupations clipped to [0, 1].
func (mo *MolecularOrbitals) OccsA() []float64 {
	if mo.Kind == Unrestricted {
		return mo.Occs[:mo.NOrbA]
	}
	occsa := make([]float64, len(mo.Occs))
	for i, o := range mo.Occs {
		if o > 1 {
			o = 1
		}
		occsa[i] = o
	}
	return occsa
}

// OccsB returns the beta-channel occupations. For the restricted kind
// these are the total occupations minus the alpha ones.
func (mo *MolecularOrbitals) OccsB() []float64 {
	if mo.Kind == Unrestricted {
		return mo.Occs[mo.NOrbA:]
	}
	occsa := mo.OccsA()
	occsb := make([]float64, len(mo.Occs))
	for i, o := range mo.Occs {
		occsb[i] = o - occsa[i]
	}
	return occsb
}

// NAlpha returns the number of alpha electrons, rounded down.
func (mo *MolecularOrbitals) NAlpha() int {
	return int(sum(mo.OccsA()))
}

// NBeta returns the number of beta electrons, rounded down.
func (mo *MolecularOrbitals) NBeta() int {
	return int(sum(mo.OccsB()))
}

// EnergiesA returns the alpha orbital energies.
func (mo *MolecularOrbitals) EnergiesA() []float64 {
	if mo.Kind == Unrestricted {
		return mo.Energies[:mo.NOrbA]
	}
	return mo.Energies
}

// EnergiesB returns the beta orbital energies. For the restricted kind
// they are the same slice as the alpha ones.
func (mo *MolecularOrbitals) EnergiesB() []float64 {
	if mo.Kind == Unrestricted {
		return mo.Energies[mo.NOrbA:]
	}
	return mo.Energies
}

// CoeffsA returns the alpha coefficient block. The matrix is shared with
// Coeffs, not copied.
func (mo *MolecularOrbitals) CoeffsA() *mat.Dense {
	if mo.Kind == Unrestricted {
		r, _ := mo.Coeffs.Dims()
		return mo.Coeffs.Slice(0, r, 0, mo.NOrbA).(*mat.Dense)
	}
	return mo.Coeffs
}

// CoeffsB returns the beta coefficient block. The matrix is shared with
// Coeffs, not copied.
func (mo *MolecularOrbitals) CoeffsB() *mat.Dense {
	if mo.Kind == Unrestricted {
		r, c := mo.Coeffs.Dims()
		return mo.Coeffs.Slice(0, r, mo.NOrbA, c).(*mat.Dense)
	}
	return mo.Coeffs
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
