/*
 * iodata.go, part of goiodata.
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
	"gonum.org/v1/gonum/mat"

	"github.com/RichRick1/iodata/basis"
	"github.com/RichRick1/iodata/orbitals"
)

// MomentKey identifies one multipole moment: angular momentum L and kind
// 'c' (Cartesian) or 'p' (pure). The dipole is {1, 'c'}, the Cartesian
// quadrupole {2, 'c'}.
type MomentKey struct {
	L    int
	Kind byte
}

// TrajStep places one record inside an optimization or IRC trajectory.
// Points count distinct values of a constraint (or the single
// optimization); steps count geometries within one point. Indices are
// 0-based. ReactionCoordinate is only set for IRC trajectories.
type TrajStep struct {
	IPoint             int
	NPoint             int
	IStep              int
	NStep              int
	ReactionCoordinate *float64
}

// IOData is a container for the data loaded from (or to be written to) a
// single file or trajectory frame. Every field is optional: absence is a
// nil pointer, nil slice or nil map, never a zero value with meaning.
// Codecs read and write only the fields listed here.
type IOData struct {
	//header-ish metadata
	Title      string
	RunType    string //energy, opt, scan or freq
	LOT        string //level of theory, lowercase
	OBasisName string //name of the orbital basis set, lowercase

	//geometry
	AtNums     []int
	AtCoreNums []float64 //nuclear charges, modified by pseudopotentials
	AtCoords   *mat.Dense //natom x 3, Bohr
	AtMasses   []float64  //atomic units, i.e. electron masses
	AtFrozen   []bool
	AtGradient *mat.Dense //natom x 3
	AtHessian  *mat.Dense //3natom x 3natom

	//scalars. Pointers, so zero values can be told apart from absence.
	Energy *float64
	Charge *float64

	//electronic structure
	OBasis  *basis.MolecularBasis
	MO      *orbitals.MolecularOrbitals
	OneRDMs map[string]*mat.Dense //keys: scf, scf_spin, post_scf, post_scf_spin

	//properties
	AtCharges      map[string][]float64 //keys: mulliken, esp, npa
	Moments        map[MomentKey][]float64
	Polarizability *mat.Dense //3 x 3

	//set on frames produced by LoadMany, nil otherwise
	Traj *TrajStep
}

// NAtom returns the number of atoms, taken from the first geometry field
// present, or 0 when the record carries no geometry at all.
func (d *IOData) NAtom() int {
	if d.AtNums != nil {
		return len(d.AtNums)
	}
	if d.AtCoreNums != nil {
		return len(d.AtCoreNums)
	}
	if d.AtCoords != nil {
		r, _ := d.AtCoords.Dims()
		return r
	}
	if d.AtMasses != nil {
		return len(d.AtMasses)
	}
	return 0
}

// NElec returns the number of electrons and whether it could be derived:
// from the orbital occupations when orbitals are present, otherwise from
// the nuclear charges and the total charge.
func (d *IOData) NElec() (float64, bool) {
	if d.MO != nil {
		n := 0.0
		for _, o := range d.MO.Occs {
			n += o
		}
		return n, true
	}
	if d.AtCoreNums != nil && d.Charge != nil {
		n := 0.0
		for _, q := range d.AtCoreNums {
			n += q
		}
		return n - *d.Charge, true
	}
	return 0, false
}

// ChargeValue returns the total charge and whether it could be derived.
// An explicit Charge field wins; otherwise it is the nuclear charge sum
// minus the electron count.
func (d *IOData) ChargeValue() (float64, bool) {
	if d.Charge != nil {
		return *d.Charge, true
	}
	if d.AtCoreNums != nil && d.MO != nil {
		nelec, _ := d.NElec()
		q := 0.0
		for _, c := range d.AtCoreNums {
			q += c
		}
		return q - nelec, true
	}
	return 0, false
}

// Spinpol returns the spin polarization (number of unpaired electrons)
// and whether orbitals were present to derive it.
func (d *IOData) Spinpol() (float64, bool) {
	if d.MO == nil {
		return 0, false
	}
	na := 0.0
	for _, o := range d.MO.OccsA() {
		na += o
	}
	nb := 0.0
	for _, o := range d.MO.OccsB() {
		nb += o
	}
	return na - nb, true
}
