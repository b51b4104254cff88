/*
 * fchk.go, part of goiodata.
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

// Package fchk reads and writes the Gaussian formatted checkpoint
// format. Importing the package registers it under the patterns *.fchk
// and *.fch.
package fchk

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/RichRick1/iodata"
	"github.com/RichRick1/iodata/basis"
	"github.com/RichRick1/iodata/orbitals"
)

func init() {
	iodata.Register(&iodata.Format{
		Name:     "FCHK",
		Patterns: []string{"*.fchk", "*.fch"},
		LoadOne:  LoadOne,
		LoadMany: func(lr *iodata.LineReader) (iodata.Trajectory, error) { return LoadMany(lr) },
		DumpOne:  DumpOne,
		DumpMany: DumpMany,
	})
}

//Gaussian run commands against the run types of the container.
var runTypes = map[string]string{
	"SP":   "energy",
	"FOpt": "opt",
	"Scan": "scan",
	"Freq": "freq",
}

//The fields LoadOne cares about. Everything else in the file is consumed
//and dropped.
var loadOnePatterns = []string{
	"Number of electrons", "Number of basis functions",
	"Number of independant functions", //g03 spelling
	"Number of independent functions", //g09, g16, ...
	"Number of alpha electrons", "Number of beta electrons",
	"Atomic numbers", "Current cartesian coordinates",
	"Real atomic weights",
	"Shell types", "Shell to atom map",
	"Number of primitives per shell", "Primitive exponents",
	"Contraction coefficients", "P(S=P) Contraction coefficients",
	"Alpha Orbital Energies", "Alpha MO coefficients",
	"Beta Orbital Energies", "Beta MO coefficients",
	"Total Energy", "Nuclear charges",
	"Total SCF Density", "Spin SCF Density",
	"Total MP2 Density", "Spin MP2 Density",
	"Total MP3 Density", "Spin MP3 Density",
	"Total CC Density", "Spin CC Density",
	"Total CI Density", "Spin CI Density",
	"Mulliken Charges", "ESP Charges", "NPA Charges",
	"Polarizability", "Dipole Moment", "Quadrupole Moment",
	"Cartesian Gradient", "Cartesian Force Constants", "MicOpt",
}

// LoadOne reads a single record from a formatted checkpoint file. The
// file is always consumed to its end. The load either fully succeeds or
// fails with a ParseError or ValidationError and no usable result.
func LoadOne(lr *iodata.LineReader) (*iodata.IOData, error) {
	store, err := readStore(lr, loadOnePatterns)
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	d := new(iodata.IOData)

	//the simple things
	d.Title = store.title
	d.LOT = strings.ToLower(store.lot)
	d.OBasisName = strings.ToLower(store.basisName)
	if rt, ok := runTypes[store.command]; ok {
		d.RunType = rt
	}
	if energy, ok := store.getReal("Total Energy"); ok {
		d.Energy = &energy
	}
	atnums, err := store.requireInts("Atomic numbers")
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	d.AtNums = atnums
	corenums, err := store.requireReals("Nuclear charges")
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	d.AtCoreNums = corenums
	coords, err := store.requireReals("Current cartesian coordinates")
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	if len(coords)%3 != 0 {
		return nil, &ValidationError{fmt.Sprintf("coordinate count %d is not a multiple of 3", len(coords)),
			store.filename, []string{"LoadOne"}}
	}
	d.AtCoords = mat.NewDense(len(coords)/3, 3, coords)
	if masses, ok := store.getReals("Real atomic weights"); ok {
		scaled := make([]float64, len(masses))
		for i, m := range masses {
			scaled[i] = m * iodata.Amu
		}
		d.AtMasses = scaled
	}
	if grad, ok := store.getReals("Cartesian Gradient"); ok {
		if len(grad)%3 != 0 {
			return nil, &ValidationError{fmt.Sprintf("gradient count %d is not a multiple of 3", len(grad)),
				store.filename, []string{"LoadOne"}}
		}
		d.AtGradient = mat.NewDense(len(grad)/3, 3, grad)
	}
	if hess, ok := store.getReals("Cartesian Force Constants"); ok {
		d.AtHessian = triangleToDense(hess)
	}
	if micopt, ok := store.getInts("MicOpt"); ok {
		frozen := make([]bool, len(micopt))
		for i, m := range micopt {
			frozen[i] = m == -2
		}
		d.AtFrozen = frozen
	}

	//the orbital basis set
	obasis, err := loadBasis(store)
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	d.OBasis = obasis
	nbasis, err := store.requireInt("Number of basis functions")
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}

	//density matrices
	oneRDMs := make(map[string]*mat.Dense)
	loadDensity(store, "Total SCF Density", oneRDMs, "scf")
	loadDensity(store, "Spin SCF Density", oneRDMs, "scf_spin")
	//only one of the levels of theory can be present, hence one key
	for _, lot := range []string{"MP2", "MP3", "CC", "CI"} {
		loadDensity(store, "Total "+lot+" Density", oneRDMs, "post_scf")
		loadDensity(store, "Spin "+lot+" Density", oneRDMs, "post_scf_spin")
	}

	//the wavefunction
	mo, openShell, err := loadOrbitals(store, nbasis)
	if err != nil {
		return nil, errDecorate(err, "LoadOne")
	}
	d.MO = mo
	if openShell && mo.Kind == orbitals.Restricted {
		//the total SCF density of a restricted open-shell run cannot be
		//reconstructed from this format, so it is dropped rather than
		//exposed wrong
		delete(oneRDMs, "scf")
	}
	if len(oneRDMs) > 0 {
		d.OneRDMs = oneRDMs
	}

	//properties
	if pol, ok := store.getReals("Polarizability"); ok {
		d.Polarizability = triangleToDense(pol)
	}
	moments := make(map[iodata.MomentKey][]float64)
	if dip, ok := store.getReals("Dipole Moment"); ok {
		moments[iodata.MomentKey{L: 1, Kind: 'c'}] = dip
	}
	if quad, ok := store.getReals("Quadrupole Moment"); ok {
		moments[iodata.MomentKey{L: 2, Kind: 'c'}] = quadrupoleToAlphabetical(quad)
	}
	if len(moments) > 0 {
		d.Moments = moments
	}
	atcharges := make(map[string][]float64)
	if q, ok := store.getReals("Mulliken Charges"); ok {
		atcharges["mulliken"] = q
	}
	if q, ok := store.getReals("ESP Charges"); ok {
		atcharges["esp"] = q
	}
	if q, ok := store.getReals("NPA Charges"); ok {
		atcharges["npa"] = q
	}
	if len(atcharges) > 0 {
		d.AtCharges = atcharges
	}
	return d, nil
}

// loadBasis assembles the shell list from the flat tables of the store.
func loadBasis(store *fieldStore) (*basis.MolecularBasis, error) {
	types, err := store.requireInts("Shell types")
	if err != nil {
		return nil, errDecorate(err, "loadBasis")
	}
	shellMap, err := store.requireInts("Shell to atom map")
	if err != nil {
		return nil, errDecorate(err, "loadBasis")
	}
	nprims, err := store.requireInts("Number of primitives per shell")
	if err != nil {
		return nil, errDecorate(err, "loadBasis")
	}
	exps, err := store.requireReals("Primitive exponents")
	if err != nil {
		return nil, errDecorate(err, "loadBasis")
	}
	ccoeffs, err := store.requireReals("Contraction coefficients")
	if err != nil {
		return nil, errDecorate(err, "loadBasis")
	}
	spcoeffs, _ := store.getReals("P(S=P) Contraction coefficients")
	shells, err := decodeShells(store.filename, types, shellMap, nprims, exps, ccoeffs, spcoeffs)
	if err != nil {
		return nil, errDecorate(err, "loadBasis")
	}
	return &basis.MolecularBasis{
		Shells:            shells,
		Conventions:       basis.GaussianConventions(9),
		PrimNormalization: "L2",
	}, nil
}

// loadDensity expands one triangular density field into the result map,
// if the field is present.
func loadDensity(store *fieldStore, label string, result map[string]*mat.Dense, key string) {
	if tri, ok := store.getReals(label); ok {
		result[key] = triangleToDense(tri)
	}
}

// loadOrbitals validates the electron counts and assembles the orbital
// set. The second return reports an open-shell configuration
// (alpha != beta).
func loadOrbitals(store *fieldStore, nbasis int) (*orbitals.MolecularOrbitals, bool, error) {
	//g03 wrote "independant"; later versions fixed the spelling. The
	//first spelling present wins, and the basis count is the fallback.
	nbasisIndep := nbasis
	if n, ok := store.getInt("Number of independant functions"); ok {
		nbasisIndep = n
	} else if n, ok := store.getInt("Number of independent functions"); ok {
		nbasisIndep = n
	}

	nalpha, err := store.requireInt("Number of alpha electrons")
	if err != nil {
		return nil, false, errDecorate(err, "loadOrbitals")
	}
	nbeta, err := store.requireInt("Number of beta electrons")
	if err != nil {
		return nil, false, errDecorate(err, "loadOrbitals")
	}
	if nalpha < 0 || nbeta < 0 || nalpha+nbeta <= 0 {
		return nil, false, &ValidationError{BadElectronCount, store.filename, []string{"loadOrbitals"}}
	}
	if nalpha < nbeta {
		return nil, false, &ValidationError{fmt.Sprintf("n_alpha=%d < n_beta=%d is not valid", nalpha, nbeta),
			store.filename, []string{"loadOrbitals"}}
	}

	energiesA, err := store.requireReals("Alpha Orbital Energies")
	if err != nil {
		return nil, false, errDecorate(err, "loadOrbitals")
	}
	norba := len(energiesA)
	coeffsA, err := store.requireReals("Alpha MO coefficients")
	if err != nil {
		return nil, false, errDecorate(err, "loadOrbitals")
	}
	if len(coeffsA) != nbasisIndep*nbasis {
		return nil, false, &ValidationError{fmt.Sprintf("Alpha MO coefficients hold %d values, want %d x %d",
			len(coeffsA), nbasisIndep, nbasis), store.filename, []string{"loadOrbitals"}}
	}
	//stored orbital-major: norb x nbasis row-major, transposed here to
	//basis-major
	coeffs := transposeFlat(coeffsA, nbasisIndep, nbasis)

	if energiesB, ok := store.getReals("Beta Orbital Energies"); ok {
		//unrestricted
		norbb := len(energiesB)
		coeffsBFlat, err := store.requireReals("Beta MO coefficients")
		if err != nil {
			return nil, false, errDecorate(err, "loadOrbitals")
		}
		if len(coeffsBFlat) != nbasisIndep*nbasis {
			return nil, false, &ValidationError{fmt.Sprintf("Beta MO coefficients hold %d values, want %d x %d",
				len(coeffsBFlat), nbasisIndep, nbasis), store.filename, []string{"loadOrbitals"}}
		}
		coeffsB := transposeFlat(coeffsBFlat, nbasisIndep, nbasis)
		full := mat.NewDense(nbasis, 2*nbasisIndep, nil)
		full.Slice(0, nbasis, 0, nbasisIndep).(*mat.Dense).Copy(coeffs)
		full.Slice(0, nbasis, nbasisIndep, 2*nbasisIndep).(*mat.Dense).Copy(coeffsB)
		energies := append(append([]float64(nil), energiesA...), energiesB...)
		occs := make([]float64, 2*nbasisIndep)
		for i := 0; i < nalpha; i++ {
			occs[i] = 1.0
		}
		for i := 0; i < nbeta; i++ {
			occs[nbasisIndep+i] = 1.0
		}
		mo := &orbitals.MolecularOrbitals{
			Kind:     orbitals.Unrestricted,
			NOrbA:    norba,
			NOrbB:    norbb,
			Occs:     occs,
			Coeffs:   full,
			Energies: energies,
		}
		return mo, nalpha != nbeta, nil
	}

	//restricted, closed or open shell. Occupations come from the
	//electron counts, not from any re-sorting by energy: the first beta
	//orbitals are doubly occupied, the next up to alpha singly.
	occs := make([]float64, nbasisIndep)
	for i := 0; i < nalpha && i < nbasisIndep; i++ {
		occs[i] = 1.0
	}
	for i := 0; i < nbeta && i < nbasisIndep; i++ {
		occs[i] = 2.0
	}
	mo := &orbitals.MolecularOrbitals{
		Kind:     orbitals.Restricted,
		NOrbA:    norba,
		NOrbB:    norba,
		Occs:     occs,
		Coeffs:   coeffs,
		Energies: append([]float64(nil), energiesA...),
	}
	return mo, nalpha != nbeta, nil
}

// transposeFlat reinterprets a flat pool as an norb x nbasis row-major
// matrix and returns its transpose as a fresh nbasis x norb matrix.
func transposeFlat(flat []float64, norb, nbasis int) *mat.Dense {
	src := mat.NewDense(norb, nbasis, flat)
	dst := mat.NewDense(nbasis, norb, nil)
	dst.Copy(src.T())
	return dst
}
