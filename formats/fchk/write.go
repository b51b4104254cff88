/*
 * write.go, part of goiodata.
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
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/RichRick1/iodata"
	"github.com/RichRick1/iodata/basis"
)

//The checkpoint format is rigid: 40-column label, 3-space gap, type
//code, then either one right-justified value (12 columns for integers,
//16 with 8 decimals for reals) or "N=", the element count, and the
//values wrapped at 6 integers or 5 reals per line.

func dumpIntScalar(w io.Writer, name string, val int) error {
	_, err := fmt.Fprintf(w, "%-40s   I     %12d\n", name, val)
	return err
}

func dumpRealScalar(w io.Writer, name string, val float64) error {
	_, err := fmt.Fprintf(w, "%-40s   R     % 16.8E\n", name, val)
	return err
}

// dumpIntArray writes an integer array field. An empty array is a no-op,
// not an error.
func dumpIntArray(w io.Writer, name string, vals []int) error {
	if len(vals) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%-40s   I   N=%12d\n", name, len(vals)); err != nil {
		return err
	}
	for i, v := range vals {
		if _, err := fmt.Fprintf(w, "%12d", v); err != nil {
			return err
		}
		if (i+1)%6 == 0 || i == len(vals)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// dumpRealArray writes a real array field. An empty array is a no-op.
func dumpRealArray(w io.Writer, name string, vals []float64) error {
	if len(vals) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%-40s   R   N=%12d\n", name, len(vals)); err != nil {
		return err
	}
	for i, v := range vals {
		if _, err := fmt.Fprintf(w, "% 16.8E", v); err != nil {
			return err
		}
		if (i+1)%5 == 0 || i == len(vals)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// DumpOne writes one record as a formatted checkpoint file. Absent
// optional fields are silently omitted; whether the fields that are
// present make a coherent checkpoint is the caller's business.
func DumpOne(w io.Writer, d *iodata.IOData) error {
	title := d.Title
	if title == "" {
		title = "FCHK generated by IOData"
	}
	if _, err := fmt.Fprintf(w, "%-72s\n", title); err != nil {
		return err
	}
	command := orNA(d.RunType)
	if command == "energy" {
		command = "SP"
	}
	if _, err := fmt.Fprintf(w, "%-10s%-30s%33s\n",
		strings.ToUpper(command), strings.ToUpper(orNA(d.LOT)), strings.ToUpper(orNA(d.OBasisName))); err != nil {
		return err
	}

	na, nb, multiplicity := 0, 0, 0
	var alphaCoeffs, betaCoeffs []float64
	if d.MO != nil {
		na = d.MO.NAlpha()
		nb = d.MO.NBeta()
		multiplicity = abs(na-nb) + 1
		alphaCoeffs, betaCoeffs = splitCoefficients(d.MO.Coeffs, d.MO.NOrbA)
	}

	if err := dumpIntScalar(w, "Number of atoms", d.NAtom()); err != nil {
		return err
	}
	if charge, ok := d.ChargeValue(); ok {
		if err := dumpIntScalar(w, "Charge", int(charge)); err != nil {
			return err
		}
	}
	if err := dumpIntScalar(w, "Multiplicity", multiplicity); err != nil {
		return err
	}
	if nelec, ok := d.NElec(); ok {
		if err := dumpIntScalar(w, "Number of electrons", int(nelec)); err != nil {
			return err
		}
	}
	if err := dumpIntScalar(w, "Number of alpha electrons", na); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Number of beta electrons", nb); err != nil {
		return err
	}
	if err := dumpIntArray(w, "Atomic numbers", d.AtNums); err != nil {
		return err
	}
	if err := dumpRealArray(w, "Nuclear charges", d.AtCoreNums); err != nil {
		return err
	}
	if d.AtCoords != nil {
		if err := dumpRealArray(w, "Current cartesian coordinates", flatten(d.AtCoords)); err != nil {
			return err
		}
	}
	if d.AtMasses != nil {
		rounded := make([]int, len(d.AtMasses))
		scaled := make([]float64, len(d.AtMasses))
		for i, m := range d.AtMasses {
			scaled[i] = m / iodata.Amu
			rounded[i] = int(scaled[i] + 0.5)
		}
		if err := dumpIntArray(w, "Integer atomic weights", rounded); err != nil {
			return err
		}
		if err := dumpRealArray(w, "Real atomic weights", scaled); err != nil {
			return err
		}
	}
	if d.OBasis != nil {
		//the independent-function count is the number of spatial
		//orbitals per spin, which can sit below the basis count
		nindep := 0
		if d.MO != nil {
			nindep = d.MO.NOrbA
		}
		if err := dumpBasisInfo(w, d.OBasis, d.AtCoords, nindep); err != nil {
			return err
		}
	}
	if d.Energy != nil {
		if err := dumpRealScalar(w, "SCF Energy", *d.Energy); err != nil {
			return err
		}
		if err := dumpRealScalar(w, "Total Energy", *d.Energy); err != nil {
			return err
		}
	}
	if d.MO != nil {
		norba := d.MO.NOrbA
		if err := dumpRealArray(w, "Alpha Orbital Energies", d.MO.Energies[:norba]); err != nil {
			return err
		}
		if err := dumpRealArray(w, "Beta Orbital Energies", d.MO.Energies[norba:]); err != nil {
			return err
		}
		if err := dumpRealArray(w, "Alpha MO coefficients", alphaCoeffs); err != nil {
			return err
		}
		if err := dumpRealArray(w, "Beta MO coefficients", betaCoeffs); err != nil {
			return err
		}
	}
	if err := dumpRDMs(w, d.OneRDMs, d.LOT); err != nil {
		return err
	}
	if q, ok := d.AtCharges["mulliken"]; ok {
		if err := dumpRealArray(w, "Mulliken Charges", q); err != nil {
			return err
		}
	}
	if q, ok := d.AtCharges["esp"]; ok {
		if err := dumpRealArray(w, "ESP Charges", q); err != nil {
			return err
		}
	}
	if q, ok := d.AtCharges["npa"]; ok {
		if err := dumpRealArray(w, "NPA Charges", q); err != nil {
			return err
		}
	}
	if d.AtGradient != nil {
		if err := dumpRealArray(w, "Cartesian Gradient", flatten(d.AtGradient)); err != nil {
			return err
		}
	}
	if d.AtHessian != nil {
		if err := dumpRealArray(w, "Cartesian Force Constants", denseToTriangle(d.AtHessian)); err != nil {
			return err
		}
	}
	if dip, ok := d.Moments[iodata.MomentKey{L: 1, Kind: 'c'}]; ok {
		if err := dumpRealArray(w, "Dipole Moment", dip); err != nil {
			return err
		}
	}
	if quad, ok := d.Moments[iodata.MomentKey{L: 2, Kind: 'c'}]; ok {
		if err := dumpRealArray(w, "Quadrupole Moment", quadrupoleToCheckpoint(quad)); err != nil {
			return err
		}
	}
	if d.Polarizability != nil {
		if err := dumpRealArray(w, "Polarizability", denseToTriangle(d.Polarizability)); err != nil {
			return err
		}
	}
	return nil
}

// DumpMany writes every frame of a trajectory, one complete checkpoint
// after another.
func DumpMany(w io.Writer, t iodata.Trajectory) error {
	for {
		d, err := t.Next()
		if err != nil {
			if _, ok := err.(iodata.LastFrameError); ok {
				return nil
			}
			return errDecorate(err, "DumpMany")
		}
		if err := DumpOne(w, d); err != nil {
			return err
		}
	}
}

// splitCoefficients splits a combined coefficient matrix into flattened
// alpha and beta blocks, each laid out orbital-major as the format
// stores them. The first norba columns are the alpha set; in the
// restricted representation that is every column (one spatial set
// shared by both spins) and the beta block comes back empty.
func splitCoefficients(coeffs *mat.Dense, norba int) (alpha, beta []float64) {
	if coeffs == nil {
		return nil, nil
	}
	_, ncol := coeffs.Dims()
	if norba >= ncol {
		return flattenT(coeffs, 0, ncol), nil
	}
	return flattenT(coeffs, 0, norba), flattenT(coeffs, norba, ncol)
}

// flattenT flattens the columns [from, to) one after another.
func flattenT(m *mat.Dense, from, to int) []float64 {
	nrow, _ := m.Dims()
	out := make([]float64, 0, nrow*(to-from))
	for j := from; j < to; j++ {
		for i := 0; i < nrow; i++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// flatten lays out a matrix row-major.
func flatten(m *mat.Dense) []float64 {
	nrow, ncol := m.Dims()
	out := make([]float64, 0, nrow*ncol)
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// dumpBasisInfo writes the whole basis block: the summary scalars
// re-derived from the shell list, the three shell tables, and the flat
// exponent and coefficient pools in shell order. The SP coefficient
// column is only emitted when at least one shell uses it. A nindep of 0
// means no orbital set constrains the independent-function count.
func dumpBasisInfo(w io.Writer, b *basis.MolecularBasis, coords *mat.Dense, nindep int) error {
	nshell := len(b.Shells)
	shellTypes := make([]int, nshell)
	nprims := make([]int, nshell)
	shellMap := make([]int, nshell)
	var exps, ccoeffs, spcoeffs, shellCoords []float64
	totalPrim := 0
	largest := 0
	hasSP := false
	for i := range b.Shells {
		s := &b.Shells[i]
		n := s.NPrim()
		if n > largest {
			largest = n
		}
		shellTypes[i] = encodeShellType(s)
		nprims[i] = n
		shellMap[i] = s.Center + 1
		if coords != nil {
			shellCoords = append(shellCoords, coords.At(s.Center, 0), coords.At(s.Center, 1), coords.At(s.Center, 2))
		}
		for j := 0; j < n; j++ {
			exps = append(exps, s.Exponents[j])
			ccoeffs = append(ccoeffs, s.Coeffs.At(j, 0))
			if shellTypes[i] == -1 {
				spcoeffs = append(spcoeffs, s.Coeffs.At(j, 1))
			} else {
				spcoeffs = append(spcoeffs, 0.0)
			}
		}
		totalPrim += n
		if shellTypes[i] == -1 {
			hasSP = true
		}
	}
	pureD, pureF, highest := 0, 0, 0
	for _, t := range shellTypes {
		if t == 2 {
			pureD++
		}
		if t == 3 {
			pureF++
		}
		if abs(t) > highest {
			highest = abs(t)
		}
	}
	nbasis := b.NBasis()
	if nindep <= 0 {
		nindep = nbasis
	}
	if err := dumpIntScalar(w, "Number of basis functions", nbasis); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Number of independent functions", nindep); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Number of contracted shells", nshell); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Number of primitive shells", totalPrim); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Pure/Cartesian d shells", pureD); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Pure/Cartesian f shells", pureF); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Highest angular momentum", highest); err != nil {
		return err
	}
	if err := dumpIntScalar(w, "Largest degree of contraction", largest); err != nil {
		return err
	}
	if err := dumpIntArray(w, "Shell types", shellTypes); err != nil {
		return err
	}
	if err := dumpIntArray(w, "Number of primitives per shell", nprims); err != nil {
		return err
	}
	if err := dumpIntArray(w, "Shell to atom map", shellMap); err != nil {
		return err
	}
	if err := dumpRealArray(w, "Primitive exponents", exps); err != nil {
		return err
	}
	if err := dumpRealArray(w, "Contraction coefficients", ccoeffs); err != nil {
		return err
	}
	if hasSP {
		if err := dumpRealArray(w, "P(S=P) Contraction coefficients", spcoeffs); err != nil {
			return err
		}
	}
	return dumpRealArray(w, "Coordinates of each shell", shellCoords)
}

//The density keys of the container against their checkpoint labels. The
//post-SCF labels carry the level of theory, recovered by substring
//search; SCF is the fallback when the level is absent or unknown.
var rdmKeyOrder = []string{"scf", "scf_spin", "post_scf", "post_scf_spin"}

func dumpRDMs(w io.Writer, oneRDMs map[string]*mat.Dense, lot string) error {
	if len(oneRDMs) == 0 {
		return nil
	}
	level := "SCF"
	upper := strings.ToUpper(lot)
	for _, cand := range []string{"MP2", "MP3", "CC", "CI"} {
		if strings.Contains(upper, cand) {
			level = cand
		}
	}
	for _, key := range rdmKeyOrder {
		rdm, ok := oneRDMs[key]
		if !ok {
			continue
		}
		var label string
		switch key {
		case "scf":
			label = "Total SCF Density"
		case "scf_spin":
			label = "Spin SCF Density"
		case "post_scf":
			label = fmt.Sprintf("Total %s Density", level)
		case "post_scf_spin":
			label = fmt.Sprintf("Spin %s Density", level)
		}
		if err := dumpRealArray(w, label, denseToTriangle(rdm)); err != nil {
			return err
		}
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
