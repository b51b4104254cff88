/*
 * basis.go, part of goiodata.
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

// Package basis holds contracted Gaussian basis set data: shells, the
// molecular basis that groups them, and the conventions tables giving
// the ordering of the angular components within one shell.
package basis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Kinds of angular components.
const (
	Cartesian byte = 'c'
	Pure      byte = 'p' //pure means spherical harmonics
)

// Key indexes a conventions table: one angular momentum represented in
// one kind of components.
type Key struct {
	L    int
	Kind byte
}

// Shell is a group of contracted basis functions sharing one set of
// primitive exponents. A generalized contraction carries several angular
// momenta; the only generalized case handled by the Gaussian formats is
// the combined s+p ("SP") shell, with AngMoms {0, 1}.
type Shell struct {
	//Index of the atom the shell sits on, 0-based.
	Center  int
	AngMoms []int
	//One kind tag per angular momentum, Cartesian or Pure.
	Kinds     []byte
	Exponents []float64
	//Contraction coefficients, one row per primitive and one column per
	//angular momentum.
	Coeffs *mat.Dense
}

// NPrim returns the number of primitives in the shell.
func (s *Shell) NPrim() int { return len(s.Exponents) }

// NCon returns the number of contractions, i.e. of angular momenta.
func (s *Shell) NCon() int { return len(s.AngMoms) }

// NBasis returns the number of basis functions the shell contributes.
func (s *Shell) NBasis() int {
	n := 0
	for i, l := range s.AngMoms {
		n += NComp(Key{l, s.Kinds[i]})
	}
	return n
}

// NComp returns the number of components of one angular momentum in the
// given kind: 2l+1 for pure, (l+1)(l+2)/2 for Cartesian.
func NComp(key Key) int {
	if key.Kind == Pure {
		return 2*key.L + 1
	}
	return (key.L + 1) * (key.L + 2) / 2
}

// MolecularBasis is an ordered sequence of shells plus the conventions
// table used to interpret per-component data laid out in this basis.
type MolecularBasis struct {
	Shells      []Shell
	Conventions map[Key][]string
	//Normalization of the primitives, e.g. "L2".
	PrimNormalization string
}

// NBasis returns the total number of basis functions.
func (b *MolecularBasis) NBasis() int {
	n := 0
	for i := range b.Shells {
		n += b.Shells[i].NBasis()
	}
	return n
}

// GaussianConventions returns the component orderings used by the
// Gaussian checkpoint formats, for angular momenta up to maxL. Pure
// shells run c0, c1, s1, c2, s2, ...; Cartesian d and f follow the fixed
// Gaussian tables; higher Cartesian shells run in reversed alphabetical
// order of the monomials.
func GaussianConventions(maxL int) map[Key][]string {
	conv := map[Key][]string{
		{0, Cartesian}: {"1"},
		{1, Cartesian}: {"x", "y", "z"},
		{2, Cartesian}: {"xx", "yy", "zz", "xy", "xz", "yz"},
		{3, Cartesian}: {"xxx", "yyy", "zzz", "xyy", "xxy", "xxz", "xzz", "yzz", "yyz", "xyz"},
	}
	for l := 2; l <= maxL; l++ {
		conv[Key{l, Pure}] = pureComponents(l)
	}
	for l := 4; l <= maxL; l++ {
		mono := cartMonomials(l)
		rev := make([]string, len(mono))
		for i, m := range mono {
			rev[len(mono)-1-i] = m
		}
		conv[Key{l, Cartesian}] = rev
	}
	return conv
}

// pureComponents lists the solid-harmonic components of momentum l in
// the order c0, c1, s1, ..., cl, sl.
func pureComponents(l int) []string {
	comps := []string{"c0"}
	for m := 1; m <= l; m++ {
		comps = append(comps, fmt.Sprintf("c%d", m), fmt.Sprintf("s%d", m))
	}
	return comps
}

// cartMonomials lists the Cartesian monomials of degree l in
// alphabetical order, e.g. xx, xy, xz, yy, yz, zz for l=2.
func cartMonomials(l int) []string {
	var mono []string
	for nx := l; nx >= 0; nx-- {
		for ny := l - nx; ny >= 0; ny-- {
			nz := l - nx - ny
			mono = append(mono, strings.Repeat("x", nx)+strings.Repeat("y", ny)+strings.Repeat("z", nz))
		}
	}
	return mono
}
