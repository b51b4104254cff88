/*
 * check.go, part of goiodata.
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

import "fmt"

// shapeRule declares that one dimension of a field must agree with a
// reference count. dim returns the dimension and false when the field is
// absent, in which case the rule does not apply.
type shapeRule struct {
	field string
	ref   string //name of the count the dimension must match
	dim   func(d *IOData) (int, bool)
	want  func(d *IOData) int
}

func atomCount(d *IOData) int { return d.NAtom() }

func basisCount(d *IOData) int {
	if d.OBasis == nil {
		return -1 //no basis present, basis-sized rules don't apply
	}
	return d.OBasis.NBasis()
}

// The shape table. Each entry names a field, the count one of its
// dimensions must match, and how to get both numbers.
var shapeRules = []shapeRule{
	{"AtNums", "natom", func(d *IOData) (int, bool) {
		if d.AtNums == nil {
			return 0, false
		}
		return len(d.AtNums), true
	}, atomCount},
	{"AtCoreNums", "natom", func(d *IOData) (int, bool) {
		if d.AtCoreNums == nil {
			return 0, false
		}
		return len(d.AtCoreNums), true
	}, atomCount},
	{"AtCoords", "natom", func(d *IOData) (int, bool) {
		if d.AtCoords == nil {
			return 0, false
		}
		r, _ := d.AtCoords.Dims()
		return r, true
	}, atomCount},
	{"AtMasses", "natom", func(d *IOData) (int, bool) {
		if d.AtMasses == nil {
			return 0, false
		}
		return len(d.AtMasses), true
	}, atomCount},
	{"AtFrozen", "natom", func(d *IOData) (int, bool) {
		if d.AtFrozen == nil {
			return 0, false
		}
		return len(d.AtFrozen), true
	}, atomCount},
	{"AtGradient", "natom", func(d *IOData) (int, bool) {
		if d.AtGradient == nil {
			return 0, false
		}
		r, _ := d.AtGradient.Dims()
		return r, true
	}, atomCount},
	{"AtHessian", "3*natom", func(d *IOData) (int, bool) {
		if d.AtHessian == nil {
			return 0, false
		}
		r, _ := d.AtHessian.Dims()
		return r, true
	}, func(d *IOData) int { return 3 * d.NAtom() }},
	{"MO.Coeffs", "nbasis", func(d *IOData) (int, bool) {
		if d.MO == nil || d.MO.Coeffs == nil {
			return 0, false
		}
		r, _ := d.MO.Coeffs.Dims()
		return r, true
	}, basisCount},
}

// Check runs the cross-field shape validation over the whole record. It
// is meant to be run once, right after a codec fills the record. It
// returns nil when every present field agrees with the others.
func (d *IOData) Check() error {
	for _, rule := range shapeRules {
		n, present := rule.dim(d)
		if !present {
			continue
		}
		want := rule.want(d)
		if want < 0 {
			continue
		}
		if n != want {
			return &IOErr{fmt.Sprintf("field %s has leading dimension %d, but %s is %d",
				rule.field, n, rule.ref, want), []string{"Check"}}
		}
	}
	//fields with fixed or square shapes
	if d.AtCoords != nil {
		if _, c := d.AtCoords.Dims(); c != 3 {
			return &IOErr{fmt.Sprintf("AtCoords must have 3 columns, not %d", c), []string{"Check"}}
		}
	}
	if d.AtGradient != nil {
		if _, c := d.AtGradient.Dims(); c != 3 {
			return &IOErr{fmt.Sprintf("AtGradient must have 3 columns, not %d", c), []string{"Check"}}
		}
	}
	if d.AtHessian != nil {
		if r, c := d.AtHessian.Dims(); r != c {
			return &IOErr{fmt.Sprintf("AtHessian must be square, not %dx%d", r, c), []string{"Check"}}
		}
	}
	if d.Polarizability != nil {
		if r, c := d.Polarizability.Dims(); r != 3 || c != 3 {
			return &IOErr{fmt.Sprintf("Polarizability must be 3x3, not %dx%d", r, c), []string{"Check"}}
		}
	}
	nb := basisCount(d)
	for key, rdm := range d.OneRDMs {
		r, c := rdm.Dims()
		if r != c {
			return &IOErr{fmt.Sprintf("density matrix %s must be square, not %dx%d", key, r, c), []string{"Check"}}
		}
		if nb >= 0 && r != nb {
			return &IOErr{fmt.Sprintf("density matrix %s has size %d, but nbasis is %d", key, r, nb), []string{"Check"}}
		}
	}
	for key, q := range d.AtCharges {
		if len(q) != d.NAtom() {
			return &IOErr{fmt.Sprintf("atomic charges %s have %d entries for %d atoms", key, len(q), d.NAtom()), []string{"Check"}}
		}
	}
	for key, m := range d.Moments {
		want := ncomp(key)
		if len(m) != want {
			return &IOErr{fmt.Sprintf("moment (%d,%c) has %d components, want %d", key.L, key.Kind, len(m), want), []string{"Check"}}
		}
	}
	return nil
}

// ncomp gives the number of components of a multipole moment.
func ncomp(key MomentKey) int {
	if key.Kind == 'p' {
		return 2*key.L + 1
	}
	return (key.L + 1) * (key.L + 2) / 2
}
