/*
 * check_test.go, part of goiodata.
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
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func consistentRecord() *IOData {
	return &IOData{
		AtNums:     []int{8, 1, 1},
		AtCoreNums: []float64{8, 1, 1},
		AtCoords:   mat.NewDense(3, 3, nil),
		AtMasses:   []float64{29156, 1837, 1837},
		AtGradient: mat.NewDense(3, 3, nil),
		AtHessian:  mat.NewDense(9, 9, nil),
		AtCharges:  map[string][]float64{"mulliken": {-0.6, 0.3, 0.3}},
		Moments: map[MomentKey][]float64{
			{L: 1, Kind: 'c'}: {0, 0, 1},
			{L: 2, Kind: 'c'}: {1, 0, 0, 1, 0, 1},
		},
		Polarizability: mat.NewDense(3, 3, nil),
	}
}

func TestCheckConsistent(Te *testing.T) {
	if err := consistentRecord().Check(); err != nil {
		Te.Error(err)
	}
	//an empty record has nothing to disagree about
	if err := new(IOData).Check(); err != nil {
		Te.Error(err)
	}
}

func TestCheckShapes(Te *testing.T) {
	breakers := []struct {
		name  string
		match string
		apply func(d *IOData)
	}{
		{"short coordinates", "AtCoords",
			func(d *IOData) { d.AtCoords = mat.NewDense(2, 3, nil) }},
		{"wide coordinates", "3 columns",
			func(d *IOData) { d.AtCoords = mat.NewDense(3, 4, nil) }},
		{"short masses", "AtMasses",
			func(d *IOData) { d.AtMasses = d.AtMasses[:2] }},
		{"small hessian", "AtHessian",
			func(d *IOData) { d.AtHessian = mat.NewDense(6, 6, nil) }},
		{"rectangular hessian", "AtHessian",
			func(d *IOData) { d.AtHessian = mat.NewDense(9, 6, nil) }},
		{"odd polarizability", "Polarizability",
			func(d *IOData) { d.Polarizability = mat.NewDense(2, 3, nil) }},
		{"short charge array", "charges",
			func(d *IOData) { d.AtCharges["mulliken"] = []float64{1} }},
		{"truncated quadrupole", "components",
			func(d *IOData) { d.Moments[MomentKey{L: 2, Kind: 'c'}] = []float64{1, 2, 3} }},
	}
	for _, b := range breakers {
		d := consistentRecord()
		b.apply(d)
		err := d.Check()
		if err == nil {
			Te.Errorf("%s passed the check", b.name)
			continue
		}
		if !strings.Contains(err.Error(), b.match) {
			Te.Errorf("%s: the error does not name the field: %v", b.name, err)
		}
	}
}

func TestCheckBasisSized(Te *testing.T) {
	d := consistentRecord()
	d.OneRDMs = map[string]*mat.Dense{"scf": mat.NewDense(5, 5, nil)}
	//without a basis the density size is unconstrained
	if err := d.Check(); err != nil {
		Te.Error(err)
	}
	d.OneRDMs["scf"] = mat.NewDense(5, 4, nil)
	if err := d.Check(); err == nil {
		Te.Error("a rectangular density matrix passed the check")
	}
}

func TestNElecAndSpinpol(Te *testing.T) {
	d := consistentRecord()
	if _, ok := d.NElec(); ok {
		Te.Error("a record without orbitals reported an electron count")
	}
	if _, ok := d.Spinpol(); ok {
		Te.Error("a record without orbitals reported a spin polarization")
	}
	charge := 1.0
	d.Charge = &charge
	if got, ok := d.ChargeValue(); !ok || got != 1.0 {
		Te.Errorf("charge: %v %v", got, ok)
	}
	//with the charge known the electron count follows from the nuclei
	if got, ok := d.NElec(); !ok || got != 9.0 {
		Te.Errorf("electron count: %v %v", got, ok)
	}
}
