/*
 * trajectory.go, part of goiodata.
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

	"gonum.org/v1/gonum/mat"

	"github.com/RichRick1/iodata"
)

//A checkpoint trajectory is grouped in "points" (e.g. the values of a
//scan constraint; a plain optimization or IRC has one point per
//geometry group), each holding one or more geometry "steps". The per
//point fields are named after the point with a 7-digit index.
var loadManyPatterns = []string{
	"Atomic numbers", "Current cartesian coordinates", "Nuclear charges",
	"IRC *", "Optimization *", "Opt point *",
}

// Trajectory is the finite, single-pass sequence of frames of an
// optimization, relaxed scan or IRC checkpoint. It fulfills
// iodata.Trajectory. The underlying file is fully consumed by LoadMany;
// once the frames run out the sequence cannot be rewound, only re-read
// from the source.
type Trajectory struct {
	filename   string
	title      string
	atnums     []int
	atcorenums []float64
	store      *fieldStore
	prefix     string
	irc        bool
	nsteps     []int
	natom      int
	total      int
	ipoint     int
	istep      int
	loaded     bool
	//data of the point being walked
	energies []float64
	recors   []float64
	geoms    []*mat.Dense
	grads    []*mat.Dense
}

// LoadMany reads the trajectory fields of a formatted checkpoint file
// and returns the frames as a lazy sequence. The file itself is drained
// before LoadMany returns; only the per-frame assembly is deferred.
func LoadMany(lr *iodata.LineReader) (*Trajectory, error) {
	store, err := readStore(lr, loadManyPatterns)
	if err != nil {
		return nil, errDecorate(err, "LoadMany")
	}
	t := &Trajectory{filename: store.filename, title: store.title, store: store}
	t.atnums, err = store.requireInts("Atomic numbers")
	if err != nil {
		return nil, errDecorate(err, "LoadMany")
	}
	t.atcorenums, err = store.requireReals("Nuclear charges")
	if err != nil {
		return nil, errDecorate(err, "LoadMany")
	}
	t.natom = len(t.atnums)
	if nsteps, ok := store.getInts("IRC Number of geometries"); ok {
		t.prefix = "IRC point"
		t.irc = true
		t.nsteps = nsteps
	} else if nsteps, ok := store.getInts("Optimization Number of geometries"); ok {
		t.prefix = "Opt point"
		t.nsteps = nsteps
	} else {
		return nil, &ValidationError{BadTrajectory, store.filename, []string{"LoadMany"}}
	}
	for _, n := range t.nsteps {
		t.total += n
	}
	return t, nil
}

// Len returns the total number of frames over all points.
func (t *Trajectory) Len() int { return t.total }

// Next assembles and returns the next frame, in point-major, step-minor
// order. After the last frame it returns an iodata.LastFrameError.
func (t *Trajectory) Next() (*iodata.IOData, error) {
	for t.ipoint < len(t.nsteps) && t.nsteps[t.ipoint] == 0 {
		t.ipoint++ //a point declared empty contributes no frames
	}
	if t.ipoint >= len(t.nsteps) {
		return nil, newlastFrameError(t.filename, "Next")
	}
	if !t.loaded {
		if err := t.loadPoint(); err != nil {
			return nil, errDecorate(err, "Next")
		}
	}
	recor := new(float64)
	*recor = t.recors[t.istep]
	if !t.irc {
		recor = nil
	}
	energy := new(float64)
	*energy = t.energies[t.istep]
	frame := &iodata.IOData{
		Title:      t.title,
		AtNums:     t.atnums,
		AtCoreNums: t.atcorenums,
		Energy:     energy,
		AtCoords:   t.geoms[t.istep],
		AtGradient: t.grads[t.istep],
		Traj: &iodata.TrajStep{
			IPoint:             t.ipoint,
			NPoint:             len(t.nsteps),
			IStep:              t.istep,
			NStep:              t.nsteps[t.ipoint],
			ReactionCoordinate: recor,
		},
	}
	t.istep++
	if t.istep >= t.nsteps[t.ipoint] {
		t.ipoint++
		t.istep = 0
		t.loaded = false
	}
	return frame, nil
}

// loadPoint fetches and reshapes the three per-point arrays, checking
// the actual step count of each against the count the file itself
// declares for the point.
func (t *Trajectory) loadPoint() error {
	ipoint := t.ipoint
	nstep := t.nsteps[ipoint]
	results, err := t.store.requireReals(fmt.Sprintf("%s %7d Results for each geome", t.prefix, ipoint+1))
	if err != nil {
		return errDecorate(err, "loadPoint")
	}
	geoms, err := t.store.requireReals(fmt.Sprintf("%s %7d Geometries", t.prefix, ipoint+1))
	if err != nil {
		return errDecorate(err, "loadPoint")
	}
	grads, err := t.store.requireReals(fmt.Sprintf("%s %7d Gradient at each geome", t.prefix, ipoint+1))
	if err != nil {
		return errDecorate(err, "loadPoint")
	}
	stride := 3 * t.natom
	if len(results)/2 != nstep || len(geoms) != nstep*stride || len(grads) != nstep*stride {
		return &ValidationError{fmt.Sprintf("%s: point %d declares %d geometries but carries %d results, %d geometry values and %d gradient values",
			BadStepCount, ipoint+1, nstep, len(results)/2, len(geoms), len(grads)), t.filename, []string{"loadPoint"}}
	}
	t.energies = make([]float64, nstep)
	t.recors = make([]float64, nstep)
	for i := 0; i < nstep; i++ {
		t.energies[i] = results[2*i]
		t.recors[i] = results[2*i+1]
	}
	t.geoms = make([]*mat.Dense, nstep)
	t.grads = make([]*mat.Dense, nstep)
	for i := 0; i < nstep; i++ {
		t.geoms[i] = mat.NewDense(t.natom, 3, append([]float64(nil), geoms[i*stride:(i+1)*stride]...))
		t.grads[i] = mat.NewDense(t.natom, 3, append([]float64(nil), grads[i*stride:(i+1)*stride]...))
	}
	t.loaded = true
	return nil
}
