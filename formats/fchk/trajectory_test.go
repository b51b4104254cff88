/*
 * trajectory_test.go, part of goiodata.
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
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/RichRick1/iodata"
)

// trajFchk writes a 2-atom trajectory checkpoint with the given step
// counts per point. Energies are 10*point+step so each frame is
// recognizable; reaction coordinates are step/10.
func trajFchk(countsLabel, prefix string, nsteps []int) string {
	var buf bytes.Buffer
	buf.WriteString("diatomic walk\n")
	buf.WriteString("FOPT      RHF                                                        STO-3G\n")
	dumpIntArray(&buf, "Atomic numbers", []int{8, 1})
	dumpRealArray(&buf, "Nuclear charges", []float64{8, 1})
	dumpIntArray(&buf, countsLabel, nsteps)
	for ip, n := range nsteps {
		results := make([]float64, 0, 2*n)
		geoms := make([]float64, 0, 6*n)
		grads := make([]float64, 0, 6*n)
		for is := 0; is < n; is++ {
			results = append(results, float64(10*ip+is), float64(is)/10)
			for k := 0; k < 6; k++ {
				geoms = append(geoms, float64(100*ip+10*is+k))
				grads = append(grads, -float64(100*ip+10*is+k))
			}
		}
		dumpRealArray(&buf, fmt.Sprintf("%s %7d Results for each geome", prefix, ip+1), results)
		dumpRealArray(&buf, fmt.Sprintf("%s %7d Geometries", prefix, ip+1), geoms)
		dumpRealArray(&buf, fmt.Sprintf("%s %7d Gradient at each geome", prefix, ip+1), grads)
	}
	return buf.String()
}

func loadTrajFromString(text string) (*Trajectory, error) {
	lr := iodata.NewLineReaderFrom("test.fchk", strings.NewReader(text))
	return LoadMany(lr)
}

func TestOptTrajectory(Te *testing.T) {
	t, err := loadTrajFromString(trajFchk("Optimization Number of geometries", "Opt point", []int{3, 2}))
	if err != nil {
		Te.Fatal(err)
	}
	if t.Len() != 5 {
		Te.Fatalf("length: got %d, want 5", t.Len())
	}
	want := [][4]int{{0, 2, 0, 3}, {0, 2, 1, 3}, {0, 2, 2, 3}, {1, 2, 0, 2}, {1, 2, 1, 2}}
	for i := 0; ; i++ {
		frame, err := t.Next()
		if err != nil {
			if _, ok := err.(iodata.LastFrameError); !ok {
				Te.Fatal(err)
			}
			if i != 5 {
				Te.Fatalf("trajectory ended after %d frames", i)
			}
			break
		}
		if i >= len(want) {
			Te.Fatalf("got more than %d frames", len(want))
		}
		s := frame.Traj
		if s.IPoint != want[i][0] || s.NPoint != want[i][1] || s.IStep != want[i][2] || s.NStep != want[i][3] {
			Te.Errorf("frame %d: got point %d/%d step %d/%d, want %v",
				i, s.IPoint, s.NPoint, s.IStep, s.NStep, want[i])
		}
		if s.ReactionCoordinate != nil {
			Te.Errorf("frame %d of an optimization carries a reaction coordinate", i)
		}
		if *frame.Energy != float64(10*s.IPoint+s.IStep) {
			Te.Errorf("frame %d: energy %g", i, *frame.Energy)
		}
		if frame.Title != "diatomic walk" || len(frame.AtNums) != 2 {
			Te.Errorf("frame %d metadata came out wrong", i)
		}
		if frame.AtCoords.At(0, 0) != float64(100*s.IPoint+10*s.IStep) {
			Te.Errorf("frame %d: first coordinate %g", i, frame.AtCoords.At(0, 0))
		}
		if frame.AtGradient.At(1, 2) != -float64(100*s.IPoint+10*s.IStep+5) {
			Te.Errorf("frame %d: last gradient %g", i, frame.AtGradient.At(1, 2))
		}
	}
}

func TestIRCTrajectory(Te *testing.T) {
	t, err := loadTrajFromString(trajFchk("IRC Number of geometries", "IRC point", []int{2}))
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		frame, err := t.Next()
		if err != nil {
			Te.Fatal(err)
		}
		if frame.Traj.ReactionCoordinate == nil {
			Te.Fatalf("frame %d of an IRC lacks its reaction coordinate", i)
		}
		if *frame.Traj.ReactionCoordinate != float64(i)/10 {
			Te.Errorf("frame %d: reaction coordinate %g", i, *frame.Traj.ReactionCoordinate)
		}
	}
	if _, err := t.Next(); err == nil {
		Te.Error("the trajectory did not end")
	}
}

func TestEmptyPointsSkipped(Te *testing.T) {
	t, err := loadTrajFromString(trajFchk("Optimization Number of geometries", "Opt point", []int{0, 2}))
	if err != nil {
		Te.Fatal(err)
	}
	if t.Len() != 2 {
		Te.Fatalf("length: got %d, want 2", t.Len())
	}
	frame, err := t.Next()
	if err != nil {
		Te.Fatal(err)
	}
	if frame.Traj.IPoint != 1 {
		Te.Errorf("the empty point was not skipped: %d", frame.Traj.IPoint)
	}
}

func TestTrajectoryErrors(Te *testing.T) {
	//neither point-count field at all
	var buf bytes.Buffer
	buf.WriteString("broken\n")
	buf.WriteString("FOPT      RHF                                                        STO-3G\n")
	dumpIntArray(&buf, "Atomic numbers", []int{8, 1})
	dumpRealArray(&buf, "Nuclear charges", []float64{8, 1})
	_, err := loadTrajFromString(buf.String())
	if err == nil {
		Te.Fatal("a checkpoint without trajectory fields loaded")
	}
	if _, ok := err.(*ValidationError); !ok {
		Te.Fatalf("expected a ValidationError, got %T: %v", err, err)
	}

	//declared two steps, stored one
	text := trajFchk("Optimization Number of geometries", "Opt point", []int{1})
	text = strings.Replace(text,
		fmt.Sprintf("%-40s   I   N=%12d\n%12d\n", "Optimization Number of geometries", 1, 1),
		fmt.Sprintf("%-40s   I   N=%12d\n%12d\n", "Optimization Number of geometries", 1, 2), 1)
	t, err := loadTrajFromString(text)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := t.Next(); err == nil {
		Te.Error("a point with fewer geometries than declared produced a frame")
	} else if _, ok := err.(*ValidationError); !ok {
		Te.Errorf("expected a ValidationError, got %T: %v", err, err)
	}
}
