/*
 * plot.go, part of goiodata.
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

// Package trajplot draws energy profiles of optimization, scan and IRC
// trajectories.
package trajplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/RichRick1/iodata"
)

func basicProfilePlot(title string, irc bool) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	if irc {
		p.X.Label.Text = "Reaction coordinate (bohr)"
	} else {
		p.X.Label.Text = "Step"
	}
	p.Y.Label.Text = "Relative energy (kcal/mol)"
	p.Add(plotter.NewGrid())
	return p
}

// EnergyProfile plots the energies of a trajectory against the reaction
// coordinate when every frame carries one, against the frame index
// otherwise, and saves the plot as plotname.png. Energies are plotted in
// kcal/mol relative to the lowest frame. The trajectory is consumed.
func EnergyProfile(t iodata.Trajectory, title, plotname string) error {
	var energies, coords []float64
	irc := true
	for {
		frame, err := t.Next()
		if err != nil {
			if _, ok := err.(iodata.LastFrameError); ok {
				break
			}
			return errDecorate(err, "EnergyProfile")
		}
		if frame.Energy == nil {
			return &Error{fmt.Sprintf("frame %d has no energy", len(energies)), []string{"EnergyProfile"}}
		}
		energies = append(energies, *frame.Energy)
		if frame.Traj == nil || frame.Traj.ReactionCoordinate == nil {
			irc = false
			coords = append(coords, float64(len(coords)))
		} else {
			coords = append(coords, *frame.Traj.ReactionCoordinate)
		}
	}
	if len(energies) == 0 {
		return &Error{"the trajectory has no frames", []string{"EnergyProfile"}}
	}
	if !irc {
		//mixed or absent coordinates: fall back to plain indices
		for i := range coords {
			coords[i] = float64(i)
		}
	}
	min := energies[0]
	for _, e := range energies {
		if e < min {
			min = e
		}
	}
	pts := make(plotter.XYs, len(energies))
	for i := range energies {
		pts[i].X = coords[i]
		pts[i].Y = (energies[i] - min) * iodata.H2Kcal
	}
	p := basicProfilePlot(title, irc)
	line, err := plotter.NewLine(pts)
	if err != nil {
		return &Error{err.Error(), []string{"plotter.NewLine", "EnergyProfile"}}
	}
	line.Color = color.RGBA{B: 255, A: 255}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return &Error{err.Error(), []string{"plotter.NewScatter", "EnergyProfile"}}
	}
	p.Add(line, scatter)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return &Error{err.Error(), []string{"Save", "EnergyProfile"}}
	}
	return nil
}

// Error is the concrete error type of this package.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	err2 := err.(iodata.Error)
	err2.Decorate(caller)
	return err2
}
