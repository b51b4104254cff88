/*
 * plot_test.go, part of goiodata.
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

package trajplot

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/RichRick1/iodata"
)

func fakeFrames(n int, withRecor bool) iodata.Trajectory {
	frames := make([]*iodata.IOData, n)
	for i := 0; i < n; i++ {
		e := -75.0 + 0.01*float64(i)*float64(i)
		frame := &iodata.IOData{Energy: &e}
		if withRecor {
			rc := 0.2 * float64(i)
			frame.Traj = &iodata.TrajStep{
				IPoint: i, NPoint: n, IStep: 0, NStep: 1,
				ReactionCoordinate: &rc,
			}
		}
		frames[i] = frame
	}
	return iodata.NewFrames(frames)
}

func TestEnergyProfile(Te *testing.T) {
	dir := Te.TempDir()
	for _, irc := range []bool{true, false} {
		name := filepath.Join(dir, fmt.Sprintf("profile_%v", irc))
		if err := EnergyProfile(fakeFrames(6, irc), "Test profile", name); err != nil {
			Te.Fatal(err)
		}
		info, err := os.Stat(name + ".png")
		if err != nil {
			Te.Fatal(err)
		}
		if info.Size() == 0 {
			Te.Error("the plot file is empty")
		}
		fmt.Println("wrote", name+".png,", info.Size(), "bytes")
	}
}

func TestEnergyProfileErrors(Te *testing.T) {
	if err := EnergyProfile(iodata.NewFrames(nil), "empty", "unused"); err == nil {
		Te.Error("an empty trajectory plotted")
	}
	noEnergy := iodata.NewFrames([]*iodata.IOData{{Title: "no energy here"}})
	if err := EnergyProfile(noEnergy, "broken", "unused"); err == nil {
		Te.Error("a frame without energy plotted")
	}
}
