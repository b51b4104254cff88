/*
 * main.go, part of goiodata.
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

// fchktool runs conversion, inspection and plotting jobs over quantum
// chemistry data files, driven by a TOML configuration file:
//
//	[[jobs]]
//	task = "convert"
//	in = "water_irc.fchk"
//	out = "water_irc_out.fchk"
//	many = true
//	plot = "water_irc_profile"
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/RichRick1/iodata"
	_ "github.com/RichRick1/iodata/formats/fchk"
	"github.com/RichRick1/iodata/trajplot"
)

type job struct {
	Task  string `toml:"task"`
	In    string `toml:"in"`
	Out   string `toml:"out"`
	Many  bool   `toml:"many"`
	Plot  string `toml:"plot"`
	Title string `toml:"title"`
}

type config struct {
	Jobs []job `toml:"jobs"`
}

func readConfig(path string) (config, error) {
	f, err := os.Open(path)
	if err != nil {
		return config{}, err
	}
	defer f.Close()
	var cfg config
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return config{}, err
	}
	for k, j := range cfg.Jobs {
		if j.Task != "convert" && j.Task != "info" {
			return config{}, fmt.Errorf("job %d: unknown task %q", k, j.Task)
		}
		if j.In == "" {
			return config{}, fmt.Errorf("job %d: no input file", k)
		}
	}
	return cfg, nil
}

func main() {
	log := log.New(os.Stdout, "", log.LstdFlags)
	if len(os.Args) != 2 {
		log.Fatal("one argument is needed: path of the configuration file")
	}
	cfg, err := readConfig(os.Args[1])
	if err != nil {
		log.Fatal(fmt.Errorf("readConfig: %w", err))
	}
	for k, j := range cfg.Jobs {
		if err := run(j); err != nil {
			log.Fatal(fmt.Errorf("job %d (%s on %s): %w", k, j.Task, j.In, err))
		}
	}
}

func run(j job) error {
	if j.Many {
		return runMany(j)
	}
	d, err := iodata.LoadOne(j.In)
	if err != nil {
		return err
	}
	if j.Task == "info" {
		printInfo(j.In, d)
		return nil
	}
	if j.Out == "" {
		return fmt.Errorf("convert needs an output file")
	}
	return iodata.DumpOne(d, j.Out)
}

func runMany(j job) error {
	t, err := iodata.LoadMany(j.In)
	if err != nil {
		return err
	}
	if j.Task == "info" {
		fmt.Printf("%s: trajectory with %d frames\n", j.In, t.Len())
		return nil
	}
	//the frames are needed up to three times (dump, plot), and a
	//trajectory is single-pass, so they are collected first
	var frames []*iodata.IOData
	for {
		d, err := t.Next()
		if err != nil {
			if _, ok := err.(iodata.LastFrameError); ok {
				break
			}
			return err
		}
		frames = append(frames, d)
	}
	if j.Out != "" {
		if err := iodata.DumpMany(iodata.NewFrames(frames), j.Out); err != nil {
			return err
		}
	}
	if j.Plot != "" {
		title := j.Title
		if title == "" {
			title = j.In
		}
		if err := trajplot.EnergyProfile(iodata.NewFrames(frames), title, j.Plot); err != nil {
			return err
		}
	}
	return nil
}

func printInfo(name string, d *iodata.IOData) {
	fmt.Printf("%s: %q\n", name, d.Title)
	if d.RunType != "" {
		fmt.Println("  run type:", d.RunType)
	}
	if d.LOT != "" {
		fmt.Println("  level of theory:", d.LOT)
	}
	if d.OBasisName != "" {
		fmt.Println("  basis set:", d.OBasisName)
	}
	fmt.Println("  atoms:", d.NAtom())
	if d.OBasis != nil {
		fmt.Println("  basis functions:", d.OBasis.NBasis())
	}
	if nelec, ok := d.NElec(); ok {
		fmt.Printf("  electrons: %.1f\n", nelec)
	}
	if d.Energy != nil {
		fmt.Printf("  energy: %.8f hartree\n", *d.Energy)
	}
	if d.MO != nil {
		fmt.Printf("  orbitals: %d (%s)\n", d.MO.NOrb(), d.MO.Kind)
	}
	for key := range d.OneRDMs {
		fmt.Println("  density matrix:", key)
	}
	for key := range d.AtCharges {
		fmt.Println("  atomic charges:", key)
	}
}
