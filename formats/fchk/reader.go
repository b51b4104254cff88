/*
 * reader.go, part of goiodata.
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
	"path"
	"strconv"
	"strings"

	"github.com/RichRick1/iodata"
)

//An FCHK field line carries a label in its first 43 columns, then a type
//code (I or R), then either a single value or "N=" and an element count.
const labelWidth = 43

type valueType int

const (
	scalarInt valueType = iota
	scalarReal
	arrayInt
	arrayReal
)

// value is the payload of one labeled field. Exactly one of the slots is
// meaningful, according to typ.
type value struct {
	typ   valueType
	i     int
	r     float64
	ints  []int
	reals []float64
}

// fieldStore is the result of draining a checkpoint file: the two header
// lines broken up, and an ordered label to value mapping of every field
// that matched the requested patterns. Duplicate labels overwrite, last
// occurrence wins.
type fieldStore struct {
	title     string
	command   string
	lot       string
	basisName string
	filename  string
	labels    []string
	fields    map[string]value
}

func (s *fieldStore) getInt(label string) (int, bool) {
	v, ok := s.fields[label]
	if !ok || v.typ != scalarInt {
		return 0, false
	}
	return v.i, true
}

func (s *fieldStore) getReal(label string) (float64, bool) {
	v, ok := s.fields[label]
	if !ok || v.typ != scalarReal {
		return 0, false
	}
	return v.r, true
}

func (s *fieldStore) getInts(label string) ([]int, bool) {
	v, ok := s.fields[label]
	if !ok || v.typ != arrayInt {
		return nil, false
	}
	return v.ints, true
}

func (s *fieldStore) getReals(label string) ([]float64, bool) {
	v, ok := s.fields[label]
	if !ok || v.typ != arrayReal {
		return nil, false
	}
	return v.reals, true
}

// requireInt is getInt for fields the assembler cannot do without.
func (s *fieldStore) requireInt(label string) (int, error) {
	v, ok := s.getInt(label)
	if !ok {
		return 0, &ValidationError{fmt.Sprintf("%s: %s", MissingField, label), s.filename, []string{"requireInt"}}
	}
	return v, nil
}

func (s *fieldStore) requireInts(label string) ([]int, error) {
	v, ok := s.getInts(label)
	if !ok {
		return nil, &ValidationError{fmt.Sprintf("%s: %s", MissingField, label), s.filename, []string{"requireInts"}}
	}
	return v, nil
}

func (s *fieldStore) requireReals(label string) ([]float64, error) {
	v, ok := s.getReals(label)
	if !ok {
		return nil, &ValidationError{fmt.Sprintf("%s: %s", MissingField, label), s.filename, []string{"requireReals"}}
	}
	return v, nil
}

// fieldReader produces the labeled fields of a checkpoint file one at a
// time. Fields whose label matches none of the patterns are still
// consumed in full, declared length and all, so the cursor stays at a
// field boundary; they are just not returned.
type fieldReader struct {
	lr       *iodata.LineReader
	patterns []string
}

func (r *fieldReader) matches(label string) bool {
	if r.patterns == nil {
		return true
	}
	for _, pat := range r.patterns {
		if ok, _ := path.Match(pat, label); ok {
			return true
		}
	}
	return false
}

// next returns the next matching field. The bool reports whether a field
// was produced: false with a nil error means the input is exhausted, so
// callers switch on {field, end-of-input, error} rather than on a
// sentinel error value.
func (r *fieldReader) next() (string, value, bool, error) {
	var none value
	for {
		line, err := r.lr.Next()
		if err == io.EOF {
			return "", none, false, nil
		}
		if err != nil {
			return "", none, false, errDecorate(err, "next")
		}
		if len(line) <= labelWidth {
			//can hold a label but no data: a section header, skipped
			continue
		}
		label := strings.TrimSpace(line[:labelWidth])
		words := strings.Fields(line[labelWidth:])
		if len(words) == 0 {
			continue
		}
		var isReal bool
		switch words[0] {
		case "I":
			isReal = false
		case "R":
			isReal = true
		default:
			//no type code: another kind of section header, skipped
			continue
		}
		matched := r.matches(label)
		switch len(words) {
		case 2:
			if !matched {
				continue
			}
			v, err := parseScalar(r.lr, words[1], isReal)
			if err != nil {
				return "", none, false, err
			}
			return label, v, true, nil
		case 3:
			if words[1] != "N=" {
				if !matched {
					continue
				}
				return "", none, false, parseErr(r.lr, MissingNEq, "next")
			}
			count, err := strconv.Atoi(words[2])
			if err != nil {
				if !matched {
					continue
				}
				return "", none, false, parseErr(r.lr, fmt.Sprintf("could not interpret array length: %s", words[2]), "next")
			}
			v, err := r.consume(count, matched, isReal)
			if err != nil {
				return "", none, false, err
			}
			if !matched {
				continue
			}
			return label, v, true, nil
		default:
			//neither a scalar nor an array line, skipped like any
			//other header
			continue
		}
	}
}

func parseScalar(lr *iodata.LineReader, word string, isReal bool) (value, error) {
	if isReal {
		f, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return value{}, parseErr(lr, fmt.Sprintf("could not interpret: %s", word), "parseScalar")
		}
		return value{typ: scalarReal, r: f}, nil
	}
	i, err := strconv.Atoi(word)
	if err != nil {
		return value{}, parseErr(lr, fmt.Sprintf("could not interpret: %s", word), "parseScalar")
	}
	return value{typ: scalarInt, i: i}, nil
}

// consume gathers exactly count whitespace-separated tokens, reading as
// many continuation lines as it takes; line boundaries mean nothing
// inside an array body. When the field is not wanted the tokens are
// still consumed, only not converted. Leftover tokens on the last body
// line are discarded.
func (r *fieldReader) consume(count int, convert bool, isReal bool) (value, error) {
	v := value{typ: arrayInt}
	if isReal {
		v.typ = arrayReal
	}
	if convert {
		if isReal {
			v.reals = make([]float64, 0, count)
		} else {
			v.ints = make([]int, 0, count)
		}
	}
	var words []string
	for n := 0; n < count; n++ {
		for len(words) == 0 {
			line, err := r.lr.Next()
			if err == io.EOF {
				return v, parseErr(r.lr, fmt.Sprintf("end of file inside an array, got %d of %d values", n, count), "consume")
			}
			if err != nil {
				return v, errDecorate(err, "consume")
			}
			words = strings.Fields(line)
		}
		word := words[0]
		words = words[1:]
		if !convert {
			continue
		}
		if isReal {
			f, err := strconv.ParseFloat(word, 64)
			if err != nil {
				return v, parseErr(r.lr, fmt.Sprintf("could not interpret: %s", word), "consume")
			}
			v.reals = append(v.reals, f)
		} else {
			i, err := strconv.Atoi(word)
			if err != nil {
				return v, parseErr(r.lr, fmt.Sprintf("could not interpret: %s", word), "consume")
			}
			v.ints = append(v.ints, i)
		}
	}
	return v, nil
}

// readStore reads the two header lines and then drives the field reader
// until true end of input, whether or not every pattern has already been
// matched. Draining costs a pass over the whole stream regardless of
// pattern selectivity; it is what keeps the cursor honest across skipped
// array fields.
func readStore(lr *iodata.LineReader, patterns []string) (*fieldStore, error) {
	store := &fieldStore{
		filename: lr.Name(),
		fields:   make(map[string]value),
	}
	title, err := lr.Next()
	if err != nil {
		return nil, parseErr(lr, "missing title line", "readStore")
	}
	store.title = strings.TrimSpace(title)
	second, err := lr.Next()
	if err != nil {
		return nil, parseErr(lr, BadHeader, "readStore")
	}
	words := strings.Fields(second)
	switch len(words) {
	case 2:
		store.command, store.lot = words[0], words[1]
	case 3:
		store.command, store.lot, store.basisName = words[0], words[1], words[2]
	default:
		return nil, parseErr(lr, BadHeader, "readStore")
	}
	r := &fieldReader{lr: lr, patterns: patterns}
	for {
		label, v, ok, err := r.next()
		if err != nil {
			return nil, errDecorate(err, "readStore")
		}
		if !ok {
			break
		}
		if _, seen := store.fields[label]; !seen {
			store.labels = append(store.labels, label)
		}
		store.fields[label] = v
	}
	return store, nil
}
