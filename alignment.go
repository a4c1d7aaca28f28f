package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/evolbioinfo/goalign/io/utils"
)

type SVType int

const (
	SYN SVType = iota
	INV
	TRANS
	INVTR
	DUP
	INVDP
)

var svTypeNames = [...]string{"SYN", "INV", "TRANS", "INVTR", "DUP", "INVDP"}

func (t SVType) String() string {
	if t < 0 || int(t) >= len(svTypeNames) {
		return "SVType(" + strconv.Itoa(int(t)) + ")"
	}
	return svTypeNames[t]
}

// ParseSVType only knows the top level annotations; nested ones such as
// SYNAL or SNP are reported as not found.
func ParseSVType(s string) (SVType, bool) {
	for i, name := range svTypeNames {
		if s == name {
			return SVType(i), true
		}
	}
	return 0, false
}

func (t SVType) Inverted() bool {
	return t == INV || t == INVTR || t == INVDP
}

// SVClass groups annotation types sharing a colour and a legend entry.
type SVClass int

const (
	Syntenic SVClass = iota
	Inversion
	Translocation
	Duplication
	numSVClasses
)

var svClassNames = [...]string{"Syntenic", "Inversion", "Translocation", "Duplication"}

func (c SVClass) String() string { return svClassNames[c] }

func (t SVType) Class() SVClass {
	switch t {
	case SYN:
		return Syntenic
	case INV:
		return Inversion
	case TRANS, INVTR:
		return Translocation
	default:
		return Duplication
	}
}

// Alignment is one annotated region between chromosome AChr of the
// reference genome and BChr of the query genome. Coordinates are 1-based and
// inclusive. Readers store BStart <= BEnd; CorrectInversions swaps them for
// inverted types.
type Alignment struct {
	AChr   string
	AStart int
	AEnd   int
	BChr   string
	BStart int
	BEnd   int
	Type   SVType
}

func (a Alignment) ALen() int { return abs(a.AEnd-a.AStart) + 1 }
func (a Alignment) BLen() int { return abs(a.BEnd-a.BStart) + 1 }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AlignmentSet holds the annotations of one file, between genome Pair and
// genome Pair+1.
type AlignmentSet struct {
	Name string
	Pair int
	Rows []Alignment

	// Homology maps every reference chromosome to its homologous query chromosome.
	Homology map[string]string
}

// ReadSyriOut reads the top level annotations of a syri.out file.
func ReadSyriOut(path string) (*AlignmentSet, error) {
	return readAlignments(path, 11, func(record []string) (Alignment, bool, error) {
		t, ok := ParseSVType(record[10])
		if !ok {
			return Alignment{}, false, nil
		}
		// not aligned regions have no coordinates on the other genome
		if record[1] == "-" || record[6] == "-" {
			return Alignment{}, false, nil
		}
		a := Alignment{AChr: record[0], BChr: record[5], Type: t}
		var err error
		if a.AStart, a.AEnd, err = parseInterval(record[1], record[2], false); err != nil {
			return a, false, err
		}
		if a.BStart, a.BEnd, err = parseInterval(record[6], record[7], false); err != nil {
			return a, false, err
		}
		return a, true, nil
	})
}

// ReadBedOut reads a BEDPE-like file: achr astart aend bchr bstart bend type,
// with 0-based starts.
func ReadBedOut(path string) (*AlignmentSet, error) {
	return readAlignments(path, 7, func(record []string) (Alignment, bool, error) {
		t, ok := ParseSVType(record[6])
		if !ok {
			return Alignment{}, false, fmt.Errorf("unknown annotation type %s", record[6])
		}
		a := Alignment{AChr: record[0], BChr: record[3], Type: t}
		var err error
		if a.AStart, a.AEnd, err = parseInterval(record[1], record[2], true); err != nil {
			return a, false, err
		}
		if a.BStart, a.BEnd, err = parseInterval(record[4], record[5], true); err != nil {
			return a, false, err
		}
		return a, true, nil
	})
}

func readAlignments(path string, nFields int, parse func([]string) (Alignment, bool, error)) (*AlignmentSet, error) {
	fi, r, err := utils.GetReader(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open annotation file: %w", err)
	}
	defer fi.Close()
	reader := newTSVReader(r)
	set := &AlignmentSet{Name: filepath.Base(path)}
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) < nFields {
			return nil, fmt.Errorf("%s:%d: expected %d columns, found %d", path, line, nFields, len(record))
		}
		a, ok, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if !ok {
			skipped++
			continue
		}
		set.Rows = append(set.Rows, a)
	}
	if len(set.Rows) == 0 {
		return nil, fmt.Errorf("no annotation found in %s", path)
	}
	log.Debugf("%s: %d annotations read, %d lines skipped", set.Name, len(set.Rows), skipped)
	set.Homology = homology(set.Rows)
	return set, nil
}

// parseInterval returns the interval with start <= end. zeroBased converts a
// 0-based half-open start to 1-based and rejects empty intervals.
func parseInterval(s, e string, zeroBased bool) (int, int, error) {
	start, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid coordinate %q", s)
	}
	end, err := strconv.Atoi(e)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid coordinate %q", e)
	}
	if start > end {
		start, end = end, start
	}
	if zeroBased {
		if start == end {
			return 0, 0, fmt.Errorf("empty interval %d-%d", start, end)
		}
		start++
	}
	if start < 1 {
		return 0, 0, fmt.Errorf("coordinate %d out of range", start)
	}
	return start, end, nil
}

// homology maps each reference chromosome to the query chromosome carrying
// the longest total syntenic length, or the longest total annotated length
// when it has no syntenic region. Ties keep the first query chromosome seen.
func homology(rows []Alignment) map[string]string {
	type candidate struct {
		chr     string
		syn     int
		total   int
		seenSyn bool
	}
	cands := make(map[string][]*candidate)
	for _, r := range rows {
		var c *candidate
		for _, x := range cands[r.AChr] {
			if x.chr == r.BChr {
				c = x
				break
			}
		}
		if c == nil {
			c = &candidate{chr: r.BChr}
			cands[r.AChr] = append(cands[r.AChr], c)
		}
		c.total += r.ALen()
		if r.Type == SYN {
			c.syn += r.ALen()
			c.seenSyn = true
		}
	}
	result := make(map[string]string, len(cands))
	for achr, cs := range cands {
		useSyn := false
		for _, c := range cs {
			useSyn = useSyn || c.seenSyn
		}
		best, bestLen := "", -1
		for _, c := range cs {
			l := c.total
			if useSyn {
				l = c.syn
			}
			if l > bestLen {
				best, bestLen = c.chr, l
			}
		}
		result[achr] = best
	}
	return result
}

// ValidateAlignments checks that the annotation files match the genomes: one
// file per consecutive genome pair, known chromosome ids and coordinates
// within the chromosome lengths.
func ValidateAlignments(sets []*AlignmentSet, genomes []*Genome) error {
	if len(sets) != len(genomes)-1 {
		return fmt.Errorf("%d genomes need %d annotation files, got %d", len(genomes), len(genomes)-1, len(sets))
	}
	for i, set := range sets {
		set.Pair = i
		ga, gb := genomes[i], genomes[i+1]
		for _, r := range set.Rows {
			if err := checkCoords(ga, r.AChr, r.AEnd); err != nil {
				return fmt.Errorf("%s: %w", set.Name, err)
			}
			if err := checkCoords(gb, r.BChr, max(r.BStart, r.BEnd)); err != nil {
				return fmt.Errorf("%s: %w", set.Name, err)
			}
		}
	}
	return nil
}

func checkCoords(g *Genome, chr string, end int) error {
	l, ok := g.Length(chr)
	if !ok {
		return fmt.Errorf("chromosome %s not found in genome %s", chr, g.Name)
	}
	if end > l {
		return fmt.Errorf("coordinate %d is beyond the end of %s:%s (%d bp)", end, g.Name, chr, l)
	}
	return nil
}
