package main

import (
	"fmt"
	"slices"
	"strings"
)

type FilterOptions struct {
	MinSize int
	NoSyn   bool
	NoInv   bool
	NoTr    bool
	NoDup   bool
}

func (o FilterOptions) keep(t SVType) bool {
	switch t.Class() {
	case Syntenic:
		return !o.NoSyn
	case Inversion:
		return !o.NoInv
	case Translocation:
		return !o.NoTr
	default:
		return !o.NoDup
	}
}

// Filter keeps the annotations long enough on both genomes, of an enabled
// type and between homologous chromosomes.
func Filter(rows []Alignment, homology map[string]string, opts FilterOptions) []Alignment {
	kept := make([]Alignment, 0, len(rows))
	for _, r := range rows {
		if r.ALen() < opts.MinSize || r.BLen() < opts.MinSize {
			continue
		}
		if !opts.keep(r.Type) {
			continue
		}
		if homology[r.AChr] != r.BChr {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// SelectChromosomes keeps the groups whose reference chromosome is in chrs.
func SelectChromosomes(groups []Group, chrs []string) ([]Group, error) {
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g[0]] = true
	}
	var missing []string
	for _, c := range chrs {
		if !known[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("chromosome(s) %s not found among the plotted reference chromosomes", strings.Join(missing, ", "))
	}
	var selected []Group
	for _, g := range groups {
		if slices.Contains(chrs, g[0]) {
			selected = append(selected, g)
		}
	}
	return selected, nil
}

// CreateRibbons merges consecutive annotations of the same type into a single
// ribbon. Rows are walked in reference order per chromosome pair and a row is
// merged into the previous one when both its intervals follow the previous
// ones without overlap, in the orientation of the type.
func CreateRibbons(rows []Alignment) []Alignment {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(x, y Alignment) int {
		if c := strings.Compare(x.AChr, y.AChr); c != 0 {
			return c
		}
		if c := strings.Compare(x.BChr, y.BChr); c != 0 {
			return c
		}
		if x.AStart != y.AStart {
			return x.AStart - y.AStart
		}
		return x.AEnd - y.AEnd
	})
	var ribbons []Alignment
	for _, r := range sorted {
		if n := len(ribbons); n > 0 && collinear(ribbons[n-1], r) {
			prev := &ribbons[n-1]
			prev.AEnd = r.AEnd
			if r.Type.Inverted() {
				prev.BStart = r.BStart
			} else {
				prev.BEnd = r.BEnd
			}
			continue
		}
		ribbons = append(ribbons, r)
	}
	log.Debugf("%d annotations merged into %d ribbons", len(rows), len(ribbons))
	return ribbons
}

func collinear(prev, next Alignment) bool {
	if prev.Type != next.Type || prev.AChr != next.AChr || prev.BChr != next.BChr {
		return false
	}
	if next.AStart <= prev.AEnd {
		return false
	}
	if next.Type.Inverted() {
		return next.BEnd < prev.BStart
	}
	return next.BStart > prev.BEnd
}

// CorrectInversions swaps the query start and end of inverted annotations so
// their ribbons cross over.
func CorrectInversions(rows []Alignment) []Alignment {
	corrected := slices.Clone(rows)
	for i := range corrected {
		if corrected[i].Type.Inverted() {
			corrected[i].BStart, corrected[i].BEnd = corrected[i].BEnd, corrected[i].BStart
		}
	}
	return corrected
}
