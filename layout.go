package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Layout places the chromosome groups in plot coordinates. Along the
// chromosomes the unit is the base pair; across them group i occupies the
// band [-i, Space-i] with genome g at Indent(g) inside the band. Vertical
// layouts swap the axes and put the first genome on the left.
type Layout struct {
	Genomes  []*Genome
	Groups   []Group
	Vertical bool
	Space    float64

	indents []float64
	// offsets[g][chr] is the group index of chromosome chr of genome g.
	offsets []map[string]int
}

const (
	minSpace = 0.1
	maxSpace = 0.9
)

func NewLayout(genomes []*Genome, groups []Group, vertical bool, space float64) (*Layout, error) {
	if space < minSpace || space > maxSpace {
		return nil, fmt.Errorf("space between homologous chromosomes must be in [%g, %g], got %g", minSpace, maxSpace, space)
	}
	if len(genomes) < 2 {
		return nil, fmt.Errorf("at least 2 genomes are needed, got %d", len(genomes))
	}
	l := &Layout{
		Genomes:  genomes,
		Groups:   groups,
		Vertical: vertical,
		Space:    space,
		indents:  floats.Span(make([]float64, len(genomes)), space, 0),
		offsets:  make([]map[string]int, len(genomes)),
	}
	for g := range genomes {
		l.offsets[g] = make(map[string]int, len(groups))
	}
	for i, grp := range groups {
		if len(grp) != len(genomes) {
			return nil, fmt.Errorf("group %s has %d chromosomes for %d genomes", grp[0], len(grp), len(genomes))
		}
		for g, chr := range grp {
			l.offsets[g][chr] = i
		}
	}
	return l, nil
}

func (l *Layout) Indent(genome int) float64 { return l.indents[genome] }

// level is the cross-axis coordinate of genome g in group i.
func (l *Layout) level(genome, group int) float64 {
	if l.Vertical {
		return float64(group) + l.Space - l.indents[genome]
	}
	return l.indents[genome] - float64(group)
}

func (l *Layout) place(pos, level float64) plotter.XY {
	if l.Vertical {
		return plotter.XY{X: level, Y: pos}
	}
	return plotter.XY{X: pos, Y: level}
}

// MaxLength is the length of the longest chromosome plotted.
func (l *Layout) MaxLength() int {
	max := 0
	for _, grp := range l.Groups {
		for g, chr := range grp {
			if n, _ := l.Genomes[g].Length(chr); n > max {
				max = n
			}
		}
	}
	return max
}

// Chromosome returns the segment of the chromosome of genome g in group i.
func (l *Layout) Chromosome(genome, group int) plotter.XYs {
	chr := l.Groups[group][genome]
	n, _ := l.Genomes[genome].Length(chr)
	y := l.level(genome, group)
	return plotter.XYs{l.place(0, y), l.place(float64(n), y)}
}

// Ribbon returns the polygon joining the reference interval of a on genome
// pair to its query interval on genome pair+1. Corrected inversions give a
// self-crossing polygon. ok is false when a.AChr is not plotted.
func (l *Layout) Ribbon(pair int, a Alignment) (xys plotter.XYs, ok bool) {
	i, ok := l.offsets[pair][a.AChr]
	if !ok {
		return nil, false
	}
	ya, yb := l.level(pair, i), l.level(pair+1, i)
	return plotter.XYs{
		l.place(float64(a.AStart), ya),
		l.place(float64(a.AEnd), ya),
		l.place(float64(a.BEnd), yb),
		l.place(float64(a.BStart), yb),
	}, true
}

// Point returns the position of pos on chromosome chr of genome g, shifted
// by shift across the chromosome: up in horizontal layouts, left in vertical
// ones.
func (l *Layout) Point(genome int, chr string, pos int, shift float64) (plotter.XY, bool) {
	i, ok := l.offsets[genome][chr]
	if !ok {
		return plotter.XY{}, false
	}
	y := l.level(genome, i)
	if l.Vertical {
		y -= shift
	} else {
		y += shift
	}
	return l.place(float64(pos), y), true
}

// GroupTicks returns the cross-axis position of the middle of every group
// band, labelled with the reference chromosome.
func (l *Layout) GroupTicks() ([]float64, []string) {
	values := make([]float64, len(l.Groups))
	labels := make([]string, len(l.Groups))
	for i, grp := range l.Groups {
		values[i] = (l.level(0, i) + l.level(len(l.Genomes)-1, i)) / 2
		labels[i] = grp[0]
	}
	return values, labels
}

// CrossRange returns the extent of the cross axis including a margin.
func (l *Layout) CrossRange(margin float64) (min, max float64) {
	n := float64(len(l.Groups))
	if l.Vertical {
		return -margin, n - 1 + l.Space + margin
	}
	return -(n - 1) - margin, l.Space + margin
}

const defaultFigureWidth = 3

// FigureSize returns the figure size in inches from the -H and -W values,
// zero meaning unset: with none set the long side follows the number of
// groups, with one set the figure is square.
func FigureSize(h, w float64, ngroups int, vertical bool) (width, height vg.Length) {
	switch {
	case h == 0 && w == 0:
		long, short := float64(ngroups), float64(defaultFigureWidth)
		if long < 1 {
			long = 1
		}
		if vertical {
			return vg.Length(long) * vg.Inch, vg.Length(short) * vg.Inch
		}
		return vg.Length(short) * vg.Inch, vg.Length(long) * vg.Inch
	case w == 0:
		return vg.Length(h) * vg.Inch, vg.Length(h) * vg.Inch
	case h == 0:
		return vg.Length(w) * vg.Inch, vg.Length(w) * vg.Inch
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}
