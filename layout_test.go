package main

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const tol = 1e-9

func equalXYs(a, b plotter.XYs) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !scalar.EqualWithinAbs(a[i].X, b[i].X, tol) || !scalar.EqualWithinAbs(a[i].Y, b[i].Y, tol) {
			return false
		}
	}
	return true
}

func twoGenomeLayout(t *testing.T, vertical bool) *Layout {
	genomes := []*Genome{
		testGenome(t, "ref", []string{"chr1", "chr2"}, []int{1000, 600}),
		testGenome(t, "qry", []string{"chrA", "chrB"}, []int{1200, 500}),
	}
	l, err := NewLayout(genomes, []Group{{"chr1", "chrA"}, {"chr2", "chrB"}}, vertical, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestLayoutIndents(t *testing.T) {
	genomes := threeGenomes(t)
	l, err := NewLayout(genomes, []Group{{"chr1", "a1", "b2"}}, false, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	for g, want := range []float64{0.6, 0.3, 0} {
		if !scalar.EqualWithinAbs(l.Indent(g), want, tol) {
			t.Errorf("genome %d: expected indent %g, got %g", g, want, l.Indent(g))
		}
	}
	for _, space := range []float64{0.05, 0.95} {
		if _, err := NewLayout(genomes, nil, false, space); err == nil {
			t.Errorf("expected an error for space %g", space)
		}
	}
	if _, err := NewLayout(genomes, []Group{{"chr1", "a1"}}, false, 0.5); err == nil {
		t.Errorf("expected an error for an incomplete group")
	}
}

func TestLayoutHorizontal(t *testing.T) {
	l := twoGenomeLayout(t, false)
	if l.MaxLength() != 1200 {
		t.Errorf("expected max length 1200, got %d", l.MaxLength())
	}
	if got, want := l.Chromosome(0, 1), (plotter.XYs{{X: 0, Y: -0.3}, {X: 600, Y: -0.3}}); !equalXYs(got, want) {
		t.Errorf("chromosome: expected %v, got %v", want, got)
	}
	if got, want := l.Chromosome(1, 0), (plotter.XYs{{X: 0, Y: 0}, {X: 1200, Y: 0}}); !equalXYs(got, want) {
		t.Errorf("chromosome: expected %v, got %v", want, got)
	}

	syn := Alignment{AChr: "chr2", AStart: 1, AEnd: 100, BChr: "chrB", BStart: 11, BEnd: 110, Type: SYN}
	got, ok := l.Ribbon(0, syn)
	want := plotter.XYs{{X: 1, Y: -0.3}, {X: 100, Y: -0.3}, {X: 110, Y: -1}, {X: 11, Y: -1}}
	if !ok || !equalXYs(got, want) {
		t.Errorf("syntenic ribbon: expected %v, got %v", want, got)
	}

	inv := CorrectInversions([]Alignment{{AChr: "chr1", AStart: 200, AEnd: 300, BChr: "chrA", BStart: 400, BEnd: 500, Type: INV}})[0]
	got, ok = l.Ribbon(0, inv)
	want = plotter.XYs{{X: 200, Y: 0.7}, {X: 300, Y: 0.7}, {X: 400, Y: 0}, {X: 500, Y: 0}}
	if !ok || !equalXYs(got, want) {
		t.Errorf("inverted ribbon: expected %v, got %v", want, got)
	}

	if _, ok := l.Ribbon(0, Alignment{AChr: "chr9"}); ok {
		t.Errorf("expected no ribbon for an unplotted chromosome")
	}

	pt, ok := l.Point(1, "chrB", 250, 0.05)
	if !ok || !scalar.EqualWithinAbs(pt.X, 250, tol) || !scalar.EqualWithinAbs(pt.Y, -0.95, tol) {
		t.Errorf("unexpected point %v", pt)
	}
	if _, ok := l.Point(0, "chrA", 250, 0); ok {
		t.Errorf("chrA is not a chromosome of the reference")
	}

	values, labels := l.GroupTicks()
	if len(values) != 2 || !scalar.EqualWithinAbs(values[1], -0.65, tol) || labels[1] != "chr2" {
		t.Errorf("unexpected group ticks %v %v", values, labels)
	}
	min, max := l.CrossRange(0.1)
	if !scalar.EqualWithinAbs(min, -1.1, tol) || !scalar.EqualWithinAbs(max, 0.8, tol) {
		t.Errorf("unexpected cross range %g %g", min, max)
	}
}

func TestLayoutThreeGenomes(t *testing.T) {
	genomes := threeGenomes(t)
	l, err := NewLayout(genomes, []Group{{"chr1", "a1", "b2"}, {"chr2", "a2", "b1"}}, false, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if l.MaxLength() != 1000 {
		t.Errorf("expected max length 1000, got %d", l.MaxLength())
	}
	if got, want := l.Chromosome(2, 1), (plotter.XYs{{X: 0, Y: -1}, {X: 600, Y: -1}}); !equalXYs(got, want) {
		t.Errorf("chromosome: expected %v, got %v", want, got)
	}

	first := Alignment{AChr: "chr2", AStart: 1, AEnd: 100, BChr: "a2", BStart: 11, BEnd: 110, Type: SYN}
	got, ok := l.Ribbon(0, first)
	want := plotter.XYs{{X: 1, Y: -0.4}, {X: 100, Y: -0.4}, {X: 110, Y: -0.7}, {X: 11, Y: -0.7}}
	if !ok || !equalXYs(got, want) {
		t.Errorf("first pair ribbon: expected %v, got %v", want, got)
	}
	second := Alignment{AChr: "a2", AStart: 1, AEnd: 100, BChr: "b1", BStart: 11, BEnd: 110, Type: SYN}
	got, ok = l.Ribbon(1, second)
	want = plotter.XYs{{X: 1, Y: -0.7}, {X: 100, Y: -0.7}, {X: 110, Y: -1}, {X: 11, Y: -1}}
	if !ok || !equalXYs(got, want) {
		t.Errorf("second pair ribbon: expected %v, got %v", want, got)
	}
	if _, ok := l.Ribbon(1, first); ok {
		t.Errorf("chr2 is not a chromosome of the second pair reference")
	}
	values, _ := l.GroupTicks()
	if !scalar.EqualWithinAbs(values[1], -0.7, tol) {
		t.Errorf("unexpected group tick %g", values[1])
	}

	// only plotted chromosomes set the axis length
	l, err = NewLayout(genomes, []Group{{"chr2", "a2", "b1"}}, true, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if l.MaxLength() != 800 {
		t.Errorf("expected max length 800, got %d", l.MaxLength())
	}
	got, ok = l.Ribbon(1, second)
	want = plotter.XYs{{X: 0.3, Y: 1}, {X: 0.3, Y: 100}, {X: 0.6, Y: 110}, {X: 0.6, Y: 11}}
	if !ok || !equalXYs(got, want) {
		t.Errorf("vertical second pair ribbon: expected %v, got %v", want, got)
	}
}

func TestLayoutVertical(t *testing.T) {
	l := twoGenomeLayout(t, true)
	if got, want := l.Chromosome(0, 1), (plotter.XYs{{X: 1, Y: 0}, {X: 1, Y: 600}}); !equalXYs(got, want) {
		t.Errorf("chromosome: expected %v, got %v", want, got)
	}
	if got, want := l.Chromosome(1, 1), (plotter.XYs{{X: 1.7, Y: 0}, {X: 1.7, Y: 500}}); !equalXYs(got, want) {
		t.Errorf("chromosome: expected %v, got %v", want, got)
	}
	pt, ok := l.Point(0, "chr1", 10, 0.05)
	if !ok || !scalar.EqualWithinAbs(pt.X, -0.05, tol) || !scalar.EqualWithinAbs(pt.Y, 10, tol) {
		t.Errorf("unexpected point %v", pt)
	}
	min, max := l.CrossRange(0.1)
	if !scalar.EqualWithinAbs(min, -0.1, tol) || !scalar.EqualWithinAbs(max, 1.8, tol) {
		t.Errorf("unexpected cross range %g %g", min, max)
	}
}

func TestFigureSize(t *testing.T) {
	for _, c := range []struct {
		h, w     float64
		vertical bool
		wantW    vg.Length
		wantH    vg.Length
	}{
		{0, 0, false, 3 * vg.Inch, 5 * vg.Inch},
		{0, 0, true, 5 * vg.Inch, 3 * vg.Inch},
		{4, 0, false, 4 * vg.Inch, 4 * vg.Inch},
		{0, 6, false, 6 * vg.Inch, 6 * vg.Inch},
		{4, 6, false, 6 * vg.Inch, 4 * vg.Inch},
	} {
		w, h := FigureSize(c.h, c.w, 5, c.vertical)
		if w != c.wantW || h != c.wantH {
			t.Errorf("FigureSize(%g, %g, 5, %v) = %v, %v, expected %v, %v", c.h, c.w, c.vertical, w, h, c.wantW, c.wantH)
		}
	}
}
