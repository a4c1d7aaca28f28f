package main

import (
	"image/color"
	"testing"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func TestReadMarkers(t *testing.T) {
	genomes := []*Genome{
		testGenome(t, "ref", []string{"chr1"}, []int{1000}),
		testGenome(t, "qry", []string{"chrA"}, []int{1200}),
	}
	path := writeFile(t, t.TempDir(), "markers.bed",
		"# chr\tstart\tend\tgenome",
		"chr1\t99\t100\tref",
		"chrA\t499\t500\tqry\ts\t#FF0000\t4\tgene X\tblue\t7\t0.1",
		"chrA\t9\t10\tqry\t.\t.\t.\tlabel",
	)
	markers, err := ReadMarkers(path, genomes, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(markers))
	}

	m := markers[0]
	if m.Genome != 0 || m.Chr != "chr1" || m.Start != 100 || m.End != 100 {
		t.Errorf("unexpected position %+v", m)
	}
	if _, ok := m.Shape.(dotGlyph); !ok || m.Color != color.Black || m.Size != vg.Points(defaultMarkerSize) {
		t.Errorf("expected default marker style, got %+v", m)
	}
	if m.Text != "" || m.TextSize != vg.Points(6) || m.TextPos != defaultTextPos {
		t.Errorf("expected default text style, got %+v", m)
	}

	m = markers[1]
	if _, ok := m.Shape.(draw.SquareGlyph); !ok {
		t.Errorf("expected a square marker, got %T", m.Shape)
	}
	if m.Color != (color.NRGBA{R: 0xff, A: 0xff}) || m.Size != vg.Points(4) {
		t.Errorf("unexpected marker style %+v", m)
	}
	if m.Text != "gene X" || m.TextSize != vg.Points(7) || m.TextPos != 0.1 {
		t.Errorf("unexpected text style %+v", m)
	}
	if r, g, b, _ := m.TextColor.RGBA(); r != 0 || g != 0 || b == 0 {
		t.Errorf("expected blue text, got %v", m.TextColor)
	}

	m = markers[2]
	if _, ok := m.Shape.(dotGlyph); !ok || m.Text != "label" {
		t.Errorf("unexpected marker %+v", m)
	}
}

func TestReadMarkersErrors(t *testing.T) {
	genomes := []*Genome{
		testGenome(t, "ref", []string{"chr1"}, []int{1000}),
		testGenome(t, "qry", []string{"chrA"}, []int{1200}),
	}
	for name, line := range map[string]string{
		"short line":         "chr1\t99\t100",
		"unknown genome":     "chr1\t99\t100\tother",
		"wrong genome":       "chrA\t99\t100\tref",
		"beyond end":         "chr1\t999\t1001\tref",
		"unknown marker":     "chr1\t99\t100\tref\t*",
		"bad colour":         "chr1\t99\t100\tref\to\tnotacolour",
		"bad size":           "chr1\t99\t100\tref\to\tred\t-2",
		"bad text offset":    "chr1\t99\t100\tref\to\tred\t2\ttext\tred\t6\tup",
		"bad coordinate":     "chr1\tx\t100\tref",
		"empty interval":     "chr1\t100\t100\tref",
		"bad text colour":    "chr1\t99\t100\tref\to\tred\t2\ttext\t#12",
		"bad text font size": "chr1\t99\t100\tref\to\tred\t2\ttext\tred\t0",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "markers.bed", line)
			if _, err := ReadMarkers(path, genomes, 6); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
