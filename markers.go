package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/evolbioinfo/goalign/io/utils"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Marker is a point annotation, with an optional text, on one chromosome.
type Marker struct {
	Genome int
	Chr    string
	Start  int
	End    int

	Shape draw.GlyphDrawer
	Color color.Color
	Size  vg.Length

	Text      string
	TextColor color.Color
	TextSize  vg.Length
	// TextPos is the distance between the marker and its text, in plot units.
	TextPos float64
}

const (
	defaultMarkerSize = 8
	defaultTextPos    = 0.05
)

// dotGlyph is a small filled circle.
type dotGlyph struct{}

func (dotGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	sty.Radius /= 2
	draw.CircleGlyph{}.DrawGlyph(c, sty, pt)
}

var markerShapes = map[string]draw.GlyphDrawer{
	".": dotGlyph{},
	"o": draw.CircleGlyph{},
	"O": draw.RingGlyph{},
	"s": draw.SquareGlyph{},
	"D": draw.BoxGlyph{},
	"^": draw.TriangleGlyph{},
	"p": draw.PyramidGlyph{},
	"+": draw.PlusGlyph{},
	"x": draw.CrossGlyph{},
}

// ReadMarkers reads a BED-like annotation file:
//
//	chr start end genome [marker [colour [size [text [text colour [text size [text offset]]]]]]]
//
// Missing optional columns, or ".", take the default value.
func ReadMarkers(path string, genomes []*Genome, fontSize float64) ([]Marker, error) {
	fi, r, err := utils.GetReader(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open annotation bed file: %w", err)
	}
	defer fi.Close()
	byName := make(map[string]int, len(genomes))
	for i, g := range genomes {
		byName[g.Name] = i
	}
	reader := newTSVReader(r)
	var markers []Marker
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		m, err := parseMarker(record, genomes, byName, fontSize)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		markers = append(markers, m)
	}
	log.Infof("%d markers read from %s", len(markers), path)
	return markers, nil
}

func parseMarker(record []string, genomes []*Genome, byName map[string]int, fontSize float64) (Marker, error) {
	if len(record) < 4 {
		return Marker{}, fmt.Errorf("expected at least 4 columns, found %d", len(record))
	}
	g, ok := byName[record[3]]
	if !ok {
		return Marker{}, fmt.Errorf("unknown genome %s", record[3])
	}
	m := Marker{
		Genome:    g,
		Chr:       record[0],
		Shape:     markerShapes["."],
		Color:     color.Black,
		Size:      vg.Points(defaultMarkerSize),
		TextColor: color.Black,
		TextSize:  vg.Points(fontSize),
		TextPos:   defaultTextPos,
	}
	var err error
	if m.Start, m.End, err = parseInterval(record[1], record[2], true); err != nil {
		return m, err
	}
	if err := checkCoords(genomes[g], m.Chr, m.End); err != nil {
		return m, err
	}
	opt := func(i int) (string, bool) {
		if i >= len(record) || record[i] == "." || record[i] == "" {
			return "", false
		}
		return record[i], true
	}
	if v, ok := opt(4); ok {
		if m.Shape, ok = markerShapes[v]; !ok {
			return m, fmt.Errorf("unknown marker %q", v)
		}
	}
	if v, ok := opt(5); ok {
		if m.Color, err = parseColor(v); err != nil {
			return m, err
		}
	}
	if v, ok := opt(6); ok {
		if m.Size, err = parseSize(v); err != nil {
			return m, err
		}
	}
	if v, ok := opt(7); ok {
		m.Text = v
	}
	if v, ok := opt(8); ok {
		if m.TextColor, err = parseColor(v); err != nil {
			return m, err
		}
	}
	if v, ok := opt(9); ok {
		if m.TextSize, err = parseSize(v); err != nil {
			return m, err
		}
	}
	if v, ok := opt(10); ok {
		if m.TextPos, err = strconv.ParseFloat(v, 64); err != nil {
			return m, fmt.Errorf("invalid text offset %q", v)
		}
	}
	return m, nil
}

func parseSize(s string) (vg.Length, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return vg.Points(v), nil
}
