package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

var outputFormats = []string{"pdf", "png", "svg"}

const defaultChromosomeWidth = 4

// Render draws the chromosomes of the layout, the ribbons of every
// annotation set, the legend and the markers.
func Render(l *Layout, sets []*AlignmentSet, markers []Marker, st Style, fontSize float64) (*plot.Plot, error) {
	classColors, err := st.ClassColors()
	if err != nil {
		return nil, err
	}
	p := plot.New()
	setFontSize(p, vg.Points(fontSize))
	if err := drawAxes(p, l, st.MarginSize); err != nil {
		return nil, err
	}

	legendPolys := make([]*plotter.Polygon, numSVClasses)
	for _, set := range sets {
		drawn := 0
		for _, a := range set.Rows {
			xys, ok := l.Ribbon(set.Pair, a)
			if !ok {
				continue
			}
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return nil, fmt.Errorf("cannot draw %s annotation %s:%d-%d: %w", a.Type, a.AChr, a.AStart, a.AEnd, err)
			}
			cls := a.Type.Class()
			poly.Color = classColors[cls]
			poly.LineStyle.Width = 0
			p.Add(poly)
			drawn++
			if legendPolys[cls] == nil {
				legendPolys[cls] = poly
			}
		}
		log.Debugf("%s: %d ribbons drawn", set.Name, drawn)
	}

	genomeLines := make([]*plotter.Line, len(l.Genomes))
	for g, genome := range l.Genomes {
		c, w := genome.LineColor, genome.LineWidth
		if c == nil {
			c = genomeColor(g)
		}
		if w == 0 {
			w = vg.Points(defaultChromosomeWidth)
		}
		for i := range l.Groups {
			line, err := plotter.NewLine(l.Chromosome(g, i))
			if err != nil {
				return nil, fmt.Errorf("cannot draw %s:%s: %w", genome.Name, l.Groups[i][g], err)
			}
			line.LineStyle.Color = c
			line.LineStyle.Width = w
			p.Add(line)
			genomeLines[g] = line
		}
	}

	if st.Legend {
		for cls, poly := range legendPolys {
			if poly != nil {
				p.Legend.Add(SVClass(cls).String(), poly)
			}
		}
		for g, line := range genomeLines {
			if line != nil {
				p.Legend.Add(l.Genomes[g].Name, line)
			}
		}
		p.Legend.Top = true
		p.Legend.Left = true
		p.Legend.TextStyle.Font.Size = vg.Points(fontSize)
	}

	if err := drawMarkers(p, l, markers); err != nil {
		return nil, err
	}
	return p, nil
}

func setFontSize(p *plot.Plot, size vg.Length) {
	p.Title.TextStyle.Font.Size = size
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = size
		ax.Tick.Label.Font.Size = size
	}
}

// drawAxes sets the position axis, in Mbp, and labels every group with its
// reference chromosome on the cross axis.
func drawAxes(p *plot.Plot, l *Layout, margin float64) error {
	maxLen := l.MaxLength()
	if maxLen == 0 {
		return fmt.Errorf("no chromosome to plot")
	}
	values, labels := l.GroupTicks()
	groupTicks := make(plot.ConstantTicks, len(values))
	for i := range values {
		groupTicks[i] = plot.Tick{Value: values[i], Label: labels[i]}
	}
	pos, cross := &p.X, &p.Y
	if l.Vertical {
		pos, cross = &p.Y, &p.X
	}
	pos.Min, pos.Max = 0, float64(maxLen)
	pos.Label.Text = "Chromosome position (Mbp)"
	pos.Tick.Marker = mbpTicks{}
	cross.Min, cross.Max = l.CrossRange(margin)
	cross.Tick.Marker = groupTicks
	cross.LineStyle.Width = 0
	cross.Tick.LineStyle.Width = 0
	return nil
}

// mbpTicks labels base pair positions in megabases.
type mbpTicks struct{}

func (mbpTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label != "" {
			ticks[i].Label = strconv.FormatFloat(t.Value/1e6, 'f', -1, 64)
		}
	}
	return ticks
}

func drawMarkers(p *plot.Plot, l *Layout, markers []Marker) error {
	for _, m := range markers {
		pt, ok := l.Point(m.Genome, m.Chr, m.Start, 0)
		if !ok {
			log.Warningf("marker at %s:%s:%d is not on a plotted chromosome", l.Genomes[m.Genome].Name, m.Chr, m.Start)
			continue
		}
		sc, err := plotter.NewScatter(plotter.XYs{pt})
		if err != nil {
			return fmt.Errorf("cannot draw marker %s:%d: %w", m.Chr, m.Start, err)
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: m.Color, Radius: m.Size / 2, Shape: m.Shape}
		p.Add(sc)
		if m.Text == "" {
			continue
		}
		labels, err := markerLabel(l, m)
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return nil
}

// markerLabel places the text of m TextPos away from the chromosome: above it
// in horizontal layouts, to its left and reading upwards in vertical ones.
func markerLabel(l *Layout, m Marker) (*plotter.Labels, error) {
	tp, _ := l.Point(m.Genome, m.Chr, m.Start, m.TextPos)
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: plotter.XYs{tp}, Labels: []string{m.Text}})
	if err != nil {
		return nil, fmt.Errorf("cannot draw text %q: %w", m.Text, err)
	}
	sty := &labels.TextStyle[0]
	sty.Color = m.TextColor
	sty.Font.Size = m.TextSize
	if l.Vertical {
		sty.XAlign, sty.YAlign = text.XLeft, text.YCenter
		sty.Rotation = math.Pi / 2
	} else {
		sty.XAlign, sty.YAlign = text.XCenter, text.YBottom
	}
	return labels, nil
}

// Save writes the plot to path, w by h, in the format given by the file
// extension. dpi applies to png only.
func Save(p *plot.Plot, path string, w, h vg.Length, dpi int) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	var c interface {
		vg.CanvasSizer
		WriteTo(w io.Writer) (int64, error)
	}
	switch format {
	case "pdf":
		c = vgpdf.New(w, h)
	case "svg":
		c = vgsvg.New(w, h)
	case "png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}
	default:
		return fmt.Errorf("unsupported output format %q, expected one of %s", format, strings.Join(outputFormats, ", "))
	}
	p.Draw(draw.New(c))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return f.Close()
}
