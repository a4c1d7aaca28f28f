package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/plotutil"
)

const StyleHelp = `
The style file is TOML with the following optional keys:
      syncol: colour of syntenic ribbons (default "#DEDEDE")
      invcol: colour of inversions (default "#FFA500")
      tracol: colour of translocations (default "#9ACD32")
      dupcol: colour of duplications (default "#00BBFF")
       alpha: opacity of the ribbons, 0-1 (default 0.8)
      legend: draw the legend (default true)
  marginsize: margin around the chromosomes, in plot units (default 0.1)

Colours are names (e.g. "orange") or hexadecimal "#RRGGBB" values.
`

type Style struct {
	SynColor   string  `toml:"syncol"`
	InvColor   string  `toml:"invcol"`
	TraColor   string  `toml:"tracol"`
	DupColor   string  `toml:"dupcol"`
	Alpha      float64 `toml:"alpha"`
	Legend     bool    `toml:"legend"`
	MarginSize float64 `toml:"marginsize"`
}

func DefaultStyle() Style {
	return Style{
		SynColor:   "#DEDEDE",
		InvColor:   "#FFA500",
		TraColor:   "#9ACD32",
		DupColor:   "#00BBFF",
		Alpha:      0.8,
		Legend:     true,
		MarginSize: 0.1,
	}
}

// ReadStyle reads a style file over the defaults.
func ReadStyle(path string) (Style, error) {
	st := DefaultStyle()
	md, err := toml.DecodeFile(path, &st)
	if err != nil {
		return st, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return st, fmt.Errorf("unknown key(s) in %q: %s", path, strings.Join(keys, ", "))
	}
	if st.Alpha < 0 || st.Alpha > 1 {
		return st, fmt.Errorf("alpha must be in [0, 1], got %g", st.Alpha)
	}
	if st.MarginSize < 0 {
		return st, fmt.Errorf("marginsize must not be negative, got %g", st.MarginSize)
	}
	return st, nil
}

// ClassColors returns the ribbon fill colour of every SV class.
func (st Style) ClassColors() ([numSVClasses]color.Color, error) {
	var colors [numSVClasses]color.Color
	for i, s := range [numSVClasses]string{st.SynColor, st.InvColor, st.TraColor, st.DupColor} {
		c, err := parseColor(s)
		if err != nil {
			return colors, fmt.Errorf("%s colour: %w", SVClass(i), err)
		}
		colors[i] = withAlpha(c, st.Alpha)
	}
	return colors, nil
}

var defaultGenomeColors = []string{"#83AAFF", "#FF6A33"}

// genomeColor is the chromosome colour of the g-th genome when none is set.
func genomeColor(g int) color.Color {
	if g < len(defaultGenomeColors) {
		c, _ := parseColor(defaultGenomeColors[g])
		return c
	}
	return plotutil.Color(g - len(defaultGenomeColors))
}

// parseColor accepts colour names and #RRGGBB or #RRGGBBAA values.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return nil, fmt.Errorf("invalid colour %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q", s)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown colour %q", s)
}

func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}
